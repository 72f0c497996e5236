// Package parser builds the AST from a lexer token stream: it links route
// headers to their target declarations, tracks the local variables a route
// introduces on its right-hand side, and validates every $variable reference
// against the scope rules described by the route-var resolution design —
// forward references and references to another route's src field are both
// fatal, a route cannot shadow a global variable, and a condition branch's
// expression and action text are scanned for the same rules as any other
// pipeline segment.
package parser

import (
	"regexp"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
	"github.com/btouchard/dtrtc/internal/compiler/config"
	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
	"github.com/btouchard/dtrtc/internal/compiler/token"
)

var (
	elifNoParenRe    = regexp.MustCompile(`(?i)\bELIF\w`)
	branchKeywordRe  = regexp.MustCompile(`(?i)\b(IF|ELIF|ELSE)\b`)
	eventPrefixRe    = regexp.MustCompile(`(?i)^(SKIP|ROLLBACK|NOTIFY)\(`)
	eventFullRe      = regexp.MustCompile(`(?is)^(SKIP|ROLLBACK|NOTIFY)\((.*)\)$`)
	eventBarewordRe  = regexp.MustCompile(`(?i)^(SKIP|ROLLBACK|NOTIFY)\b`)
	varRefPattern    = regexp.MustCompile(`\$(\^)?([a-zA-Z][a-zA-Z0-9_]*)`)
	identPattern     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	funcCallInBranch = regexp.MustCompile(`\*([a-zA-Z_][a-zA-Z0-9_]*)\s*(\(|\||$)`)
)

// localVarInfo is what the parser tracks about one right-hand-side field:
// the field's declared type and the src field the route read from, needed
// to detect a var used on the very route that defines it.
type localVarInfo struct {
	Type     string
	SrcField string
}

// Parser builds an *ast.Program from a token stream.
type Parser struct {
	ctx config.Context
	loc *localization.Localization

	tokens []token.Token
	pos    int

	localVars      map[string]localVarInfo
	srcFields      []string
	availableFuncs map[string]bool // nil means "no restriction" — every *func name is accepted
	funcFolder     string

	warnings []string
}

// New returns a Parser rendering diagnostics per ctx.
func New(ctx config.Context) *Parser {
	return &Parser{ctx: ctx, loc: localization.New(ctx.Lang)}
}

// SetAvailableFuncs restricts *func(...) segments to names in funcs; pass a
// nil map to accept any function name (the registry was not built).
func (p *Parser) SetAvailableFuncs(funcs map[string]bool, folder string) {
	p.availableFuncs = funcs
	p.funcFolder = folder
}

// Warnings returns the non-fatal messages accumulated by the most recent Parse.
func (p *Parser) Warnings() []string { return p.warnings }

// Parse consumes tokens and returns the resulting *ast.Program, or the first
// fatal *errors.CompileError encountered.
func (p *Parser) Parse(tokens []token.Token) (*ast.Program, error) {
	p.tokens = tokens
	p.pos = 0
	p.localVars = make(map[string]localVarInfo)
	p.warnings = nil
	p.srcFields = p.collectSrcFields()

	program := ast.NewProgram()
	program.Tokens = tokens

	typeNameKeys := make(map[string]bool)

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]

		switch tok.Kind {
		case token.SOURCE:
			sp := tok.Payload.(token.SourcePayload)
			program.Children = append(program.Children, &ast.Source{Type: sp.Type, Name: sp.Name, Line: tok.Line})
			p.pos++

		case token.TARGET:
			tp := tok.Payload.(token.TargetPayload)
			key := tp.Type + "/" + tp.Value
			if typeNameKeys[key] {
				return nil, errors.New(errors.DuplicateTargetNameType, "parser", p.loc, p.ctx.Color, "", tok.Line, nil,
					localization.P("key", key))
			}
			typeNameKeys[key] = true
			target := &ast.Target{LocalName: tp.LocalName, Type: tp.Type, Value: tp.Value, Line: tok.Line}
			program.Children = append(program.Children, target)
			program.Targets[tp.LocalName] = target
			p.pos++

		case token.GLOBAL_VAR:
			gp := tok.Payload.(token.GlobalVarPayload)
			if _, dup := program.GlobalVars[gp.Name]; dup {
				return nil, errors.New(errors.DuplicateVar, "parser", p.loc, p.ctx.Color, "", tok.Line, nil,
					localization.P("name", gp.Name))
			}
			gvar := &ast.GlobalVar{Name: gp.Name, Value: gp.Value, InferredType: gp.InferredType, Line: tok.Line}
			program.Children = append(program.Children, gvar)
			program.GlobalVars[gp.Name] = gvar
			p.pos++

		case token.GLOBAL_VAR_USAGE:
			up := tok.Payload.(token.GlobalVarUsagePayload)
			if _, ok := program.GlobalVars[up.VarName]; !ok {
				pos := strings.Index(up.OriginalLine, "$"+up.VarName)
				return nil, errors.New(errors.UndefinedGlobalVar, "parser", p.loc, p.ctx.Color, up.OriginalLine, tok.Line, &pos,
					localization.P("name", up.VarName))
			}
			p.pos++

		case token.ROUTE_HEADER:
			targetName := tok.Literal
			p.pos++
			if _, ok := program.Targets[targetName]; !ok {
				ce := errors.New(errors.SemanticTarget, "parser", p.loc, p.ctx.Color, targetName+":", tok.Line, nil,
					localization.P("target", targetName))
				ce.WithHint(p.loc.Get(localization.Hint.TargetDefinitionMissing, localization.P("target", targetName)))
				return nil, ce
			}

			var routes []*ast.RouteLine
			finalNames := make(map[string]bool)
			for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == token.ROUTE_LINE {
				rlTok := p.tokens[p.pos]
				route, err := p.parseRouteLine(rlTok)
				if err != nil {
					return nil, err
				}
				if route.Dst != nil && route.Dst.Name != "" {
					norm := strings.TrimPrefix(route.Dst.Name, "$")
					if finalNames[norm] {
						rp := rlTok.Payload.(token.RouteLinePayload)
						return nil, errors.New(errors.DuplicateFinalName, "parser", p.loc, p.ctx.Color, rp.OriginalLine, rlTok.Line, nil,
							localization.P("name", route.Dst.Name))
					}
					finalNames[norm] = true
				}
				routes = append(routes, route)
				p.pos++
			}
			program.Children = append(program.Children, &ast.RouteBlock{TargetLocalName: targetName, Routes: routes, Line: tok.Line})

		default:
			p.pos++
		}
	}

	if !hasRouteBlock(program.Children) {
		return nil, errors.New(errors.SemanticRoutes, "parser", p.loc, p.ctx.Color, "", 0, nil, nil)
	}

	return program, nil
}

func hasRouteBlock(children []ast.Node) bool {
	for _, c := range children {
		if _, ok := c.(*ast.RouteBlock); ok {
			return true
		}
	}
	return false
}

// collectSrcFields gathers every ROUTE_LINE src field across the whole
// token stream up front, the way the original scans self.tokens afresh for
// every variable-scope check rather than building the list incrementally.
func (p *Parser) collectSrcFields() []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range p.tokens {
		if tok.Kind != token.ROUTE_LINE {
			continue
		}
		rp := tok.Payload.(token.RouteLinePayload)
		if rp.SrcField != "" && !seen[rp.SrcField] {
			seen[rp.SrcField] = true
			out = append(out, rp.SrcField)
		}
	}
	return out
}

func (p *Parser) isKnownSrcField(name string) bool {
	for _, f := range p.srcFields {
		if f == name {
			return true
		}
	}
	return false
}

// parseRouteLine turns one ROUTE_LINE token into an *ast.RouteLine, running
// every scope and shape check a route's src/pipeline/dst can fail.
func (p *Parser) parseRouteLine(tok token.Token) (*ast.RouteLine, error) {
	rp := tok.Payload.(token.RouteLinePayload)
	line := rp.OriginalLine
	lineNum := tok.Line

	if rp.TargetField == "" && rp.TargetFieldType != "" {
		return nil, errors.New(errors.VoidType, "parser", p.loc, p.ctx.Color, line, lineNum, nil, nil)
	}
	if strings.HasPrefix(rp.TargetField, "$$") {
		return nil, errors.New(errors.ExternalVarWrite, "parser", p.loc, p.ctx.Color, line, lineNum, nil,
			localization.P("name", rp.TargetField))
	}
	if strings.HasPrefix(rp.TargetField, "$") {
		// program.GlobalVars isn't reachable here, so check against every
		// GLOBAL_VAR token in the token stream, including declarations that
		// come after this route.
		if p.isGlobalVar(rp.TargetField[1:]) {
			return nil, errors.New(errors.GlobalVarWrite, "parser", p.loc, p.ctx.Color, line, lineNum, nil,
				localization.P("name", rp.TargetField))
		}
	}
	if rp.TargetField != "" && rp.TargetFieldType == "" {
		pos := strings.LastIndex(line, "]") + 1
		return nil, errors.New(errors.FinalType, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
	}

	src := &ast.FieldSrc{Name: rp.SrcField, Line: lineNum}

	var dst *ast.FieldDst
	if rp.TargetField == "" {
		dst = &ast.FieldDst{Name: "", Type: "", Line: lineNum}
	} else {
		dst = &ast.FieldDst{Name: rp.TargetField, Type: rp.TargetFieldType, Line: lineNum}
		if strings.HasPrefix(rp.TargetField, "$") {
			varName := rp.TargetField[1:]
			p.localVars[varName] = localVarInfo{Type: rp.TargetFieldType, SrcField: rp.SrcField}
			if rp.PipelineText != "" && strings.Contains(rp.PipelineText, "$"+varName) {
				pos := strings.Index(line, "$"+varName)
				return nil, errors.New(errors.InvalidVarUsage, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
					localization.P("var_name", varName))
			}
		} else {
			p.localVars[rp.TargetField] = localVarInfo{Type: rp.TargetFieldType, SrcField: rp.SrcField}
		}
	}

	pipeline := &ast.Pipeline{Line: lineNum}
	if rp.PipelineText != "" {
		for _, seg := range splitPipelineSegments(rp.PipelineText) {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				p.warnings = append(p.warnings, p.loc.Get(localization.Warning.EmptyPipelineSegment, nil))
				continue
			}
			item, err := p.parsePipelineItem(seg, line, lineNum, rp.SrcField)
			if err != nil {
				return nil, err
			}
			if item != nil {
				pipeline.Items = append(pipeline.Items, item)
			}
		}
	}

	return &ast.RouteLine{Src: src, Pipeline: pipeline, Dst: dst, Line: lineNum}, nil
}

// isGlobalVar reports whether name is declared by any GLOBAL_VAR token in
// the current token stream, wherever that declaration sits relative to the
// route being checked.
func (p *Parser) isGlobalVar(name string) bool {
	for _, tok := range p.tokens {
		if tok.Kind == token.GLOBAL_VAR {
			if gp, ok := tok.Payload.(token.GlobalVarPayload); ok && gp.Name == name {
				return true
			}
		}
	}
	return false
}

// splitPipelineSegments splits s on '|' only at paren-depth 0 outside quoted
// strings, so a literal '|' inside a function argument or string constant
// never fragments a segment.
func splitPipelineSegments(s string) []string {
	var segs []string
	var buf strings.Builder
	depth := 0
	inStr := false
	var strCh byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inStr:
			buf.WriteByte(c)
			if c == strCh {
				inStr = false
			} else if c == '\\' && i+1 < len(s) {
				i++
				buf.WriteByte(s[i])
			}
		case c == '"' || c == '\'':
			inStr = true
			strCh = c
			buf.WriteByte(c)
		case c == '(':
			depth++
			buf.WriteByte(c)
		case c == ')':
			depth--
			buf.WriteByte(c)
		case c == '|' && depth == 0:
			segs = append(segs, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	segs = append(segs, buf.String())
	return segs
}

// splitArgs splits a function-call argument list on top-level commas, the
// same 3-state automaton as splitPipelineSegments but keyed on ',' instead
// of '|', since an argument can itself contain parens or quoted commas.
func splitArgs(s string) []string {
	var args []string
	var buf strings.Builder
	depth := 0
	inStr := false
	var strCh byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inStr:
			buf.WriteByte(c)
			if c == strCh {
				inStr = false
			} else if c == '\\' && i+1 < len(s) {
				i++
				buf.WriteByte(s[i])
			}
		case c == '"' || c == '\'':
			inStr = true
			strCh = c
			buf.WriteByte(c)
		case c == '(':
			depth++
			buf.WriteByte(c)
		case c == ')':
			depth--
			buf.WriteByte(c)
		case c == ',' && depth == 0:
			if t := strings.TrimSpace(buf.String()); t != "" {
				args = append(args, t)
			}
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if t := strings.TrimSpace(buf.String()); t != "" {
		args = append(args, t)
	}
	return args
}

// parsePipelineItem classifies one already-split pipeline segment and
// builds its AST node, validating every $variable reference the segment
// contains before dispatching on its shape.
func (p *Parser) parsePipelineItem(seg, line string, lineNum int, srcField string) (ast.Node, error) {
	if err := p.checkVars(seg, srcField, line, lineNum, false); err != nil {
		return nil, err
	}

	lower := strings.ToLower(seg)
	switch {
	case strings.HasPrefix(lower, "if") || strings.HasPrefix(lower, "elif") || strings.HasPrefix(lower, "else"):
		return p.parseConditionalExpression(seg, line, lineNum, srcField)

	case strings.HasPrefix(seg, "*"):
		return p.parseFuncCall(seg, line, lineNum, srcField)

	case seg == "$this":
		return &ast.DirectMap{Value: seg, IsExternalVar: false, FullStr: seg, Line: lineNum}, nil

	case strings.HasPrefix(seg, "$$"):
		return &ast.DirectMap{Value: seg, IsExternalVar: true, FullStr: seg, Line: lineNum}, nil

	case eventPrefixRe.MatchString(seg):
		if m := eventFullRe.FindStringSubmatch(seg); m != nil {
			return &ast.Event{SubType: strings.ToUpper(m[1]), Param: m[2], FullStr: seg, Line: lineNum}, nil
		}
		pos := strings.Index(line, seg)
		return nil, errors.New(errors.UnknownPipelineSegment, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
			localization.P("segment", seg))

	case eventBarewordRe.MatchString(seg):
		pos := strings.Index(line, seg)
		return nil, errors.New(errors.UnknownPipelineSegment, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
			localization.P("segment", seg))

	default:
		if identPattern.MatchString(seg) && seg != "$this" {
			p.warnings = append(p.warnings, p.loc.Get(localization.Warning.DirectMappingWithoutStar,
				localization.P("segment", seg)))
		}
		return &ast.DirectMap{Value: seg, IsExternalVar: false, FullStr: seg, Line: lineNum}, nil
	}
}

func (p *Parser) parseFuncCall(seg, line string, lineNum int, srcField string) (ast.Node, error) {
	funcText := seg[1:]
	var funcName string
	var args []string

	if strings.Contains(funcText, "(") && strings.HasSuffix(funcText, ")") {
		idx := strings.Index(funcText, "(")
		funcName = funcText[:idx]
		paramText := strings.TrimSpace(funcText[idx+1 : len(funcText)-1])
		for _, a := range splitArgs(paramText) {
			a = strings.TrimSpace(a)
			if a == "$"+srcField {
				a = "$this"
			}
			args = append(args, a)
		}
		if len(args) == 0 {
			args = []string{"$this"}
		}
	} else {
		funcName = funcText
		args = []string{"$this"}
	}

	if p.availableFuncs != nil && !p.availableFuncs[funcName] {
		pos := strings.Index(line, "*"+funcName)
		return nil, errors.New(errors.FunctionNotFound, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
			localization.P("func_name", funcName, "folder", p.funcFolder))
	}

	return &ast.FuncCall{FuncName: funcName, Args: args, FullStr: seg, Line: lineNum}, nil
}

// parseConditionalExpression validates an IF/ELIF/ELSE chain branch by
// branch, mirroring the strict syntax check the original diagnostic engine
// runs before accepting a condition segment, then wraps the verbatim text
// in a single Condition node for the IR generator to re-parse.
func (p *Parser) parseConditionalExpression(content, line string, lineNum int, srcField string) (ast.Node, error) {
	trimmed := strings.TrimSpace(content)
	lowerTrim := strings.ToLower(trimmed)

	// A condition segment is always a full chain starting at IF: a branch
	// opening with ELSE or ELIF here has no preceding IF in this segment.
	if strings.HasPrefix(lowerTrim, "else") || strings.HasPrefix(lowerTrim, "elif") {
		keyword := "else"
		if strings.HasPrefix(lowerTrim, "elif") {
			keyword = "elif"
		}
		pos := strings.Index(strings.ToLower(line), keyword)
		if pos == -1 {
			pos = 0
		}
		return nil, errors.New(errors.ConditionMissingIf, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
	}

	if strings.HasPrefix(lowerTrim, "if") {
		afterIf := strings.TrimLeft(trimmed[2:], " \t")
		if !strings.HasPrefix(afterIf, "(") {
			pos := strings.Index(strings.ToLower(line), "if") + 2
			return nil, errors.New(errors.ConditionMissingParen, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
		}
	}

	if m := elifNoParenRe.FindStringIndex(content); m != nil {
		pos := m[0]
		return nil, errors.New(errors.ConditionMissingParen, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
	}

	matches := branchKeywordRe.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return nil, errors.New(errors.ConditionInvalid, "parser", p.loc, p.ctx.Color, line, lineNum, nil,
			localization.P("message", p.loc.Get(localization.Error.Unknown, nil)))
	}

	elifCount, elseCount := 0, 0
	for idx, m := range matches {
		key := strings.ToUpper(content[m[0]:m[1]])
		end := len(content)
		if idx+1 < len(matches) {
			end = matches[idx+1][0]
		}
		branch := strings.TrimSpace(content[m[0]:end])
		relPos := m[0]

		switch key {
		case "IF", "ELIF":
			if key == "ELIF" {
				elifCount++
			}
			openParen := strings.Index(branch, "(")
			closeParen := -1
			if openParen != -1 {
				closeParen = strings.Index(branch[openParen:], ")")
				if closeParen != -1 {
					closeParen += openParen
				}
			}
			if openParen == -1 || closeParen == -1 {
				pos := relPos
				if openParen != -1 {
					pos += openParen
				}
				return nil, errors.New(errors.ConditionMissingParen, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
			}
			expContent := strings.TrimSpace(branch[openParen+1 : closeParen])
			if expContent == "" {
				pos := relPos + openParen + 1
				return nil, errors.New(errors.ConditionEmptyExpr, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
			}
			afterParen := strings.TrimLeft(branch[closeParen+1:], " \t")
			if !strings.HasPrefix(afterParen, ":") {
				pos := relPos + closeParen + 1
				return nil, errors.New(errors.ConditionMissingColon, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
			}
			colonPos := strings.Index(branch[closeParen:], ":") + closeParen
			doContent := strings.TrimSpace(branch[colonPos+1:])
			if doContent == "" {
				pos := relPos + colonPos + 1
				return nil, errors.New(errors.ConditionInvalid, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
					localization.P("message", key))
			}
			if strings.Contains(expContent, "$") {
				if err := p.checkVars(expContent, srcField, line, lineNum, true); err != nil {
					return nil, err
				}
			}
			if strings.Contains(doContent, "$") {
				if err := p.checkVars(doContent, srcField, line, lineNum, true); err != nil {
					return nil, err
				}
			}
			if err := p.checkBranchFuncs(branch, line, lineNum); err != nil {
				return nil, err
			}

		case "ELSE":
			elseCount++
			if len(branch) < 4 {
				pos := relPos
				return nil, errors.New(errors.ConditionMissingColon, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
			}
			afterElse := strings.TrimLeft(branch[4:], " \t")
			if !strings.HasPrefix(afterElse, ":") {
				pos := relPos + 4
				return nil, errors.New(errors.ConditionMissingColon, "parser", p.loc, p.ctx.Color, line, lineNum, &pos, nil)
			}
			doContent := strings.TrimSpace(afterElse[1:])
			if doContent == "" {
				pos := relPos + 5
				return nil, errors.New(errors.ConditionInvalid, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
					localization.P("message", key))
			}
			if strings.Contains(doContent, "$") {
				if err := p.checkVars(doContent, srcField, line, lineNum, true); err != nil {
					return nil, err
				}
			}
			if err := p.checkBranchFuncs(branch, line, lineNum); err != nil {
				return nil, err
			}

		default:
			return nil, errors.New(errors.ConditionInvalid, "parser", p.loc, p.ctx.Color, line, lineNum, &relPos,
				localization.P("message", key))
		}
	}

	subType := "if"
	switch {
	case elifCount > 0:
		subType = "if_elifs_else"
	case elseCount > 0:
		subType = "if_else"
	}

	return &ast.Condition{Value: content, SubType: subType, FullStr: content, Line: lineNum}, nil
}

func (p *Parser) checkBranchFuncs(branch, line string, lineNum int) error {
	if p.availableFuncs == nil {
		return nil
	}
	for _, m := range funcCallInBranch.FindAllStringSubmatch(branch, -1) {
		funcName := m[1]
		if !p.availableFuncs[funcName] {
			pos := strings.Index(line, "*"+funcName)
			return errors.New(errors.FunctionNotFound, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
				localization.P("func_name", funcName, "folder", p.funcFolder))
		}
	}
	return nil
}

// checkVars scans text for $variable references and validates each against
// the route's scope rules. When validatePreVar is false (ordinary pipeline
// segments), a $^name pre-reference is accepted unconditionally, matching
// the original's "no check needed" treatment of explicit pre-references
// outside a condition; inside a condition (validatePreVar true) the same
// pre-reference must resolve to a known field or local variable.
func (p *Parser) checkVars(text, srcField, line string, lineNum int, validatePreVar bool) error {
	for _, m := range varRefPattern.FindAllStringSubmatchIndex(text, -1) {
		start := m[0]
		if start > 0 && text[start-1] == '$' {
			continue
		}
		if strings.HasPrefix(text[start:], "$$") {
			continue
		}
		isPre := m[2] != -1
		varName := text[m[4]:m[5]]
		if varName == "this" {
			continue
		}

		if isPre {
			if !validatePreVar {
				continue
			}
			if _, ok := p.localVars[varName]; !ok && varName != srcField && !p.isKnownSrcField(varName) {
				pos := strings.Index(line, "$^"+varName)
				return errors.New(errors.UndefinedVar, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
					localization.P("var_name", varName))
			}
			continue
		}

		if varName == srcField {
			continue
		}

		info, isLocal := p.localVars[varName]
		if p.isKnownSrcField(varName) && !isLocal {
			pos := strings.Index(line, "$"+varName)
			return errors.New(errors.SrcFieldAsVar, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
				localization.P("var_name", varName))
		}

		isGlobal := p.isGlobalVar(varName)
		if !isGlobal && !isLocal {
			pos := strings.Index(line, "$"+varName)
			return errors.New(errors.UndefinedVar, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
				localization.P("var_name", varName))
		}
		if !isGlobal && isLocal && info.SrcField == srcField {
			pos := strings.Index(line, "$"+varName)
			return errors.New(errors.InvalidVarUsage, "parser", p.loc, p.ctx.Color, line, lineNum, &pos,
				localization.P("var_name", varName))
		}
	}
	return nil
}
