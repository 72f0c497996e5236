// Package lexer turns DSL source text into a flat token stream, one token
// per non-blank line. Unlike a character-level lexer, classification here
// happens line by line against a fixed, ordered set of patterns — the first
// pattern that matches wins, and a line matching none falls through to the
// diagnostic engine's heuristic analyzer.
package lexer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/config"
	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
	"github.com/btouchard/dtrtc/internal/compiler/token"
)

var (
	langPattern    = regexp.MustCompile(`^lang\s*=\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*$`)
	assignPattern  = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\s*=`)
	sourcePattern  = regexp.MustCompile(`^source\s*=\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*/\s*(\S+)\s*$`)
	targetPattern  = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*/\s*(.+?)\s*$`)
	globalPattern  = regexp.MustCompile(`^\$([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*(.+?)\s*$`)
	commentPattern = regexp.MustCompile(`^#(.*)$`)
	headerPattern  = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\s*:\s*$`)
	usagePattern   = regexp.MustCompile(`^\$([a-zA-Z_][a-zA-Z0-9_]*)\s*$`)

	// arrow matches any of the five flow-direction symbols, longest first so
	// "->" is never mis-split into a bare "-".
	arrow = `(?:->|=>|>>|-|>)`

	routeLinePattern = regexp.MustCompile(
		`^\s+\[([^\]]*)\]\s*` + arrow + `\s*(?:\|(.*)\|\s*` + arrow + `\s*)?\[([^\]]*)\](?:\(([a-zA-Z_][a-zA-Z0-9_]*)\))?\s*$`,
	)

	boolPattern  = regexp.MustCompile(`^(?i:true|false)$`)
	intPattern   = regexp.MustCompile(`^-?\d+$`)
	floatPattern = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// allowedTypes mirrors the diagnostic package's table; the lexer validates a
// ROUTE_LINE final type against it independently so this package carries no
// dependency on errors' unexported type list.
var allowedTypes = map[string]bool{
	"str": true, "int": true, "float": true, "bool": true, "dict": true,
	"list": true, "tuple": true, "set": true, "datetime": true, "date": true,
	"time": true, "Decimal": true, "uuid": true, "bytes": true, "any": true,
}

// Lexer classifies DSL source text into a token.Token stream.
type Lexer struct {
	ctx config.Context
	loc *localization.Localization
}

// New returns a Lexer rendering diagnostics per ctx.
func New(ctx config.Context) *Lexer {
	return &Lexer{ctx: ctx, loc: localization.New(ctx.Lang)}
}

// Tokenize scans text line by line and returns the ordered token stream, or
// the first fatal *errors.CompileError encountered.
func (l *Lexer) Tokenize(text string) ([]token.Token, error) {
	rawLines := strings.Split(strings.Trim(text, "\n"), "\n")

	langFound := false
	for _, raw := range rawLines {
		if langPattern.MatchString(strings.TrimSpace(raw)) {
			langFound = true
			break
		}
	}
	if !langFound {
		return nil, errors.New(errors.MissingTargetLang, "lexer", l.loc, l.ctx.Color, "", 0, nil, nil)
	}

	var tokens []token.Token
	sourceFound := false

	for i, raw := range rawLines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if strings.Contains(raw, "||") {
			pos := strings.Index(raw, "||") + 1
			return nil, errors.New(errors.PipelineEmpty, "lexer", l.loc, l.ctx.Color, raw, lineNum, &pos, nil)
		}

		tok, err := l.classify(raw, trimmed, lineNum, &sourceFound)
		if err != nil {
			return nil, err
		}
		if tok != nil {
			tokens = append(tokens, *tok)
		}
	}

	if !sourceFound {
		return nil, errors.New(errors.SyntaxSource, "lexer", l.loc, l.ctx.Color, "", 0, nil, nil)
	}

	return tokens, nil
}

// classify matches one line against the fixed pattern order, returning the
// produced token (nil for a discarded COMMENT), or a fatal diagnostic.
func (l *Lexer) classify(raw, trimmed string, lineNum int, sourceFound *bool) (*token.Token, error) {
	if m := langPattern.FindStringSubmatch(trimmed); m != nil {
		return &token.Token{Kind: token.LANG, Literal: m[1], Line: lineNum}, nil
	}

	if strings.HasPrefix(trimmed, "source") {
		m := sourcePattern.FindStringSubmatch(trimmed)
		if m == nil {
			return nil, errors.New(errors.SyntaxSource, "lexer", l.loc, l.ctx.Color, raw, lineNum, nil, nil)
		}
		*sourceFound = true
		return &token.Token{
			Kind: token.SOURCE, Line: lineNum,
			Payload: token.SourcePayload{Type: m[1], Name: m[2]},
		}, nil
	}

	if strings.HasPrefix(trimmed, "$") {
		if m := globalPattern.FindStringSubmatch(trimmed); m != nil {
			value, inferred := inferGlobalValue(m[2])
			return &token.Token{
				Kind: token.GLOBAL_VAR, Line: lineNum,
				Payload: token.GlobalVarPayload{Name: m[1], Value: value, InferredType: inferred},
			}, nil
		}
		if m := usagePattern.FindStringSubmatch(trimmed); m != nil {
			return &token.Token{
				Kind: token.GLOBAL_VAR_USAGE, Line: lineNum,
				Payload: token.GlobalVarUsagePayload{VarName: m[1], OriginalLine: raw},
			}, nil
		}
	}

	if m := targetPattern.FindStringSubmatch(trimmed); m != nil {
		return &token.Token{
			Kind: token.TARGET, Line: lineNum,
			Payload: token.TargetPayload{LocalName: m[1], Type: m[2], Value: m[3]},
		}, nil
	}

	if commentPattern.MatchString(trimmed) {
		return nil, nil
	}

	if m := headerPattern.FindStringSubmatch(trimmed); m != nil {
		return &token.Token{Kind: token.ROUTE_HEADER, Literal: m[1], Line: lineNum}, nil
	}

	if m := routeLinePattern.FindStringSubmatch(raw); m != nil {
		finalType := m[4]
		if finalType != "" && !allowedTypes[finalType] {
			pos := strings.LastIndex(raw, "("+finalType+")") + 1
			allowed := make([]string, 0, len(allowedTypes))
			for t := range allowedTypes {
				allowed = append(allowed, t)
			}
			sort.Strings(allowed)
			return nil, errors.New(errors.InvalidType, "lexer", l.loc, l.ctx.Color, raw, lineNum, &pos,
				localization.P("data_type", finalType, "allowed_types", strings.Join(allowed, ", ")))
		}
		return &token.Token{
			Kind: token.ROUTE_LINE, Line: lineNum,
			Payload: token.RouteLinePayload{
				SrcField:        strings.TrimSpace(m[1]),
				PipelineText:    m[2],
				TargetField:     strings.TrimSpace(m[3]),
				TargetFieldType: finalType,
				OriginalLine:    raw,
			},
		}, nil
	}

	if assignPattern.MatchString(trimmed) {
		return nil, errors.New(errors.SyntaxTarget, "lexer", l.loc, l.ctx.Color, raw, lineNum, nil, nil)
	}

	return nil, errors.Analyze(l.loc, l.ctx.Color, raw, lineNum)
}

// inferGlobalValue decodes a $name=<literal> right-hand side: quoted text is
// a string with quotes stripped, otherwise try bool, int, float in that
// order before falling back to a bare string.
func inferGlobalValue(raw string) (any, string) {
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') || (raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			return raw[1 : len(raw)-1], "str"
		}
	}
	if boolPattern.MatchString(raw) {
		return strings.EqualFold(raw, "true"), "bool"
	}
	if intPattern.MatchString(raw) {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, "int"
		}
	}
	if floatPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, "float"
		}
	}
	return raw, "str"
}
