package generator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
)

var (
	branchKeywordRe = regexp.MustCompile(`(?i)\b(IF|ELIF|ELSE)\b`)
	eventRe         = regexp.MustCompile(`(?is)^(SKIP|ROLLBACK|NOTIFY)\((.*)\)$`)
)

// VisitCondition re-parses the verbatim IF/ELIF/ELSE text the parser only
// validated, splitting it into branches and lowering each into nested IR.
// Re-parsing here instead of carrying structure from the parser keeps the
// condition's shape defined in exactly one place.
func (g *Generator) VisitCondition(n *ast.Condition) (any, error) {
	cond := strings.TrimSpace(n.Value)
	matches := branchKeywordRe.FindAllStringIndex(cond, -1)
	if len(matches) == 0 {
		return map[string]any{"type": "condition", "full_str": cond}, nil
	}

	result := map[string]any{"type": "condition", "sub_type": n.SubType, "full_str": cond}
	elifCounter := 0

	for i, m := range matches {
		key := strings.ToUpper(cond[m[0]:m[1]])
		end := len(cond)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		branch := strings.TrimSpace(cond[m[0]:end])

		switch key {
		case "IF", "ELIF":
			expStr, doStr, ok := splitIfBranch(branch)
			if !ok {
				continue
			}
			expJSON, err := g.buildExpJSON(expStr, n.Line)
			if err != nil {
				return nil, err
			}
			doJSON, err := g.buildDoJSON(doStr, n.Line)
			if err != nil {
				return nil, err
			}
			branchIR := map[string]any{"exp": expJSON, "do": doJSON}
			if key == "IF" {
				result["if"] = branchIR
			} else {
				elifCounter++
				result["elif_"+strconv.Itoa(elifCounter)] = branchIR
			}

		case "ELSE":
			doStr, ok := splitElseBranch(branch)
			if !ok {
				continue
			}
			doJSON, err := g.buildDoJSON(doStr, n.Line)
			if err != nil {
				return nil, err
			}
			result["else"] = map[string]any{"do": doJSON}
		}
	}

	return result, nil
}

// splitIfBranch pulls the parenthesized expression and the action text out
// of one "IF(...):..." or "ELIF(...):..." branch. The parser already
// rejected any branch that doesn't have this shape, so a false return here
// only guards against a hand-built AST bypassing the parser.
func splitIfBranch(branch string) (expStr, doStr string, ok bool) {
	open := strings.Index(branch, "(")
	if open == -1 {
		return "", "", false
	}
	closeIdx := strings.Index(branch[open:], ")")
	if closeIdx == -1 {
		return "", "", false
	}
	closeIdx += open
	colon := strings.Index(branch[closeIdx:], ":")
	if colon == -1 {
		return "", "", false
	}
	colon += closeIdx
	return strings.TrimSpace(branch[open+1 : closeIdx]), strings.TrimSpace(branch[colon+1:]), true
}

func splitElseBranch(branch string) (doStr string, ok bool) {
	if len(branch) < 4 {
		return "", false
	}
	rest := branch[4:]
	colon := strings.Index(rest, ":")
	if colon == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[colon+1:]), true
}

// buildExpJSON lowers an IF/ELIF expression: a "*func(...)" call always
// reports a fixed "$this" param here (the expression's own arguments are
// not substituted individually, matching how a condition's guard is
// evaluated against the route's current value as a whole), anything else
// is a plain boolean expression string.
func (g *Generator) buildExpJSON(expStr string, line int) (map[string]any, error) {
	resolved, err := g.substitute(expStr, line)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(expStr, "*") {
		return map[string]any{"type": "py_func", "param": "$this", "full_str": resolved}, nil
	}
	return map[string]any{"type": "cond_exp", "full_str": resolved}, nil
}

// buildDoJSON lowers one branch's action text: a "*func(...)" call, an
// event call, or a plain direct-map/variable reference.
func (g *Generator) buildDoJSON(text string, line int) (map[string]any, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "*") {
		funcText := text[1:]
		param := "$this"
		if strings.Contains(funcText, "(") && strings.HasSuffix(funcText, ")") {
			idx := strings.Index(funcText, "(")
			argText := strings.TrimSpace(funcText[idx+1 : len(funcText)-1])
			if argText != "" {
				parts := strings.Split(argText, ",")
				resolved := make([]string, len(parts))
				for i, p := range parts {
					v, err := g.substitute(strings.TrimSpace(p), line)
					if err != nil {
						return nil, err
					}
					resolved[i] = v
				}
				param = strings.Join(resolved, ", ")
			}
		} else if funcParam := strings.TrimSpace(funcText); funcParam != "" {
			v, err := g.substitute(funcParam, line)
			if err != nil {
				return nil, err
			}
			param = v
		}
		finalParam, err := g.substitute(param, line)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "py_func", "param": finalParam, "full_str": text}, nil
	}

	if m := eventRe.FindStringSubmatch(text); m != nil {
		return map[string]any{
			"type": "event", "sub_type": strings.ToUpper(m[1]), "param": m[2], "full_str": text,
		}, nil
	}

	resolved, err := g.substitute(text, line)
	if err != nil {
		return nil, err
	}
	return map[string]any{"type": "direct", "param": resolved, "full_str": text}, nil
}
