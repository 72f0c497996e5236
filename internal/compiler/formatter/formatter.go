// Package formatter re-renders a parsed program back into canonical DTRT
// source text: one route per line, two-space indentation, a single space
// around every arrow and around each pipe bar between pipeline segments
// (the opening and closing bars sit directly against the segments), and
// the literal arrow variant (->, =>,
// >>, -, >) normalized to "->". It is a second ast.Visitor alongside the
// generator — one turns the tree into IR, this one turns it back into text.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
	"github.com/btouchard/dtrtc/internal/compiler/token"
)

type Formatter struct{}

func New() *Formatter { return &Formatter{} }

// Format renders program as canonical DTRT source text.
func (f *Formatter) Format(program *ast.Program) (string, error) {
	var b strings.Builder
	b.WriteString("lang=" + declaredLang(program.Tokens) + "\n")

	for _, child := range program.Children {
		v, err := child.Accept(f)
		if err != nil {
			return "", err
		}
		b.WriteString(v.(string))
	}
	return b.String(), nil
}

func declaredLang(tokens []token.Token) string {
	for _, tok := range tokens {
		if tok.Kind == token.LANG {
			return tok.Literal
		}
	}
	return ""
}

func (f *Formatter) VisitProgram(n *ast.Program) (any, error) { return f.Format(n) }

func (f *Formatter) VisitSource(n *ast.Source) (any, error) {
	return "source=" + n.Type + "/" + n.Name + "\n", nil
}

func (f *Formatter) VisitTarget(n *ast.Target) (any, error) {
	return n.LocalName + "=" + n.Type + "/" + n.Value + "\n", nil
}

func (f *Formatter) VisitGlobalVar(n *ast.GlobalVar) (any, error) {
	return "$" + n.Name + "=" + renderLiteral(n.Value, n.InferredType) + "\n", nil
}

func renderLiteral(v any, inferredType string) string {
	switch inferredType {
	case "str":
		return `"` + fmt.Sprint(v) + `"`
	case "bool":
		return strconv.FormatBool(v.(bool))
	default:
		return fmt.Sprint(v)
	}
}

func (f *Formatter) VisitRouteBlock(n *ast.RouteBlock) (any, error) {
	var b strings.Builder
	b.WriteString(n.TargetLocalName + ":\n")
	for _, route := range n.Routes {
		v, err := route.Accept(f)
		if err != nil {
			return nil, err
		}
		b.WriteString(v.(string))
	}
	return b.String(), nil
}

func (f *Formatter) VisitRouteLine(n *ast.RouteLine) (any, error) {
	srcAny, err := n.Src.Accept(f)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(srcAny.(string))
	b.WriteString(" -> ")

	if n.Pipeline != nil && len(n.Pipeline.Items) > 0 {
		pv, err := n.Pipeline.Accept(f)
		if err != nil {
			return nil, err
		}
		b.WriteString(pv.(string))
		b.WriteString(" -> ")
	}

	if n.Dst != nil {
		dv, err := n.Dst.Accept(f)
		if err != nil {
			return nil, err
		}
		b.WriteString(dv.(string))
	} else {
		b.WriteString("[]")
	}
	b.WriteString("\n")
	return b.String(), nil
}

func (f *Formatter) VisitFieldSrc(n *ast.FieldSrc) (any, error) {
	return "[" + n.Name + "]", nil
}

func (f *Formatter) VisitFieldDst(n *ast.FieldDst) (any, error) {
	if n.Name == "" {
		return "[]", nil
	}
	if n.Type == "" {
		return "[" + n.Name + "]", nil
	}
	return "[" + n.Name + "](" + n.Type + ")", nil
}

func (f *Formatter) VisitPipeline(n *ast.Pipeline) (any, error) {
	parts := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		v, err := item.Accept(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, v.(string))
	}
	return "|" + strings.Join(parts, " | ") + "|", nil
}

func (f *Formatter) VisitFuncCall(n *ast.FuncCall) (any, error)   { return n.FullStr, nil }
func (f *Formatter) VisitDirectMap(n *ast.DirectMap) (any, error) { return n.FullStr, nil }
func (f *Formatter) VisitCondition(n *ast.Condition) (any, error) { return n.FullStr, nil }
func (f *Formatter) VisitEvent(n *ast.Event) (any, error)         { return n.FullStr, nil }
