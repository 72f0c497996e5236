package generator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
)

// orderedPipeline marshals as {"1": item1, "2": item2, …} in traversal
// order. A plain map[string]any would do for small pipelines, but Go
// marshals map keys sorted lexically, so "10" would sort before "2" — this
// type keeps a pipeline's position-keyed items in the order they actually
// ran.
type orderedPipeline []any

func (p orderedPipeline) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(strconv.Itoa(i + 1))
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *Generator) VisitPipeline(n *ast.Pipeline) (any, error) {
	if len(n.Items) == 0 {
		return nil, nil
	}
	items := make(orderedPipeline, 0, len(n.Items))
	for _, item := range n.Items {
		v, err := item.Accept(g)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (g *Generator) VisitFuncCall(n *ast.FuncCall) (any, error) {
	param, err := g.substituteArgs(n.Args, n.Line)
	if err != nil {
		return nil, err
	}
	return map[string]any{"type": "py_func", "param": param, "full_str": n.FullStr}, nil
}

func (g *Generator) VisitDirectMap(n *ast.DirectMap) (any, error) {
	param, err := g.substitute(n.Value, n.Line)
	if err != nil {
		return nil, err
	}
	return map[string]any{"type": "direct", "param": param, "full_str": n.FullStr}, nil
}

func (g *Generator) VisitEvent(n *ast.Event) (any, error) {
	return map[string]any{
		"type": "event", "sub_type": n.SubType, "param": n.Param, "full_str": n.FullStr,
	}, nil
}

// substituteArgs resolves every arg independently, then joins multiple
// resolved args with ", " the way a FuncCall with more than one argument
// renders its "param" field.
func (g *Generator) substituteArgs(args []string, line int) (string, error) {
	resolved := make([]string, len(args))
	for i, a := range args {
		v, err := g.substitute(a, line)
		if err != nil {
			return "", err
		}
		resolved[i] = v
	}
	return strings.Join(resolved, ", "), nil
}
