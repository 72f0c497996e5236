package generator

import (
	"strconv"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
)

func (g *Generator) VisitSource(n *ast.Source) (any, error) {
	g.sourceType = map[string]string{"type": n.Type, "name": n.Name}
	return nil, nil
}

// VisitTarget is a no-op: the composite key a target contributes is already
// reachable through Program.Targets, captured once in VisitProgram.
func (g *Generator) VisitTarget(n *ast.Target) (any, error) { return nil, nil }

func (g *Generator) VisitRouteBlock(n *ast.RouteBlock) (any, error) {
	target, ok := g.targets[n.TargetLocalName]
	if !ok {
		// The parser guarantees every RouteBlock names a declared target;
		// this branch is unreachable in practice and exists only so a
		// malformed hand-built AST fails soft instead of panicking.
		g.currentKey = n.TargetLocalName
	} else {
		key := target.Key()
		if _, exists := g.result[key]; !exists {
			g.result[key] = map[string]any{
				"sourse_type": g.sourceType,
				"target_type": map[string]string{"type": target.Type, "name": target.Value},
				"routes":      make(map[string]any),
			}
		}
		g.currentKey = key
	}

	for _, route := range n.Routes {
		if _, err := route.Accept(g); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (g *Generator) VisitRouteLine(n *ast.RouteLine) (any, error) {
	srcVal, err := n.Src.Accept(g)
	if err != nil {
		return nil, err
	}
	pipelineVal, err := n.Pipeline.Accept(g)
	if err != nil {
		return nil, err
	}

	var finalName, finalType any
	if n.Dst != nil {
		dv, err := n.Dst.Accept(g)
		if err != nil {
			return nil, err
		}
		if d := dv.(*fieldDst); !d.void {
			finalName, finalType = d.name, d.typ
		}
	}

	bucket, ok := g.result[g.currentKey].(map[string]any)
	if !ok {
		return nil, nil
	}
	routes := bucket["routes"].(map[string]any)

	routeKey, _ := srcVal.(string)
	if routeKey == "" {
		routeKey = g.voidKey()
	}

	newRoute := map[string]any{"pipeline": pipelineVal, "final_type": finalType, "final_name": finalName}
	switch existing := routes[routeKey].(type) {
	case nil:
		routes[routeKey] = newRoute
	case []any:
		routes[routeKey] = append(existing, newRoute)
	default:
		routes[routeKey] = []any{existing, newRoute}
	}

	return nil, nil
}

func (g *Generator) VisitFieldSrc(n *ast.FieldSrc) (any, error) { return n.Name, nil }

// fieldDst is VisitFieldDst's return value: void distinguishes the empty
// "[]" destination from a present-but-nameless one, which can't otherwise
// be told apart from the zero value of a plain (string, string) pair.
type fieldDst struct {
	name string
	typ  string
	void bool
}

func (g *Generator) VisitFieldDst(n *ast.FieldDst) (any, error) {
	if n.Name == "" {
		return &fieldDst{void: true}, nil
	}
	return &fieldDst{name: n.Name, typ: n.Type}, nil
}

func (g *Generator) VisitGlobalVar(n *ast.GlobalVar) (any, error) {
	g.globalVars[n.Name] = map[string]any{"type": n.InferredType, "value": n.Value}
	return nil, nil
}

// voidKey mints the next "__void<n>" route key for the target currently
// being walked, one counter per target so two targets never collide.
func (g *Generator) voidKey() string {
	g.voidCounters[g.currentKey]++
	return "__void" + strconv.Itoa(g.voidCounters[g.currentKey])
}
