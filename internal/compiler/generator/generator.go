// Package generator walks the AST and emits the compiler's IR: a mapping
// keyed by a target's composite "{type}/{name}" string, each value holding
// the source type, the target type, and a routes table built up as the
// visitor crosses every RouteLine. It is one of two ast.Visitor
// implementations (formatter.Formatter is the other); the errors it can
// return are a repeated composite target key and a failed external-variable
// lookup.
package generator

import (
	"sort"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
	"github.com/btouchard/dtrtc/internal/compiler/config"
	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
	"github.com/btouchard/dtrtc/internal/compiler/resolver"
	"github.com/btouchard/dtrtc/internal/compiler/token"
)

// Generator is a single-use ast.Visitor: build one, call Generate once.
type Generator struct {
	ctx config.Context
	loc *localization.Localization
	res *resolver.Resolver

	result       map[string]any
	sourceType   map[string]string
	targets      map[string]*ast.Target // local name -> declaration, from Program.Targets
	currentKey   string                 // composite key of the RouteBlock being walked
	voidCounters map[string]int
	globalVars   map[string]map[string]any
}

// New returns a Generator that resolves "$$…" references through res. Pass a
// Resolver built with an empty folder when the program has no external
// variables.
func New(ctx config.Context, res *resolver.Resolver) *Generator {
	return &Generator{
		ctx:          ctx,
		loc:          localization.New(ctx.Lang),
		res:          res,
		result:       make(map[string]any),
		voidCounters: make(map[string]int),
		globalVars:   make(map[string]map[string]any),
	}
}

// Generate produces the IR for program.
func (g *Generator) Generate(program *ast.Program) (map[string]any, error) {
	v, err := program.Accept(g)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func (g *Generator) VisitProgram(n *ast.Program) (any, error) {
	g.targets = n.Targets

	keys := make([]string, 0, len(n.Targets))
	for name := range n.Targets {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	seen := make(map[string]bool)
	for _, name := range keys {
		key := n.Targets[name].Key()
		if seen[key] {
			return nil, errors.New(errors.DuplicateTargetNameType, "generator", g.loc, g.ctx.Color, "", 0, nil,
				localization.P("key", key))
		}
		seen[key] = true
	}

	for _, tok := range n.Tokens {
		if tok.Kind != token.GLOBAL_VAR_USAGE {
			continue
		}
		up := tok.Payload.(token.GlobalVarUsagePayload)
		g.result["__GLOBVAR__"+up.VarName] = map[string]any{
			"pipeline":   nil,
			"final_type": nil,
			"final_name": nil,
		}
	}

	for _, child := range n.Children {
		if _, err := child.Accept(g); err != nil {
			return nil, err
		}
	}

	if len(g.globalVars) > 0 {
		g.result["global_vars"] = g.globalVars
	}

	return g.result, nil
}
