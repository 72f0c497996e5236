package parser

import (
	"testing"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
	"github.com/btouchard/dtrtc/internal/compiler/config"
	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.New(config.Default()).Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	return New(config.Default()).Parse(toks)
}

func mustParseErr(t *testing.T, src string) *errors.CompileError {
	t.Helper()
	_, err := parseSource(t, src)
	if err == nil {
		t.Fatal("expected a parse error, got none")
	}
	ce, ok := err.(*errors.CompileError)
	if !ok {
		t.Fatalf("expected *errors.CompileError, got %T (%v)", err, err)
	}
	return ce
}

func TestParseMinimalProgram(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> |*round(2)| -> [total](float)
`
	program, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var routeBlocks int
	for _, c := range program.Children {
		if rb, ok := c.(*ast.RouteBlock); ok {
			routeBlocks++
			if len(rb.Routes) != 1 {
				t.Fatalf("expected 1 route, got %d", len(rb.Routes))
			}
			route := rb.Routes[0]
			if route.Src.Name != "amount" || route.Dst.Name != "total" || route.Dst.Type != "float" {
				t.Errorf("unexpected route shape: %+v / %+v", route.Src, route.Dst)
			}
			if len(route.Pipeline.Items) != 1 {
				t.Fatalf("expected 1 pipeline item, got %d", len(route.Pipeline.Items))
			}
			fc, ok := route.Pipeline.Items[0].(*ast.FuncCall)
			if !ok {
				t.Fatalf("expected *ast.FuncCall, got %T", route.Pipeline.Items[0])
			}
			if fc.FuncName != "round" || len(fc.Args) != 1 || fc.Args[0] != "2" {
				t.Errorf("unexpected func call: %+v", fc)
			}
		}
	}
	if routeBlocks != 1 {
		t.Fatalf("expected 1 route block, got %d", routeBlocks)
	}
	if _, ok := program.Targets["local"]; !ok {
		t.Error("expected target 'local' registered in Targets")
	}
}

func TestParseDuplicateTargetCompositeKey(t *testing.T) {
	src := `lang=en
source=kafka/orders
a=http/endpoint
b=http/endpoint
a:
  [x] -> [y](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.DuplicateTargetNameType {
		t.Errorf("category = %s, want %s", ce.Category, errors.DuplicateTargetNameType)
	}
}

func TestParseDuplicateGlobalVar(t *testing.T) {
	src := `lang=en
source=kafka/orders
$limit=3
$limit=4
local=http/endpoint
local:
  [x] -> [y](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.DuplicateVar {
		t.Errorf("category = %s, want %s", ce.Category, errors.DuplicateVar)
	}
}

func TestParseRouteHeaderWithoutTarget(t *testing.T) {
	src := `lang=en
source=kafka/orders
local:
  [x] -> [y](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.SemanticTarget {
		t.Errorf("category = %s, want %s", ce.Category, errors.SemanticTarget)
	}
}

func TestParseNoRouteBlocksIsFatal(t *testing.T) {
	src := "lang=en\nsource=kafka/orders\nlocal=http/endpoint\n"
	ce := mustParseErr(t, src)
	if ce.Category != errors.SemanticRoutes {
		t.Errorf("category = %s, want %s", ce.Category, errors.SemanticRoutes)
	}
}

func TestParseDuplicateFinalNameInBlock(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> [out](str)
  [b] -> [out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.DuplicateFinalName {
		t.Errorf("category = %s, want %s", ce.Category, errors.DuplicateFinalName)
	}
}

func TestParseExternalVarWriteIsFatal(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> [$$ext](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.ExternalVarWrite {
		t.Errorf("category = %s, want %s", ce.Category, errors.ExternalVarWrite)
	}
}

func TestParseGlobalVarWriteIsFatal(t *testing.T) {
	src := `lang=en
source=kafka/orders
$limit=3
local=http/endpoint
local:
  [a] -> [$limit](int)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.GlobalVarWrite {
		t.Errorf("category = %s, want %s", ce.Category, errors.GlobalVarWrite)
	}
}

func TestParseUndefinedVarInPipeline(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |*f($nope)| -> [out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.UndefinedVar {
		t.Errorf("category = %s, want %s", ce.Category, errors.UndefinedVar)
	}
}

func TestParseSrcFieldUsedAsVar(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> [outA](str)
  [b] -> |*f($a)| -> [outB](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.SrcFieldAsVar {
		t.Errorf("category = %s, want %s", ce.Category, errors.SrcFieldAsVar)
	}
}

func TestParseInvalidVarUsageSameRoute(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |*f($out)| -> [$out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.InvalidVarUsage {
		t.Errorf("category = %s, want %s", ce.Category, errors.InvalidVarUsage)
	}
}

func TestParseConditionMissingParenthesis(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |IF $a > 1: *f()| -> [out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.ConditionMissingParen {
		t.Errorf("category = %s, want %s", ce.Category, errors.ConditionMissingParen)
	}
}

func TestParseConditionMissingColon(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |IF($this > 1) *f()| -> [out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.ConditionMissingColon {
		t.Errorf("category = %s, want %s", ce.Category, errors.ConditionMissingColon)
	}
}

func TestParseConditionEmptyExpression(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |IF():*f()| -> [out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.ConditionEmptyExpr {
		t.Errorf("category = %s, want %s", ce.Category, errors.ConditionEmptyExpr)
	}
}

func TestParseElseWithoutIf(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |ELSE:*f()| -> [out](str)
`
	ce := mustParseErr(t, src)
	if ce.Category != errors.ConditionMissingIf {
		t.Errorf("category = %s, want %s", ce.Category, errors.ConditionMissingIf)
	}
}

func TestParseValidConditionChain(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |IF($this > 1):*f() ELIF($this > 0):*g() ELSE:*h()| -> [out](str)
`
	program, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb := program.Children[len(program.Children)-1].(*ast.RouteBlock)
	cond := rb.Routes[0].Pipeline.Items[0].(*ast.Condition)
	if cond.SubType != "if_elifs_else" {
		t.Errorf("SubType = %q, want %q", cond.SubType, "if_elifs_else")
	}
}

func TestParseFunctionNotFoundWhenRegistryRestricted(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |*missing()| -> [out](str)
`
	toks, err := lexer.New(config.Default()).Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	p := New(config.Default())
	p.SetAvailableFuncs(map[string]bool{"round": true}, "/funcs")
	_, err = p.Parse(toks)
	ce, ok := err.(*errors.CompileError)
	if !ok {
		t.Fatalf("expected *errors.CompileError, got %T (%v)", err, err)
	}
	if ce.Category != errors.FunctionNotFound {
		t.Errorf("category = %s, want %s", ce.Category, errors.FunctionNotFound)
	}
}

func TestParseDirectMapAndExternalVar(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [a] -> |$this| -> [out1](str)
  [b] -> |$$ext.path| -> [out2](str)
`
	program, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb := program.Children[len(program.Children)-1].(*ast.RouteBlock)
	dm0 := rb.Routes[0].Pipeline.Items[0].(*ast.DirectMap)
	if dm0.IsExternalVar {
		t.Error("$this must not be marked external")
	}
	dm1 := rb.Routes[1].Pipeline.Items[0].(*ast.DirectMap)
	if !dm1.IsExternalVar {
		t.Error("$$ext.path must be marked external")
	}
}
