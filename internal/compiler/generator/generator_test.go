package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btouchard/dtrtc/internal/compiler/ast"
	"github.com/btouchard/dtrtc/internal/compiler/config"
	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/lexer"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
	"github.com/btouchard/dtrtc/internal/compiler/parser"
	"github.com/btouchard/dtrtc/internal/compiler/resolver"
)

func compile(t *testing.T, src, varsDir string) map[string]any {
	t.Helper()
	toks, err := lexer.New(config.Default()).Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	program, err := parser.New(config.Default()).Parse(toks)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	res := resolver.New(localization.New("en"), false, varsDir)
	ir, err := New(config.Default(), res).Generate(program)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return ir
}

func TestGenerateMinimalProgram(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> |*round(2)| -> [total](float)
`
	ir := compile(t, src, "")
	bucket, ok := ir["http/endpoint"].(map[string]any)
	if !ok {
		t.Fatalf("missing bucket http/endpoint in %+v", ir)
	}
	if bucket["sourse_type"].(map[string]string)["type"] != "kafka" {
		t.Errorf("sourse_type = %+v", bucket["sourse_type"])
	}
	routes := bucket["routes"].(map[string]any)
	route := routes["amount"].(map[string]any)
	if route["final_name"] != "total" || route["final_type"] != "float" {
		t.Errorf("route = %+v", route)
	}
	pipeline := route["pipeline"].(orderedPipeline)
	item := pipeline[0].(map[string]any)
	if item["type"] != "py_func" || item["param"] != "2" || item["full_str"] != "*round(2)" {
		t.Errorf("pipeline item = %+v", item)
	}
}

func TestGenerateVoidSrcFieldGetsCounterKey(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [] -> |*touch()| -> [ping](bool)
  [] -> |*touch()| -> [ping2](bool)
`
	ir := compile(t, src, "")
	routes := ir["http/endpoint"].(map[string]any)["routes"].(map[string]any)
	if _, ok := routes["__void1"]; !ok {
		t.Errorf("expected __void1 key, got %+v", routes)
	}
	if _, ok := routes["__void2"]; !ok {
		t.Errorf("expected __void2 key, got %+v", routes)
	}
}

func TestGenerateDuplicateRouteKeyCoercesToList(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> [out1](str)
  [amount] -> [out2](str)
`
	ir := compile(t, src, "")
	routes := ir["http/endpoint"].(map[string]any)["routes"].(map[string]any)
	list, ok := routes["amount"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected a 2-element list for duplicate route key, got %+v", routes["amount"])
	}
}

func TestGenerateGlobalVarsTopLevel(t *testing.T) {
	src := `lang=en
source=kafka/orders
$limit=3
local=http/endpoint
local:
  [amount] -> |*cap($limit)| -> [out](int)
`
	ir := compile(t, src, "")
	gv, ok := ir["global_vars"].(map[string]map[string]any)
	if !ok {
		t.Fatalf("missing global_vars in %+v", ir)
	}
	if gv["limit"]["value"] != 3 {
		t.Errorf("global_vars[limit] = %+v", gv["limit"])
	}
	routes := ir["http/endpoint"].(map[string]any)["routes"].(map[string]any)
	pipeline := routes["amount"].(map[string]any)["pipeline"].(orderedPipeline)
	item := pipeline[0].(map[string]any)
	if item["param"] != "3" {
		t.Errorf("param = %v, want substituted global var value 3", item["param"])
	}
}

func TestGenerateGlobalVarUsageLineTopLevelEntry(t *testing.T) {
	src := `lang=en
source=kafka/orders
$limit=3
local=http/endpoint
local:
  [amount] -> [out](int)
  $limit
`
	ir := compile(t, src, "")
	if _, ok := ir["__GLOBVAR__limit"]; !ok {
		t.Errorf("expected __GLOBVAR__limit top-level entry, got keys %v", keysOf(ir))
	}
}

func keysOf(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestGenerateExternalVarSubstitution(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "accounts.json"), []byte(`{"tier":"gold"}`), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> |*tag($$accounts.tier)| -> [out](str)
`
	ir := compile(t, src, dir)
	routes := ir["http/endpoint"].(map[string]any)["routes"].(map[string]any)
	pipeline := routes["amount"].(map[string]any)["pipeline"].(orderedPipeline)
	item := pipeline[0].(map[string]any)
	if item["param"] != `gold` {
		t.Errorf("param = %v, want the unquoted string gold", item["param"])
	}
}

func TestGenerateExternalVarListSubstitutionUsesPythonSeparators(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "accounts.json"), []byte(`{"tags":["one","two","three"]}`), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> |*tag($$accounts.tags, test)| -> [out](str)
`
	ir := compile(t, src, dir)
	routes := ir["http/endpoint"].(map[string]any)["routes"].(map[string]any)
	pipeline := routes["amount"].(map[string]any)["pipeline"].(orderedPipeline)
	item := pipeline[0].(map[string]any)
	want := `["one", "two", "three"], test`
	if item["param"] != want {
		t.Errorf("param = %v, want %v", item["param"], want)
	}
}

func TestGenerateExternalVarMissingFolderIsFatal(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> |*tag($$accounts.tier)| -> [out](str)
`
	toks, err := lexer.New(config.Default()).Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	program, err := parser.New(config.Default()).Parse(toks)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	res := resolver.New(localization.New("en"), false, filepath.Join(t.TempDir(), "missing"))
	_, err = New(config.Default(), res).Generate(program)
	ce, ok := err.(*errors.CompileError)
	if !ok {
		t.Fatalf("expected *errors.CompileError, got %T (%v)", err, err)
	}
	if ce.Category != errors.VarsFolderNotFound {
		t.Errorf("category = %s, want %s", ce.Category, errors.VarsFolderNotFound)
	}
}

func TestGenerateConditionChain(t *testing.T) {
	src := `lang=en
source=kafka/orders
local=http/endpoint
local:
  [amount] -> |IF($this > 100):*flagHigh() ELIF($this > 10):*flagMid() ELSE:SKIP(low value)| -> [out](str)
`
	ir := compile(t, src, "")
	routes := ir["http/endpoint"].(map[string]any)["routes"].(map[string]any)
	pipeline := routes["amount"].(map[string]any)["pipeline"].(orderedPipeline)
	cond := pipeline[0].(map[string]any)

	if cond["type"] != "condition" || cond["sub_type"] != "if_elifs_else" {
		t.Fatalf("condition shape = %+v", cond)
	}
	ifBranch := cond["if"].(map[string]any)
	if ifBranch["exp"].(map[string]any)["type"] != "cond_exp" {
		t.Errorf("if.exp = %+v", ifBranch["exp"])
	}
	if ifBranch["do"].(map[string]any)["type"] != "py_func" {
		t.Errorf("if.do = %+v", ifBranch["do"])
	}
	elif1 := cond["elif_1"].(map[string]any)
	if elif1["do"].(map[string]any)["full_str"] != "*flagMid()" {
		t.Errorf("elif_1.do = %+v", elif1["do"])
	}
	elseBranch := cond["else"].(map[string]any)
	elseDo := elseBranch["do"].(map[string]any)
	if elseDo["type"] != "event" || elseDo["sub_type"] != "SKIP" || elseDo["param"] != "low value" {
		t.Errorf("else.do = %+v", elseDo)
	}
}

func TestGenerateDuplicateTargetCompositeKeyIsFatal(t *testing.T) {
	program := ast.NewProgram()
	program.Targets["a"] = &ast.Target{LocalName: "a", Type: "http", Value: "endpoint"}
	program.Targets["b"] = &ast.Target{LocalName: "b", Type: "http", Value: "endpoint"}

	res := resolver.New(localization.New("en"), false, "")
	_, err := New(config.Default(), res).Generate(program)
	ce, ok := err.(*errors.CompileError)
	if !ok {
		t.Fatalf("expected *errors.CompileError, got %T (%v)", err, err)
	}
	if ce.Category != errors.DuplicateTargetNameType {
		t.Errorf("category = %s, want %s", ce.Category, errors.DuplicateTargetNameType)
	}
}
