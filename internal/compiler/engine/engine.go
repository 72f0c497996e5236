// Package engine sequences one compilation end to end: source loading,
// function-registry build, lexing, parsing, and IR generation. It owns no
// process-level concerns (no os.Exit, no flag parsing) so it stays usable
// as a library by any caller, cmd/dtrtc included.
package engine

import (
	"encoding/json"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/config"
	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/generator"
	"github.com/btouchard/dtrtc/internal/compiler/lexer"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
	"github.com/btouchard/dtrtc/internal/compiler/parser"
	"github.com/btouchard/dtrtc/internal/compiler/registry"
	"github.com/btouchard/dtrtc/internal/compiler/resolver"
)

// declaredLangPattern mirrors the lexer's own lang= line pattern; the
// registry needs the declared target language before lexing runs, so it is
// scanned for directly in the raw text rather than waiting on a token.
var declaredLangPattern = regexp.MustCompile(`(?m)^lang\s*=\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*$`)

// Options configures one Engine. StdlibFuncsDir and UserFuncsDir are both
// optional. The registry check runs only when StdlibFuncsDir is set and the
// source declares a lang; UserFuncsDir is read only in that case. Otherwise
// every *func name is accepted without a registry check (mirroring the
// parser's own "nil means unrestricted" rule).
type Options struct {
	Ctx            config.Context
	VarsDir        string
	StdlibFuncsDir string
	UserFuncsDir   string
	Cache          resolver.Cache
}

// Engine runs one compilation of source, which is either DTRT source text
// or a path to a file containing it.
type Engine struct {
	source string
	opts   Options
	loc    *localization.Localization

	isFile bool
	result map[string]any
}

// New returns an Engine ready to compile source under opts.
func New(source string, opts Options) *Engine {
	return &Engine{
		source: source,
		opts:   opts,
		loc:    localization.New(opts.Ctx.Lang),
		isFile: detectSourceType(source),
	}
}

// detectSourceType mirrors the three-step heuristic the original
// implementation uses: a recognized file extension counts as a file, an
// arrow token counts as inline source, and otherwise fall back to checking
// the filesystem.
func detectSourceType(source string) bool {
	lower := strings.ToLower(source)
	if strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".dtrt") {
		return true
	}
	if strings.Contains(source, "->") || strings.Contains(source, "=>") {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && !info.IsDir()
}

// IsFile reports whether source was resolved as a file path.
func (e *Engine) IsFile() bool { return e.isFile }

func (e *Engine) loadSource() (string, error) {
	if !e.isFile {
		return e.source, nil
	}
	data, err := os.ReadFile(e.source)
	if err != nil {
		return "", errors.New(errors.FileNotFound, "engine", e.loc, e.opts.Ctx.Color, "", 0, nil,
			localization.P("file", e.source, "message", err.Error()))
	}
	return string(data), nil
}

// Go runs the full pipeline and returns the emitted IR. It never terminates
// the process; callers decide how to render a returned error.
func (e *Engine) Go() (map[string]any, error) {
	text, err := e.loadSource()
	if err != nil {
		return nil, err
	}

	p := parser.New(e.opts.Ctx)
	if lang := declaredLang(text); e.opts.StdlibFuncsDir != "" && lang != "" {
		reg, err := registry.Build(e.loc, e.opts.Ctx.Color, e.opts.StdlibFuncsDir, lang, e.opts.UserFuncsDir)
		if err != nil {
			return nil, err
		}
		p.SetAvailableFuncs(reg.Names(), e.opts.StdlibFuncsDir)
	}

	tokens, err := lexer.New(e.opts.Ctx).Tokenize(text)
	if err != nil {
		return nil, err
	}

	program, err := p.Parse(tokens)
	if err != nil {
		return nil, err
	}

	res := resolver.New(e.loc, e.opts.Ctx.Color, e.opts.VarsDir)
	if e.opts.Cache != nil {
		res.UseCache(e.opts.Cache)
	}

	ir, err := generator.New(e.opts.Ctx, res).Generate(program)
	if err != nil {
		return nil, err
	}

	e.result = ir
	return ir, nil
}

// declaredLang pulls the lang= value out of the raw source text, ahead of
// lexing, since the function registry must be built before the parser runs.
// Ctx.Lang (the compiler's own diagnostic language) is unrelated to this
// DSL-declared target language.
func declaredLang(text string) string {
	if m := declaredLangPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ToJSON renders the IR (running Go first if needed) as indented JSON. When
// outputFile is non-empty the JSON is written there and "" is returned.
func (e *Engine) ToJSON(outputFile string, indent string) (string, error) {
	if e.result == nil {
		if _, err := e.Go(); err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(e.result, "", indent)
	if err != nil {
		return "", err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			return "", err
		}
		return "", nil
	}
	return string(data), nil
}

// PrintJSON renders the IR as indented JSON to w.
func (e *Engine) PrintJSON(w io.Writer, indent string) error {
	s, err := e.ToJSON("", indent)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

// Result returns the IR from the most recent Go call, or nil if none ran.
func (e *Engine) Result() map[string]any { return e.result }
