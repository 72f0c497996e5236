// Package errors implements the diagnostic engine: a closed set of
// categories, a position-guessing table per category, and a renderer that
// produces the source-anchored, localized, color-markup-aware error block
// described by the diagnostics component. It is the only place a fatal
// compiler problem is turned into user-facing text.
package errors

import (
	"fmt"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/localization"
)

// Category is the closed set of diagnostic kinds the compiler can raise.
type Category string

const (
	PipelineClosingBar      Category = "pipeline-closing-bar"
	BracketMissing          Category = "bracket-missing"
	FlowDirection           Category = "flow-direction"
	FinalType               Category = "final-type"
	VoidType                Category = "void-type"
	SyntaxSource            Category = "syntax-source"
	SyntaxTarget            Category = "syntax-target"
	SemanticTarget          Category = "semantic-target"
	SemanticRoutes          Category = "semantic-routes"
	PipelineEmpty           Category = "pipeline-empty"
	InvalidType             Category = "invalid-type"
	UndefinedVar            Category = "undefined-var"
	InvalidVarUsage         Category = "invalid-var-usage"
	SrcFieldAsVar           Category = "src-field-as-var"
	DuplicateFinalName      Category = "duplicate-final-name"
	DuplicateTargetNameType Category = "duplicate-target-name-type"
	DuplicateVar            Category = "duplicate-var"
	ConditionMissingIf      Category = "condition-missing-if"
	ConditionMissingParen   Category = "condition-missing-parenthesis"
	ConditionEmptyExpr      Category = "condition-empty-expression"
	ConditionMissingColon   Category = "condition-missing-colon"
	ConditionInvalid        Category = "condition-invalid"
	FunctionNotFound        Category = "function-not-found"
	FunctionConflict        Category = "function-conflict"
	FunctionFolderNotFound  Category = "function-folder-not-found"
	VarsFolderNotFound      Category = "vars-folder-not-found"
	ExternalVarFileNotFound Category = "external-var-file-not-found"
	ExternalVarPathNotFound Category = "external-var-path-not-found"
	ExternalVarWrite        Category = "external-var-write"
	GlobalVarWrite          Category = "global-var-write"
	UndefinedGlobalVar      Category = "undefined-global-var"
	MissingTargetLang       Category = "missing-target-lang"
	UnsupportedTargetLang   Category = "unsupported-target-lang"
	UnknownPipelineSegment  Category = "unknown-pipeline-segment"
	FileNotFound            Category = "file-not-found"
	Unknown                 Category = "unknown"
)

// CompileError is the single concrete diagnostic type. It implements error,
// and additionally knows how to Render itself as the full caret-pointer
// block once given a Localization and a color preference — both threaded in
// explicitly by the caller rather than read from global state.
type CompileError struct {
	Category Category
	Phase    string // "lexer", "parser", "resolver", "generator", "registry", "engine"
	Line     string // verbatim source line; empty for non-positional errors
	LineNum  int    // 0 when not anchored to a specific source line
	Position int
	Params   map[string]string // substituted into both message and hint templates
	Hint     string            // explicit hint text; overrides the category default when set

	Loc   *localization.Localization
	Color bool
}

// New builds a CompileError, resolving Position via the category's
// position-guessing function when pos is nil.
func New(category Category, phase string, loc *localization.Localization, color bool, line string, lineNum int, pos *int, params map[string]string) *CompileError {
	p := 0
	if pos != nil {
		p = *pos
	} else {
		p = GuessPosition(category, line, params)
	}
	return &CompileError{
		Category: category,
		Phase:    phase,
		Line:     line,
		LineNum:  lineNum,
		Position: p,
		Params:   params,
		Loc:      loc,
		Color:    color,
	}
}

// WithHint overrides the category's default hint with explicit text.
func (e *CompileError) WithHint(hint string) *CompileError {
	e.Hint = hint
	return e
}

// Error satisfies the error interface with the fully rendered diagnostic.
func (e *CompileError) Error() string {
	return e.Render()
}

// Render produces the full diagnostic block:
//
//	Error in line <N>:
//	<original line verbatim>
//	<spaces><caret ^>
//	<localized error message>
//	Possible solution: <localized hint>
//
// When LineNum is 0 the error is not anchored to a source line (e.g. a
// missing external-variables directory discovered before any line is read);
// in that case only the message and hint are rendered.
func (e *CompileError) Render() string {
	loc := e.Loc
	if loc == nil {
		loc = localization.New(localization.DefaultLanguage)
	}
	message := loc.Get(messageFor(e.Category), e.Params)
	message = localization.Colorize(message, e.Color)

	var lines []string
	if e.LineNum > 0 {
		prefix := loc.Get(localization.Error.LinePrefix, localization.P("line_num", fmt.Sprintf("%d", e.LineNum)))
		pointer := strings.Repeat(" ", max(e.Position, 0)) + "^"
		lines = append(lines, localization.Colorize(prefix, e.Color), e.Line, pointer, message)
	} else {
		lines = append(lines, message)
	}

	hint := e.Hint
	if hint == "" {
		if hm := hintFor(e.Category); hm != nil {
			hint = loc.Get(hm, e.Params)
		}
	}
	if hint != "" {
		label := loc.Get(localization.Hint.Label, nil)
		lines = append(lines, localization.Colorize(label, e.Color)+" "+localization.Colorize(hint, e.Color))
	}

	return strings.Join(lines, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func messageFor(c Category) localization.Message {
	switch c {
	case PipelineClosingBar:
		return localization.Error.PipelineClosingBar
	case BracketMissing:
		return localization.Error.BracketMissing
	case FlowDirection:
		return localization.Error.FlowDirection
	case FinalType:
		return localization.Error.FinalType
	case VoidType:
		return localization.Error.VoidType
	case SyntaxSource:
		return localization.Error.SyntaxSource
	case SyntaxTarget:
		return localization.Error.SyntaxTarget
	case SemanticTarget:
		return localization.Error.SemanticTarget
	case SemanticRoutes:
		return localization.Error.SemanticRoutes
	case PipelineEmpty:
		return localization.Error.PipelineEmpty
	case InvalidType:
		return localization.Error.InvalidType
	case UndefinedVar:
		return localization.Error.UndefinedVar
	case InvalidVarUsage:
		return localization.Error.InvalidVarUsage
	case SrcFieldAsVar:
		return localization.Error.SrcFieldAsVar
	case DuplicateFinalName:
		return localization.Error.DuplicateFinalName
	case DuplicateTargetNameType:
		return localization.Error.DuplicateTargetNameType
	case DuplicateVar:
		return localization.Error.DuplicateVar
	case ConditionMissingIf:
		return localization.Error.ConditionMissingIf
	case ConditionMissingParen:
		return localization.Error.ConditionMissingParen
	case ConditionEmptyExpr:
		return localization.Error.ConditionEmptyExpr
	case ConditionMissingColon:
		return localization.Error.ConditionMissingColon
	case ConditionInvalid:
		return localization.Error.ConditionInvalid
	case FunctionNotFound:
		return localization.Error.FunctionNotFound
	case FunctionConflict:
		return localization.Error.FunctionConflict
	case FunctionFolderNotFound:
		return localization.Error.FunctionFolderNotFound
	case VarsFolderNotFound:
		return localization.Error.VarsFolderNotFound
	case ExternalVarFileNotFound:
		return localization.Error.ExternalVarFileNotFound
	case ExternalVarPathNotFound:
		return localization.Error.ExternalVarPathNotFound
	case ExternalVarWrite:
		return localization.Error.ExternalVarWrite
	case GlobalVarWrite:
		return localization.Error.GlobalVarWrite
	case UndefinedGlobalVar:
		return localization.Error.UndefinedGlobalVar
	case MissingTargetLang:
		return localization.Error.MissingTargetLang
	case UnsupportedTargetLang:
		return localization.Error.UnsupportedTargetLang
	case UnknownPipelineSegment:
		return localization.Error.UnknownPipelineSegment
	case FileNotFound:
		return localization.Error.FileNotFound
	default:
		return localization.Error.Unknown
	}
}

func hintFor(c Category) localization.Message {
	switch c {
	case PipelineClosingBar:
		return localization.Hint.AddClosingBar
	case BracketMissing:
		return localization.Hint.CheckBrackets
	case FlowDirection:
		return localization.Hint.UseFlowSymbol
	case FinalType:
		return localization.Hint.SpecifyType
	case VoidType:
		return localization.Hint.VoidNoType
	case SyntaxSource:
		return localization.Hint.SourceSyntax
	case SyntaxTarget:
		return localization.Hint.TargetSyntax
	case SemanticTarget:
		return localization.Hint.TargetDefinitionMissing
	case SemanticRoutes:
		return localization.Hint.RoutesMissing
	case PipelineEmpty:
		return localization.Hint.PipelineMustHaveContent
	case InvalidType:
		return localization.Hint.AllowedTypes
	case FunctionNotFound:
		return localization.Hint.FuncAvailable
	case FunctionConflict:
		return localization.Hint.FuncConflict
	case VarsFolderNotFound, FunctionFolderNotFound:
		return localization.Hint.VarsFolderNotFound
	case ExternalVarFileNotFound:
		return localization.Hint.ExternalVarFileNotFound
	case ExternalVarPathNotFound:
		return localization.Hint.ExternalVarPathNotFound
	case FileNotFound:
		return localization.Hint.FileNotFound
	default:
		return nil
	}
}
