package errors

import (
	"regexp"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/localization"
)

var (
	sequentialPipelineRe = regexp.MustCompile(`\|[^|]*\|\s*(?:->|=>|-|>)\s*\|`)
	sourceSyntaxRe       = regexp.MustCompile(`^source\s+\w+`)
	targetSyntaxRe       = regexp.MustCompile(`=\s*\w+\s*\[\s*["'](.*?)["']`)
	fieldOnlyRe          = regexp.MustCompile(`\[\s*([a-zA-Z0-9_]+)\s*\]`)
	typeInParensRe       = regexp.MustCompile(`\(([a-zA-Z0-9_]+)\)`)
	closeBracketRe       = regexp.MustCompile(`\]`)
	openBracketMissingRe = regexp.MustCompile(`(?:[^\[]|^)(\w+)\]`)
)

// allowedTypes is the set validated against an invalid-type diagnosis.
var allowedTypes = []string{
	"str", "int", "float", "bool", "dict", "list", "tuple", "set",
	"datetime", "date", "time", "Decimal", "uuid", "bytes", "any",
}

func isAllowedType(t string) bool {
	for _, a := range allowedTypes {
		if a == t {
			return true
		}
	}
	return false
}

// Analyze is the heuristic fallback invoked when a non-blank line matched no
// lexer pattern. It ports SyntaxErrorHandler.analyze: a sequence of targeted
// checks, from most to least specific, ending in a generic Unknown category.
func Analyze(loc *localization.Localization, color bool, line string, lineNum int) *CompileError {
	if i := strings.Index(line, "||"); i != -1 {
		pos := i + 1
		return New(PipelineEmpty, "lexer", loc, color, line, lineNum, &pos, nil)
	}

	if m := sequentialPipelineRe.FindStringIndex(line); m != nil {
		pos := m[1] - 1
		return New(PipelineEmpty, "lexer", loc, color, line, lineNum, &pos, nil).
			WithHint(loc.Get(localization.Hint.SequentialPipelines, nil))
	}

	if sourceSyntaxRe.MatchString(line) {
		pos := strings.Index(line, "source") + len("source")
		return New(SyntaxSource, "lexer", loc, color, line, lineNum, &pos, nil)
	}

	if targetSyntaxRe.MatchString(line) {
		pos := strings.Index(line, "[")
		return New(SyntaxTarget, "lexer", loc, color, line, lineNum, &pos, nil)
	}

	if strings.Contains(line, "->") && strings.Contains(line, "]") {
		if m := fieldOnlyRe.FindStringSubmatchIndex(line); m != nil {
			fieldPos := m[1]
			rest := line[fieldPos:]
			if fieldPos < len(line) && !strings.Contains(rest, "(") {
				name := line[m[2]:m[3]]
				if name != "" {
					arrowPos := strings.LastIndex(line, "->")
					if arrowPos != -1 && fieldPos > arrowPos {
						return New(FinalType, "lexer", loc, color, line, lineNum, &fieldPos, nil)
					}
				}
			}
		}

		if lastBracket := strings.LastIndex(line, "]"); lastBracket != -1 {
			after := line[lastBracket:]
			if tm := typeInParensRe.FindStringSubmatchIndex(after); tm != nil {
				dataType := after[tm[2]:tm[3]]
				if !isAllowedType(dataType) {
					pos := lastBracket + strings.Index(after, "(") + 1
					return New(InvalidType, "lexer", loc, color, line, lineNum, &pos,
						localization.P("data_type", dataType, "allowed_types", strings.Join(allowedTypes, ", ")))
				}
			}
			openP := strings.Index(after, "(")
			closeP := strings.Index(after, ")")
			if openP != -1 && closeP != -1 && openP < closeP && strings.TrimSpace(after[openP+1:closeP]) == "" {
				openBracket := strings.LastIndex(line, "[")
				content := strings.TrimSpace(line[openBracket+1 : lastBracket])
				if content == "" {
					pos := lastBracket + 1
					return New(VoidType, "lexer", loc, color, line, lineNum, &pos, nil)
				}
				pos := strings.Index(after, "(") + 1
				return New(FinalType, "lexer", loc, color, line, lineNum, &pos, nil)
			}
		}
	}

	if strings.Contains(line, "]") && strings.Contains(line, "[") {
		directionRe := regexp.MustCompile(`\s*(?:->|=>|-|>|\()`)
		for _, m := range closeBracketRe.FindAllStringIndex(line, -1) {
			endPos := m[1]
			if endPos < len(line)-1 && !directionRe.MatchString(line[endPos:]) {
				if strings.Contains(line[endPos:], "[") {
					return New(FlowDirection, "lexer", loc, color, line, lineNum, &endPos, nil)
				}
			}
		}
	}

	pipeCount := strings.Count(line, "|")
	if pipeCount > 0 && pipeCount%2 != 0 {
		pos := strings.LastIndex(line, "|")
		return New(PipelineClosingBar, "lexer", loc, color, line, lineNum, &pos, nil)
	}

	openCnt, closeCnt := strings.Count(line, "["), strings.Count(line, "]")
	if openCnt != closeCnt {
		if openCnt > closeCnt {
			for _, m := range regexp.MustCompile(`\[`).FindAllStringIndex(line, -1) {
				start := m[0]
				if !strings.Contains(line[start+1:], "]") {
					return New(BracketMissing, "lexer", loc, color, line, lineNum, &start, nil)
				}
			}
		} else {
			for _, m := range closeBracketRe.FindAllStringIndex(line, -1) {
				end := m[0]
				preceding := line[:end]
				if strings.Count(preceding, "[") < strings.Count(preceding, "]")+1 {
					return New(BracketMissing, "lexer", loc, color, line, lineNum, &end, nil)
				}
			}
		}
	}

	if m := openBracketMissingRe.FindStringSubmatchIndex(line); m != nil {
		pos := m[2]
		return New(BracketMissing, "lexer", loc, color, line, lineNum, &pos, nil)
	}

	zero := 0
	return New(Unknown, "lexer", loc, color, line, lineNum, &zero, nil)
}
