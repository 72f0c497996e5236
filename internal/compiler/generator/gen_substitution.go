package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/resolver"
)

var (
	externalVarPattern  = regexp.MustCompile(`\$\$[a-zA-Z0-9_.]+`)
	globalVarRefPattern = regexp.MustCompile(`\$(\^)?([a-zA-Z_][a-zA-Z0-9_]*)`)
)

// substitute resolves every "$$file.path" external reference in s, then
// every "$name" global-variable reference in the resulting string, in that
// order — a "$name" inside an external reference's resolved value is
// substituted as well.
func (g *Generator) substitute(s string, line int) (string, error) {
	withExternals, err := g.resolveExternalVarsInStr(s, line)
	if err != nil {
		return "", err
	}
	return g.resolveGlobalVarsInStr(withExternals), nil
}

func (g *Generator) resolveExternalVarsInStr(s string, line int) (string, error) {
	matches := externalVarPattern.FindAllStringIndex(s, -1)
	if matches == nil {
		return s, nil
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		varPath := s[m[0]:m[1]]
		ctx := &resolver.NodeContext{Line: s, LineNum: line}
		val, err := g.res.Resolve(varPath, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(stringifyValue(val))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

// resolveGlobalVarsInStr substitutes "$name" with its global value, leaving
// "$this", any "$^name" pre-reference, and any not-yet-resolved "$$…"
// external reference untouched.
func (g *Generator) resolveGlobalVarsInStr(s string) string {
	matches := globalVarRefPattern.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && s[start-1] == '$' {
			continue
		}
		isPre := m[2] != -1
		name := s[m[4]:m[5]]
		if isPre || name == "this" {
			continue
		}
		gv, ok := g.globalVars[name]
		var replacement string
		if !ok {
			replacement = "$" + name
		} else {
			replacement = stringifyValue(gv["value"])
		}
		b.WriteString(s[last:start])
		b.WriteString(replacement)
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// stringifyValue renders a resolved JSON value the way a substituted
// pipeline parameter needs it: structured values serialize back to JSON
// text, everything else prints as its plain textual form.
func stringifyValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return encodeJSONValue(v)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}

// encodeJSONValue re-renders v with Python's json.dumps(ensure_ascii=False)
// default separators (", " and ": ") instead of encoding/json's compact
// ","/":" — the original generator's substituted params carry a space after
// every comma and colon, and this keeps params byte-identical to it.
func encodeJSONValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, encodeJSONScalar(k)+": "+encodeJSONValue(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, encodeJSONValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return encodeJSONScalar(val)
	}
}

// encodeJSONScalar encodes one leaf value (string, number, bool, nil) with
// HTML escaping disabled, mirroring ensure_ascii=False not touching '<'/'>'/'&'.
func encodeJSONScalar(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
