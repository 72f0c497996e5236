// Package registry enumerates the transformation function names a
// compilation may call from a `*func(...)` pipeline segment. It has no
// opinion on what a function does — only on whether its name exists and in
// which of the two source directories (standard library, user-supplied) it
// was declared, so a name declared in both can be reported as a conflict.
package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
)

// supportedLangs is the closed set of target languages with a standard
// library subdirectory under stdlibRoot.
var supportedLangs = map[string]bool{
	"py": true,
}

// Registry is the built set of available function names, keyed by name with
// the declaring directory recorded for diagnostics.
type Registry struct {
	names map[string]string // func name -> "std" or "user"
}

// Build enumerates stdlibRoot/<lang> and, if userDir is non-empty, userDir,
// and returns a Registry holding every eligible file stem. lang must name a
// supported standard-library subdirectory; userDir, if given, must exist.
// A name declared in both directories is a fatal conflict.
func Build(loc *localization.Localization, color bool, stdlibRoot, lang, userDir string) (*Registry, error) {
	if !supportedLangs[lang] {
		return nil, errors.New(errors.UnsupportedTargetLang, "registry", loc, color, "", 0, nil,
			localization.P("lang", lang))
	}

	stdDir := filepath.Join(stdlibRoot, lang)
	stdNames, err := scan(stdDir)
	if err != nil {
		return nil, errors.New(errors.FunctionFolderNotFound, "registry", loc, color, "", 0, nil,
			localization.P("folder", stdDir))
	}

	r := &Registry{names: make(map[string]string, len(stdNames))}
	for _, name := range stdNames {
		r.names[name] = "std"
	}

	if userDir == "" {
		return r, nil
	}

	userNames, err := scan(userDir)
	if err != nil {
		return nil, errors.New(errors.FunctionFolderNotFound, "registry", loc, color, "", 0, nil,
			localization.P("folder", userDir))
	}
	for _, name := range userNames {
		if _, exists := r.names[name]; exists {
			return nil, errors.New(errors.FunctionConflict, "registry", loc, color, "", 0, nil,
				localization.P("func_name", name))
		}
		r.names[name] = "user"
	}

	return r, nil
}

// scan lists the file stems in dir eligible as function names: the basename
// (extension stripped) of every regular file not starting with "_".
func scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := e.Name()
		if strings.HasPrefix(base, "_") {
			continue
		}
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			continue
		}
		names = append(names, stem)
	}
	return names, nil
}

// Has reports whether name is an available function.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Names returns the set of available function names, suitable for
// Parser.SetAvailableFuncs.
func (r *Registry) Names() map[string]bool {
	out := make(map[string]bool, len(r.names))
	for name := range r.names {
		out[name] = true
	}
	return out
}
