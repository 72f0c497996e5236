// Package resolver loads the external-variable JSON tree a compilation can
// reference as "$$<file>.<path>…" and answers path lookups against it. A
// directory of *.json files is read once at construction time; every file's
// stem becomes a top-level key, and a lookup walks the cached value by dict
// key or list index the same way the generator's substitution pass does.
package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btouchard/dtrtc/internal/compiler/errors"
	"github.com/btouchard/dtrtc/internal/compiler/localization"
)

// NodeContext carries the diagnostic position of the AST node a lookup was
// triggered from, so a resolution failure can be anchored like any other
// compile error instead of reporting line 0.
type NodeContext struct {
	Line     string
	LineNum  int
	Position int
}

// Resolver holds the eagerly loaded external-variable tree for one compile.
type Resolver struct {
	loc   *localization.Localization
	color bool

	folderErr   *errors.CompileError // set once, reused by every lookup when the folder itself was bad
	vars        map[string]any
	cache       Cache // optional on-disk memoization layer; nil disables it
	fingerprint string
}

// New loads every *.json file directly under folder, keyed by filename stem.
// A missing or unreadable folder is not fatal here: the error is deferred
// and raised on the first lookup that actually needs it, mirroring the
// lazy folder-error behavior a program with no $$ references never pays
// for. Pass an empty folder to build a Resolver with no external variables.
func New(loc *localization.Localization, color bool, folder string) *Resolver {
	r := &Resolver{loc: loc, color: color, vars: make(map[string]any)}
	if folder == "" {
		return r
	}

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		r.folderErr = errors.New(errors.VarsFolderNotFound, "resolver", loc, color, "", 0, nil,
			localization.P("folder", folder))
		return r
	}

	matches, _ := filepath.Glob(filepath.Join(folder, "*.json"))
	var fp strings.Builder
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		r.vars[stem] = parsed
		if fi, err := os.Stat(path); err == nil {
			fmt.Fprintf(&fp, "%s:%d:%d;", stem, fi.Size(), fi.ModTime().UnixNano())
		}
	}
	r.fingerprint = fp.String()
	return r
}

// UseCache enables the on-disk memoization layer. It is strictly an
// optimization: every lookup still falls back to the in-memory tree on a
// cache miss, and a nil Cache behaves exactly as if UseCache was never
// called.
func (r *Resolver) UseCache(c Cache) { r.cache = c }

// Resolve looks up "$$file.path.to.value", returning the resolved JSON
// value. ctx, when non-nil, anchors a failure to the originating source
// line the way every other compile diagnostic is anchored.
func (r *Resolver) Resolve(varPath string, ctx *NodeContext) (any, error) {
	if !strings.HasPrefix(varPath, "$$") {
		return nil, nil
	}

	if r.folderErr != nil {
		return nil, r.anchor(r.folderErr, ctx)
	}

	if r.cache != nil {
		if v, ok := r.cache.Get(r.fingerprint, varPath); ok {
			return v, nil
		}
	}

	parts := strings.Split(varPath[2:], ".")
	if len(parts) == 0 || parts[0] == "" {
		return nil, fmt.Errorf("malformed external variable reference: %s", varPath)
	}

	fileName := parts[0]
	root, ok := r.vars[fileName]
	if !ok {
		ce := errors.New(errors.ExternalVarFileNotFound, "resolver", r.loc, r.color, "", 0, nil,
			localization.P("file", fileName))
		return nil, r.anchor(ce, ctx)
	}

	current := root
	for i := 1; i < len(parts); i++ {
		part := parts[i]
		switch node := current.(type) {
		case map[string]any:
			v, exists := node[part]
			if !exists {
				return nil, r.anchor(r.pathNotFound(parts, i), ctx)
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, r.anchor(r.pathNotFound(parts, i), ctx)
			}
			current = node[idx]
		default:
			return nil, r.anchor(r.pathNotFound(parts, i), ctx)
		}
	}

	if r.cache != nil {
		r.cache.Put(r.fingerprint, varPath, current)
	}
	return current, nil
}

func (r *Resolver) pathNotFound(parts []string, upTo int) *errors.CompileError {
	pathSoFar := strings.Join(parts[:upTo+1], ".")
	return errors.New(errors.ExternalVarPathNotFound, "resolver", r.loc, r.color, "", 0, nil,
		localization.P("path", pathSoFar))
}

// anchor re-raises ce with ctx's position when the caller supplied one, the
// same way a resolver error takes on the source_line/line_num/position of
// the node that triggered the lookup.
func (r *Resolver) anchor(ce *errors.CompileError, ctx *NodeContext) *errors.CompileError {
	if ctx == nil {
		return ce
	}
	anchored := *ce
	anchored.Line = ctx.Line
	anchored.LineNum = ctx.LineNum
	anchored.Position = ctx.Position
	return &anchored
}
