/*

Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package resolve implements Node-style specifier resolution: relative and
// absolute paths, bare package specifiers with package.json "exports"/
// "imports" conditional matching, extension probing, main-field fallback,
// and node_modules ascent. This is the concrete default for the
// modulegraph.Resolver interface; modulegraph itself never embeds this
// logic, per the "resolver as a collaborator" design note.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.bennypowers.dev/jsgraph/manifest"
	"go.bennypowers.dev/jsgraph/modulegraph"
	"go.bennypowers.dev/jsgraph/tsconfig"
)

// DefaultConditions, DefaultExtensions, and DefaultMainFields are the
// builder's configuration table from spec §6.
var (
	DefaultConditions = []string{"import", "module", "require", "node", "default"}
	DefaultExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".mjs", ".cjs", ".js", ".jsx"}
	DefaultMainFields = []string{"module", "main"}
)

// Resolver implements modulegraph.Resolver with Node-style resolution,
// optionally consulting a merged tsconfig "paths" table for bare
// specifiers that match a mapped pattern before falling back to
// node_modules ascent.
type Resolver struct {
	Conditions []string
	Extensions []string
	MainFields []string

	// TSConfigBaseURL and TSConfigPaths, when set, are consulted for bare
	// specifiers before node_modules ascent, mirroring tsconfig-aware
	// bundlers (esbuild's internal/resolver).
	TSConfigBaseURL string
	TSConfigPaths   map[string][]string

	pkgCache map[string]*manifest.PackageJSON
}

// New builds a Resolver with the builder's default configuration table.
func New() *Resolver {
	return &Resolver{
		Conditions: DefaultConditions,
		Extensions: DefaultExtensions,
		MainFields: DefaultMainFields,
		pkgCache:   make(map[string]*manifest.PackageJSON),
	}
}

// WithTSConfig attaches a merged tsconfig.json compiler-options paths
// table to the resolver.
func (r *Resolver) WithTSConfig(opts tsconfig.CompilerOptions) *Resolver {
	r.TSConfigBaseURL = opts.BaseURL
	r.TSConfigPaths = opts.Paths
	return r
}

// Resolve implements modulegraph.Resolver.
func (r *Resolver) Resolve(parentDir, specifier string) (modulegraph.ResolveResult, error) {
	spec, query, fragment := cutQueryFragment(specifier)

	var (
		path string
		pkg  *manifest.PackageJSON
		err  error
	)

	switch {
	case strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/"):
		path, err = r.resolveFileOrDir(joinSpecifier(parentDir, spec))
	case r.TSConfigPaths != nil:
		if mapped, ok := r.matchTSConfigPath(spec); ok {
			path, err = r.resolveFileOrDir(mapped)
		} else {
			path, pkg, err = r.resolvePackageSpecifier(parentDir, spec)
		}
	default:
		path, pkg, err = r.resolvePackageSpecifier(parentDir, spec)
	}
	if err != nil {
		return modulegraph.ResolveResult{}, err
	}

	if pkg == nil {
		pkg = r.nearestPackageJSON(filepath.Dir(path))
	}

	return modulegraph.ResolveResult{
		Path:        path,
		Query:       query,
		Fragment:    fragment,
		PackageJSON: pkg,
	}, nil
}

func cutQueryFragment(specifier string) (spec, query, fragment string) {
	spec = specifier
	if idx := strings.IndexByte(spec, '#'); idx >= 0 {
		fragment = spec[idx+1:]
		spec = spec[:idx]
	}
	if idx := strings.IndexByte(spec, '?'); idx >= 0 {
		query = spec[idx+1:]
		spec = spec[:idx]
	}
	return spec, query, fragment
}

func joinSpecifier(parentDir, spec string) string {
	if filepath.IsAbs(spec) {
		return filepath.Clean(spec)
	}
	return filepath.Clean(filepath.Join(parentDir, spec))
}

func (r *Resolver) matchTSConfigPath(spec string) (string, bool) {
	base := "."
	if r.TSConfigBaseURL != "" {
		base = r.TSConfigBaseURL
	}
	var best string
	var bestPrefixLen = -1
	for pattern, fallbacks := range r.TSConfigPaths {
		prefix, suffix, hasStar := strings.Cut(pattern, "*")
		if !hasStar {
			if pattern != spec || len(fallbacks) == 0 {
				continue
			}
			if len(prefix) > bestPrefixLen {
				best, bestPrefixLen = filepath.Join(base, fallbacks[0]), len(prefix)
			}
			continue
		}
		if strings.HasPrefix(spec, prefix) && strings.HasSuffix(spec, suffix) && len(fallbacks) > 0 {
			star := spec[len(prefix) : len(spec)-len(suffix)]
			target := strings.Replace(fallbacks[0], "*", star, 1)
			if len(prefix) > bestPrefixLen {
				best, bestPrefixLen = filepath.Join(base, target), len(prefix)
			}
		}
	}
	return best, bestPrefixLen >= 0
}

// resolvePackageSpecifier resolves a bare specifier against the nearest
// node_modules package, applying package.json exports conditions when
// present and falling back to extension/mainField probing otherwise.
func (r *Resolver) resolvePackageSpecifier(parentDir, spec string) (string, *manifest.PackageJSON, error) {
	name, subpath := manifest.ParsePackageSpecifier(spec)

	dir := parentDir
	for {
		candidate := filepath.Join(dir, "node_modules", name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			pkg, _ := r.loadPackageJSON(filepath.Join(candidate, "package.json"))

			if pkg != nil {
				if strings.HasPrefix(subpath, "#") {
					rel, err := manifest.ResolveImportSubpath(pkg, subpath, r.Conditions)
					if err == nil {
						path, err := r.resolveFileOrDir(filepath.Join(candidate, rel))
						return path, pkg, err
					}
				} else if pkg.Exports != nil {
					rel, err := manifest.ResolveExportSubpath(pkg, subpath, r.Conditions)
					if err == nil {
						path, err := r.resolveFileOrDir(filepath.Join(candidate, rel))
						return path, pkg, err
					}
				}
			}

			// No exports map, or subpath not covered by it: fall back to
			// main/module field for the root, or a literal join otherwise.
			if subpath == "." {
				for _, field := range r.MainFields {
					var rel string
					if pkg != nil {
						if field == "module" {
							rel = pkg.Module
						} else if field == "main" {
							rel = pkg.Main
						}
					}
					if rel != "" {
						path, err := r.resolveFileOrDir(filepath.Join(candidate, rel))
						if err == nil {
							return path, pkg, nil
						}
					}
				}
				path, err := r.resolveFileOrDir(filepath.Join(candidate, "index"))
				return path, pkg, err
			}

			path, err := r.resolveFileOrDir(filepath.Join(candidate, strings.TrimPrefix(subpath, "./")))
			return path, pkg, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil, fmt.Errorf("package %q not found in any node_modules ascended from %s", name, parentDir)
}

// resolveFileOrDir probes path as a literal file, then with each
// configured extension appended, then as a directory (index.* or
// package.json main field).
func (r *Resolver) resolveFileOrDir(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, nil
	}
	for _, ext := range r.Extensions {
		if info, err := os.Stat(path + ext); err == nil && !info.IsDir() {
			return path + ext, nil
		}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if pkg, err := r.loadPackageJSON(filepath.Join(path, "package.json")); err == nil {
			for _, field := range r.MainFields {
				var rel string
				if field == "module" {
					rel = pkg.Module
				} else if field == "main" {
					rel = pkg.Main
				}
				if rel != "" {
					if resolved, err := r.resolveFileOrDir(filepath.Join(path, rel)); err == nil {
						return resolved, nil
					}
				}
			}
		}
		for _, ext := range r.Extensions {
			candidate := filepath.Join(path, "index"+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("no such file or extension match: %s", path)
}

func (r *Resolver) loadPackageJSON(path string) (*manifest.PackageJSON, error) {
	if pkg, ok := r.pkgCache[path]; ok {
		return pkg, nil
	}
	pkg, err := manifest.LoadPackageJSON(path)
	if err != nil {
		return nil, err
	}
	r.pkgCache[path] = pkg
	return pkg, nil
}

func (r *Resolver) nearestPackageJSON(dir string) *manifest.PackageJSON {
	for {
		candidate := filepath.Join(dir, "package.json")
		if pkg, err := r.loadPackageJSON(candidate); err == nil {
			return pkg
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
