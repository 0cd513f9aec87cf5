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

// Package manifest decodes package.json and resolves its exports/imports
// conditional maps.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"go.bennypowers.dev/jsgraph/protocol"
)

// ErrNotExported is returned when a subpath has no matching exports entry.
var ErrNotExported = errors.New("not exported by package.json")

// DefaultConditions is the condition set the resolver applies when a
// package.json exports/imports map is conditional, per spec §6.
var DefaultConditions = []string{"import", "module", "require", "node", "default"}

// PackageJSON is the subset of package.json fields this module cares about,
// kept deliberately narrow so deserialization stays tolerant of unknown
// fields. Unrecognized top-level keys are preserved in Extra.
type PackageJSON struct {
	Name                 string                         `json:"name,omitempty"`
	Version              string                         `json:"version,omitempty"`
	Type                 string                          `json:"type,omitempty"`
	Scripts              map[string]string              `json:"scripts,omitempty"`
	Main                 string                          `json:"main,omitempty"`
	Module               string                          `json:"module,omitempty"`
	Browser              json.RawMessage                `json:"browser,omitempty"`
	Exports              any                             `json:"exports,omitempty"`
	Imports              any                             `json:"imports,omitempty"`
	Dependencies         map[string]protocol.VersionProtocol `json:"dependencies,omitempty"`
	DevDependencies      map[string]protocol.VersionProtocol `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]protocol.VersionProtocol `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]protocol.VersionProtocol `json:"optionalDependencies,omitempty"`
	BundleDependencies   []string                        `json:"bundleDependencies,omitempty"`
	DependenciesMeta     map[string]any                 `json:"dependenciesMeta,omitempty"`
	PeerDependenciesMeta map[string]any                 `json:"peerDependenciesMeta,omitempty"`
	Engines              map[string]string               `json:"engines,omitempty"`
	PackageManager       string                          `json:"packageManager,omitempty"`
	Workspaces           any                             `json:"workspaces,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields, then re-decodes into a generic map
// to capture everything else under Extra — mirroring the teacher's tolerant
// package.json handling, which never fails on an unrecognized field.
func (p *PackageJSON) UnmarshalJSON(data []byte) error {
	type alias PackageJSON
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("decoding package.json: %w", err)
	}
	*p = PackageJSON(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding package.json fields: %w", err)
	}
	known := map[string]bool{
		"name": true, "version": true, "type": true, "scripts": true,
		"main": true, "module": true, "browser": true, "exports": true,
		"imports": true, "dependencies": true, "devDependencies": true,
		"peerDependencies": true, "optionalDependencies": true,
		"bundleDependencies": true, "dependenciesMeta": true,
		"peerDependenciesMeta": true, "engines": true,
		"packageManager": true, "workspaces": true,
	}
	p.Extra = make(map[string]json.RawMessage)
	for k, v := range raw {
		if !known[k] {
			p.Extra[k] = v
		}
	}
	return nil
}

// LoadPackageJSON reads and decodes the package.json file at path, tolerating
// comments and trailing commas the way tsconfig.json is tolerated (real-world
// package.json files are occasionally hand-edited with stray commas).
func LoadPackageJSON(path string) (*PackageJSON, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var pkg PackageJSON
	if err := json.Unmarshal(jsonc.ToJSON(raw), &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pkg, nil
}

// ResolveExportSubpath resolves a consumer-facing subpath (e.g. "." or
// "./feature") against the package's exports map under the given
// conditions, returning the file path relative to the package root, without
// a leading "./". Falls back to main/module for the root subpath when there
// is no exports map at all.
func ResolveExportSubpath(pkg *PackageJSON, subpath string, conditions []string) (string, error) {
	if pkg == nil {
		return "", fmt.Errorf("package.json is nil")
	}
	if subpath == "" {
		subpath = "."
	}
	if len(conditions) == 0 {
		conditions = DefaultConditions
	}

	if pkg.Exports != nil {
		if resolved, err := resolveSubpathFromMap(pkg.Exports, subpath, conditions); err == nil {
			return resolved, nil
		}
	}

	if subpath == "." {
		if pkg.Module != "" {
			return strings.TrimPrefix(pkg.Module, "./"), nil
		}
		if pkg.Main != "" {
			return strings.TrimPrefix(pkg.Main, "./"), nil
		}
	}

	return "", fmt.Errorf("cannot resolve subpath %q: %w", subpath, ErrNotExported)
}

// ResolveImportSubpath resolves a "#"-prefixed internal import specifier
// against the package's imports map. See ResolveExportSubpath for the
// matching algorithm; this differs only in which field is consulted.
func ResolveImportSubpath(pkg *PackageJSON, subpath string, conditions []string) (string, error) {
	if pkg == nil || pkg.Imports == nil {
		return "", fmt.Errorf("cannot resolve import %q: %w", subpath, ErrNotExported)
	}
	if len(conditions) == 0 {
		conditions = DefaultConditions
	}
	return resolveSubpathFromMap(pkg.Imports, subpath, conditions)
}

func resolveSubpathFromMap(field any, subpath string, conditions []string) (string, error) {
	if expStr, ok := field.(string); ok {
		if subpath == "." {
			return strings.TrimPrefix(expStr, "./"), nil
		}
		return "", fmt.Errorf("subpath %q not found in string export", subpath)
	}

	exportsMap, ok := field.(map[string]any)
	if !ok {
		return "", fmt.Errorf("exports/imports field is not a map")
	}

	// A map keyed entirely by condition names (no "."/"./"/"#" keys) is
	// itself the value for the "." subpath.
	if subpath == "." && isConditionsOnlyMap(exportsMap) {
		return resolveConditionValue(exportsMap, conditions)
	}

	if expVal, found := exportsMap[subpath]; found {
		return resolveConditionValue(expVal, conditions)
	}

	// Wildcard pattern matching: longest matching key wins, per Node's
	// "most specific pattern" rule.
	type candidate struct {
		prefix, suffix string
		val            any
	}
	var best *candidate
	for key := range exportsMap {
		if !strings.Contains(key, "*") {
			continue
		}
		parts := strings.SplitN(key, "*", 2)
		prefix, suffix := parts[0], parts[1]
		if strings.HasPrefix(subpath, prefix) && strings.HasSuffix(subpath, suffix) {
			if best == nil || len(prefix) > len(best.prefix) {
				best = &candidate{prefix: prefix, suffix: suffix, val: exportsMap[key]}
			}
		}
	}
	if best != nil {
		starValue := subpath[len(best.prefix):]
		if best.suffix != "" {
			starValue = starValue[:len(starValue)-len(best.suffix)]
		}
		resolved, err := resolveConditionValue(best.val, conditions)
		if err != nil {
			return "", err
		}
		return strings.Replace(resolved, "*", starValue, 1), nil
	}

	return "", fmt.Errorf("subpath %q not found in exports: %w", subpath, ErrNotExported)
}

func isConditionsOnlyMap(m map[string]any) bool {
	for k := range m {
		if strings.HasPrefix(k, ".") || strings.HasPrefix(k, "#") {
			return false
		}
	}
	return len(m) > 0
}

// resolveConditionValue walks a conditions object in the caller-supplied
// condition priority order, falling back to "default", recursing into
// nested condition objects and arrays of candidates.
func resolveConditionValue(val any, conditions []string) (string, error) {
	switch v := val.(type) {
	case string:
		return strings.TrimPrefix(v, "./"), nil
	case []any:
		for _, item := range v {
			if resolved, err := resolveConditionValue(item, conditions); err == nil {
				return resolved, nil
			}
		}
		return "", fmt.Errorf("no candidate in array matched")
	case map[string]any:
		order := append(append([]string{}, conditions...), "default")
		for _, cond := range order {
			if next, ok := v[cond]; ok {
				if resolved, err := resolveConditionValue(next, conditions); err == nil {
					return resolved, nil
				}
			}
		}
		return "", fmt.Errorf("no condition in %v matched", order)
	case nil:
		return "", fmt.Errorf("export value is null")
	default:
		return "", fmt.Errorf("unrecognized export value shape %T", v)
	}
}

// WorkspaceGlobs returns the package's workspaces field normalized to a
// sorted, de-duplicated list of glob patterns, supporting both the plain
// array form and the {packages, nohoist} object form.
func WorkspaceGlobs(pkg *PackageJSON) []string {
	if pkg == nil || pkg.Workspaces == nil {
		return nil
	}
	var globs []string
	switch v := pkg.Workspaces.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				globs = append(globs, s)
			}
		}
	case map[string]any:
		if packages, ok := v["packages"].([]any); ok {
			for _, item := range packages {
				if s, ok := item.(string); ok {
					globs = append(globs, s)
				}
			}
		}
	}
	sort.Strings(globs)
	var deduped []string
	for _, g := range globs {
		if len(deduped) == 0 || deduped[len(deduped)-1] != g {
			deduped = append(deduped, g)
		}
	}
	return deduped
}

// ParsePackageSpecifier splits a bare specifier into its package name and
// subpath, handling the `@scope/name` and `@scope/name/subpath` shapes.
func ParsePackageSpecifier(specifier string) (name, subpath string) {
	parts := strings.SplitN(specifier, "/", 3)
	if strings.HasPrefix(specifier, "@") {
		if len(parts) < 2 {
			return specifier, "."
		}
		name = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			subpath = "./" + parts[2]
		} else {
			subpath = "."
		}
		return name, subpath
	}
	name = parts[0]
	if len(parts) > 1 {
		subpath = "./" + strings.Join(parts[1:], "/")
	} else {
		subpath = "."
	}
	return name, subpath
}
