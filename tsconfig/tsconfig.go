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

// Package tsconfig resolves a tsconfig.json "extends" chain, including
// node_modules package references, and merges the resulting compiler
// options the way the TypeScript compiler does.
package tsconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// CompilerOptions is the subset of "compilerOptions" this resolver cares
// about. Unrecognized keys are preserved in Extra for pass-through.
type CompilerOptions struct {
	BaseURL string              `json:"baseUrl,omitempty"`
	Paths   map[string][]string `json:"paths,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

type rawTSConfig struct {
	Extends         json.RawMessage `json:"extends,omitempty"`
	CompilerOptions json.RawMessage `json:"compilerOptions,omitempty"`
}

// Config is one file in an extends chain.
type Config struct {
	Path            string
	CompilerOptions CompilerOptions
}

// ErrExtendsNotFound is returned when an "extends" target cannot be
// resolved, either as a relative path or via node_modules ascent.
type ErrExtendsNotFound struct {
	From   string
	Target string
}

func (e *ErrExtendsNotFound) Error() string {
	return fmt.Sprintf("tsconfig: cannot resolve %q extended from %s", e.Target, e.From)
}

// ResolveChain loads startPath and every file it (transitively) extends,
// returning the ordered chain with the base-most config at index 0 and
// startPath last. A tsconfig.json with no "extends" returns a singleton
// chain.
func ResolveChain(startPath string) ([]Config, error) {
	absStart, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf("tsconfig: %w", err)
	}
	visiting := make(map[string]bool)
	return resolveChain(absStart, visiting)
}

func resolveChain(path string, visiting map[string]bool) ([]Config, error) {
	if visiting[path] {
		return nil, fmt.Errorf("tsconfig: circular extends at %s", path)
	}
	visiting[path] = true
	defer delete(visiting, path)

	raw, opts, err := loadRaw(path)
	if err != nil {
		return nil, err
	}

	entries, err := extendsEntries(raw.Extends)
	if err != nil {
		return nil, fmt.Errorf("tsconfig: %s: %w", path, err)
	}

	var chain []Config
	for _, entry := range entries {
		target, err := resolveExtendsTarget(filepath.Dir(path), entry)
		if err != nil {
			return nil, err
		}
		childChain, err := resolveChain(target, visiting)
		if err != nil {
			return nil, err
		}
		chain = append(chain, childChain...)
	}

	chain = append(chain, Config{Path: path, CompilerOptions: opts})
	return chain, nil
}

func loadRaw(path string) (rawTSConfig, CompilerOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawTSConfig{}, CompilerOptions{}, fmt.Errorf("tsconfig: reading %s: %w", path, err)
	}
	clean := jsonc.ToJSON(data)

	var raw rawTSConfig
	if err := json.Unmarshal(clean, &raw); err != nil {
		return rawTSConfig{}, CompilerOptions{}, fmt.Errorf("tsconfig: parsing %s: %w", path, err)
	}

	var opts CompilerOptions
	if len(raw.CompilerOptions) > 0 {
		if err := json.Unmarshal(raw.CompilerOptions, &opts); err != nil {
			return rawTSConfig{}, CompilerOptions{}, fmt.Errorf("tsconfig: parsing compilerOptions in %s: %w", path, err)
		}
		var rawOpts map[string]json.RawMessage
		if err := json.Unmarshal(raw.CompilerOptions, &rawOpts); err == nil {
			opts.Extra = make(map[string]json.RawMessage)
			for k, v := range rawOpts {
				if k != "baseUrl" && k != "paths" {
					opts.Extra[k] = v
				}
			}
		}
	}
	return raw, opts, nil
}

// extendsEntries normalizes "extends" (a single string or an array of
// strings) into a declaration-ordered slice.
func extendsEntries(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	return nil, fmt.Errorf(`"extends" must be a string or array of strings`)
}

// resolveExtendsTarget resolves one "extends" entry relative to the
// directory of the file that declared it, per §4.8: a leading "." is a
// relative path; otherwise it is a node_modules package reference resolved
// by ascending from parentDir.
func resolveExtendsTarget(parentDir, entry string) (string, error) {
	if strings.HasPrefix(entry, ".") {
		p := filepath.Join(parentDir, entry)
		if strings.HasSuffix(strings.ToLower(p), ".json") {
			return filepath.Clean(p), nil
		}
		if withExt := p + ".json"; fileExists(withExt) {
			return filepath.Clean(withExt), nil
		}
		return filepath.Clean(filepath.Join(p, "tsconfig.json")), nil
	}
	return resolveNodeModulesTarget(parentDir, entry)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func resolveNodeModulesTarget(parentDir, spec string) (string, error) {
	target := spec
	if !strings.HasSuffix(strings.ToLower(target), ".json") {
		target = filepath.Join(target, "tsconfig.json")
	}
	dir := parentDir
	for {
		candidate := filepath.Join(dir, "node_modules", target)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", &ErrExtendsNotFound{From: parentDir, Target: spec}
}

// Merge flattens a resolved chain into a single effective CompilerOptions,
// starting from the base (index 0) and overlaying each subsequent entry:
// scalars replace, collections replace wholesale. Any "${configDir}" token
// in BaseURL is substituted with projectDir, the directory of the
// *starting* tsconfig.json (not the file that declared the option), so
// shared configs can be reused across projects.
func Merge(chain []Config, projectDir string) CompilerOptions {
	var merged CompilerOptions
	for _, c := range chain {
		if c.CompilerOptions.BaseURL != "" {
			merged.BaseURL = substituteConfigDir(c.CompilerOptions.BaseURL, projectDir)
		}
		if c.CompilerOptions.Paths != nil {
			merged.Paths = c.CompilerOptions.Paths
		}
		if c.CompilerOptions.Extra != nil {
			if merged.Extra == nil {
				merged.Extra = make(map[string]json.RawMessage)
			}
			for k, v := range c.CompilerOptions.Extra {
				merged.Extra[k] = v
			}
		}
	}
	return merged
}

func substituteConfigDir(value, projectDir string) string {
	return strings.ReplaceAll(value, "${configDir}", projectDir)
}
