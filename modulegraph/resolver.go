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

package modulegraph

import "go.bennypowers.dev/jsgraph/manifest"

// ResolveResult is what a Resolver produces for a (parentDir, specifier)
// pair: the absolute, cleaned path the specifier resolved to, any trailing
// query/fragment carried by a URL-like specifier, and the package.json
// that owns the resolved path (if any), so ModuleGraphBuilder can populate
// Module.PackageName without re-walking the tree.
type ResolveResult struct {
	Path        string
	Query       string
	Fragment    string
	PackageJSON *manifest.PackageJSON
}

// Resolver maps a specifier written in a given directory to a resolved
// file on disk. The builder never embeds file-existence checks or
// "exports" condition logic itself — that policy lives entirely behind
// this interface, configured with the condition/extension/main-field table
// the resolver package implements by default.
type Resolver interface {
	Resolve(parentDir, specifier string) (ResolveResult, error)
}

// ResolveError wraps a Resolver failure with the dependent context, per
// the ResolveFailed{dir, specifier, error} error kind.
type ResolveError struct {
	Dir       string
	Specifier string
	Err       error
}

func (e *ResolveError) Error() string {
	return "resolve " + e.Specifier + " from " + e.Dir + ": " + e.Err.Error()
}

func (e *ResolveError) Unwrap() error { return e.Err }
