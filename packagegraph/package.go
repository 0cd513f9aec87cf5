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

// Package packagegraph discovers a JS/TS monorepo's package manager and
// workspace layout, loads every workspace package's manifest, and builds a
// directed graph of local dependency edges between them.
package packagegraph

import (
	"go.bennypowers.dev/jsgraph/manifest"
	"go.bennypowers.dev/jsgraph/protocol"
)

// PackageManager tags the inferred package manager, per the discovery
// probe order in the root-discovery table.
type PackageManager int

const (
	Npm PackageManager = iota
	Bun
	Pnpm
	Yarn
	YarnLegacy
)

func (m PackageManager) String() string {
	switch m {
	case Bun:
		return "bun"
	case Pnpm:
		return "pnpm"
	case Yarn:
		return "yarn"
	case YarnLegacy:
		return "yarn-legacy"
	default:
		return "npm"
	}
}

// Package is one loaded package.json, tagged with its dense graph index.
// Index 0 is always the monorepo root; other packages increment in the
// deterministic directory-sort traversal order established during
// loading.
type Package struct {
	Index    int
	Dir      string
	Name     string
	Manifest *manifest.PackageJSON
}

// DependencyType labels which manifest field produced a dependency edge.
type DependencyType int

const (
	DependencyProd DependencyType = iota
	DependencyDev
	DependencyPeer
	DependencyOptional
)

func (t DependencyType) String() string {
	switch t {
	case DependencyDev:
		return "devDependencies"
	case DependencyPeer:
		return "peerDependencies"
	case DependencyOptional:
		return "optionalDependencies"
	default:
		return "dependencies"
	}
}

// dependencyFields lists the manifest fields walked during edge
// construction, root package first in the caller's iteration but the
// fields themselves always probed in this fixed order.
var dependencyFields = []DependencyType{
	DependencyProd, DependencyDev, DependencyPeer, DependencyOptional,
}

func dependencyMap(pkg *manifest.PackageJSON, t DependencyType) map[string]protocol.VersionProtocol {
	switch t {
	case DependencyDev:
		return pkg.DevDependencies
	case DependencyPeer:
		return pkg.PeerDependencies
	case DependencyOptional:
		return pkg.OptionalDependencies
	default:
		return pkg.Dependencies
	}
}
