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

package packagegraph

import (
	"fmt"
	"strings"
)

// Edge is one directed local-dependency connection between two packages,
// labeled by the manifest field that produced it. No de-duplication is
// performed: a package referenced by both dependencies and
// devDependencies yields two edges.
type Edge struct {
	From int
	To   int
	Type DependencyType
}

// PackageGraph is the result of discovery + workspace load + edge
// construction for one monorepo (or single-package project, which is the
// degenerate one-node case).
type PackageGraph struct {
	Manager PackageManager
	RootDir string

	packages  []*Package
	nameIndex map[string]int
	edges     []Edge
}

// Packages returns every loaded package, root first, in index order.
func (g *PackageGraph) Packages() []*Package {
	out := make([]*Package, len(g.packages))
	copy(out, g.packages)
	return out
}

// Edges returns every edge added during construction, in insertion order.
func (g *PackageGraph) Edges() []Edge {
	return g.edges
}

// PackageByName returns the package with the given manifest name, if any.
func (g *PackageGraph) PackageByName(name string) (*Package, bool) {
	idx, ok := g.nameIndex[name]
	if !ok {
		return nil, false
	}
	return g.packages[idx], true
}

// DependenciesOf returns the (name, DependencyType) pairs for every local
// package that name directly depends on.
func (g *PackageGraph) DependenciesOf(name string) ([]NamedDependency, error) {
	idx, ok := g.nameIndex[name]
	if !ok {
		return nil, &UnknownPackageError{Name: name}
	}
	var out []NamedDependency
	for _, e := range g.edges {
		if e.From == idx {
			out = append(out, NamedDependency{Name: g.packages[e.To].Name, Type: e.Type})
		}
	}
	return out, nil
}

// DependentsOf returns the (name, DependencyType) pairs for every local
// package that directly depends on name.
func (g *PackageGraph) DependentsOf(name string) ([]NamedDependency, error) {
	idx, ok := g.nameIndex[name]
	if !ok {
		return nil, &UnknownPackageError{Name: name}
	}
	var out []NamedDependency
	for _, e := range g.edges {
		if e.To == idx {
			out = append(out, NamedDependency{Name: g.packages[e.From].Name, Type: e.Type})
		}
	}
	return out, nil
}

// NamedDependency is one entry of a DependenciesOf/DependentsOf result.
type NamedDependency struct {
	Name string
	Type DependencyType
}

// ToDot renders the graph as Graphviz DOT for `jsgraph packages --output
// dot` and snapshot tests, matching modulegraph.ModuleGraph.ToDot's style.
func (g *PackageGraph) ToDot() string {
	var b strings.Builder
	b.WriteString("digraph packages {\n")
	for _, p := range g.packages {
		label := p.Name
		if label == "" {
			label = p.Dir
		}
		fmt.Fprintf(&b, "  %d [label=%q];\n", p.Index, label)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %d -> %d [label=%q];\n", e.From, e.To, e.Type.String())
	}
	b.WriteString("}\n")
	return b.String()
}
