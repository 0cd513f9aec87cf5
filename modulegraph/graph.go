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

import (
	"fmt"
	"strings"
)

// EdgeKind labels a ModuleGraph edge.
type EdgeKind int

const (
	EdgeImport EdgeKind = iota
	EdgeExport
)

// Edge is one directed connection between two modules.
type Edge struct {
	From ModuleID
	To   ModuleID
	Kind EdgeKind
}

// ModuleGraph is a directed graph over module ids. modules preserves
// insertion order (which is also load order); pathIndex is the 1:1
// path→id map that makes LoadModuleAtPath idempotent. Both are owned
// exclusively by the builder that constructs the graph — see §5.
type ModuleGraph struct {
	order     []ModuleID
	modules   map[ModuleID]*Module
	pathIndex map[string]ModuleID
	edges     []Edge
	nextID    ModuleID
}

// NewModuleGraph returns an empty graph ready for construction.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		modules:   make(map[ModuleID]*Module),
		pathIndex: make(map[string]ModuleID),
	}
}

// IDForPath returns the id already assigned to path, if any.
func (g *ModuleGraph) IDForPath(path string) (ModuleID, bool) {
	id, ok := g.pathIndex[path]
	return id, ok
}

// allocateID reserves the next monotonic id and publishes the path→id
// mapping immediately — before any recursive extraction — so that a
// cyclic import finds its own id and terminates instead of recursing
// forever.
func (g *ModuleGraph) allocateID(path string) ModuleID {
	g.nextID++
	id := g.nextID
	g.pathIndex[path] = id
	return id
}

// commit inserts the finalized module, preserving insertion order.
func (g *ModuleGraph) commit(m *Module) {
	g.modules[m.ID] = m
	g.order = append(g.order, m.ID)
}

// AddEdge appends a directed edge. Edges are always added, even for
// cycles; no de-duplication is performed.
func (g *ModuleGraph) AddEdge(from, to ModuleID, kind EdgeKind) {
	g.edges = append(g.edges, Edge{From: from, To: to, Kind: kind})
}

// Module returns the module for id, or nil if unknown.
func (g *ModuleGraph) Module(id ModuleID) *Module {
	return g.modules[id]
}

// Modules returns modules in load order.
func (g *ModuleGraph) Modules() []*Module {
	out := make([]*Module, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.modules[id])
	}
	return out
}

// Edges returns every edge added to the graph, in insertion order.
func (g *ModuleGraph) Edges() []Edge {
	return g.edges
}

// Len reports how many modules have been committed.
func (g *ModuleGraph) Len() int {
	return len(g.order)
}

// ToDot renders the graph as Graphviz DOT, nodes labeled by path and edges
// colored by kind, for the `jsgraph graph --output dot` CLI output and for
// snapshot tests (spec §6, §4.10).
func (g *ModuleGraph) ToDot() string {
	var b strings.Builder
	b.WriteString("digraph modules {\n")
	for _, id := range g.order {
		m := g.modules[id]
		fmt.Fprintf(&b, "  %d [label=%q];\n", id, m.Path)
	}
	for _, e := range g.edges {
		color := "black"
		if e.Kind == EdgeExport {
			color = "blue"
		}
		fmt.Fprintf(&b, "  %d -> %d [color=%s];\n", e.From, e.To, color)
	}
	b.WriteString("}\n")
	return b.String()
}
