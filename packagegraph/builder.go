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
	"path/filepath"

	"go.bennypowers.dev/jsgraph/manifest"
	"go.bennypowers.dev/jsgraph/protocol"
)

// Generate runs discovery, workspace-glob expansion, package loading, and
// edge construction, returning the assembled graph for workingDir.
func Generate(workingDir string) (*PackageGraph, error) {
	rootDir, manager := findRoot(workingDir)

	rootManifest, err := manifest.LoadPackageJSON(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return nil, &FsError{Path: rootDir, Err: err}
	}

	var ws *pnpmWorkspace
	if manager == Pnpm {
		ws, err = readPnpmWorkspace(rootDir)
		if err != nil {
			return nil, err
		}
	}

	globs := workspaceGlobs(manager, rootManifest, ws)

	packages, err := loadPackages(rootDir, globs)
	if err != nil {
		return nil, err
	}

	nameIndex := make(map[string]int, len(packages))
	for _, p := range packages {
		if p.Name != "" {
			nameIndex[p.Name] = p.Index
		}
	}

	graph := &PackageGraph{
		Manager:   manager,
		RootDir:   rootDir,
		packages:  packages,
		nameIndex: nameIndex,
	}
	graph.edges = buildEdges(packages, nameIndex, pnpmCatalogs(ws))

	return graph, nil
}

// buildEdges walks every package (root first, then workspace packages in
// loading order) and every dependency field, adding an edge for each
// VersionProtocol value that resolves to a local package. No
// de-duplication: the same local package referenced from two different
// fields yields two edges.
func buildEdges(packages []*Package, nameIndex map[string]int, catalogs protocol.Catalogs) []Edge {
	var edges []Edge
	for _, pkg := range packages {
		for _, dtype := range dependencyFields {
			deps := dependencyMap(pkg.Manifest, dtype)
			for depName, vp := range deps {
				target, ok := resolveLocalDependency(pkg, depName, vp, packages, nameIndex, catalogs)
				if !ok {
					continue
				}
				edges = append(edges, Edge{From: pkg.Index, To: target.Index, Type: dtype})
			}
		}
	}
	return edges
}

// resolveLocalDependency implements the VersionProtocol-variant-to-edge
// table: which declared dependency values point at an in-graph package.
func resolveLocalDependency(pkg *Package, depName string, vp protocol.VersionProtocol, packages []*Package, nameIndex map[string]int, catalogs protocol.Catalogs) (*Package, bool) {
	switch vp.Kind {
	case protocol.KindRequirement:
		local, ok := byName(packages, nameIndex, depName)
		if !ok {
			return nil, false
		}
		if len(vp.Requirement.Comparators) == 0 || vp.Requirement.Matches(local.Manifest.Version) {
			return local, true
		}
		return nil, false

	case protocol.KindVersion:
		local, ok := byName(packages, nameIndex, depName)
		if !ok || local.Manifest.Version != vp.Version {
			return nil, false
		}
		return local, true

	case protocol.KindFile, protocol.KindLink, protocol.KindPortal:
		return resolveLocalByPath(pkg, vp.Path, packages)

	case protocol.KindWorkspace:
		return resolveWorkspaceDependency(pkg, depName, vp.Workspace, packages, nameIndex)

	case protocol.KindCatalog:
		resolved, err := catalogs.Resolve(vp.CatalogName, depName)
		if err != nil {
			return nil, false
		}
		catalogVp, err := protocol.ParseVersionProtocol(resolved)
		if err != nil {
			return nil, false
		}
		return resolveLocalDependency(pkg, depName, catalogVp, packages, nameIndex, catalogs)

	default:
		// Git, GitHub, Url, Range: never local.
		return nil, false
	}
}

func resolveWorkspaceDependency(pkg *Package, depName string, wp protocol.WorkspaceProtocol, packages []*Package, nameIndex map[string]int) (*Package, bool) {
	localName := wp.Alias
	if localName == "" {
		localName = depName
	}

	switch wp.Kind {
	case protocol.WorkspaceAny:
		return byName(packages, nameIndex, localName)

	case protocol.WorkspaceCaret, protocol.WorkspaceTilde:
		local, ok := byName(packages, nameIndex, localName)
		if !ok {
			return nil, false
		}
		if wp.Version == "" {
			return local, true
		}
		op := "^"
		if wp.Kind == protocol.WorkspaceTilde {
			op = "~"
		}
		req := protocol.Requirement{Comparators: []protocol.Comparator{{Op: op, Version: wp.Version}}}
		if req.Matches(local.Manifest.Version) {
			return local, true
		}
		return nil, false

	case protocol.WorkspaceFile:
		return resolveLocalByPath(pkg, wp.Path, packages)

	case protocol.WorkspaceVersion:
		local, ok := byName(packages, nameIndex, localName)
		if !ok || local.Manifest.Version != wp.Version {
			return nil, false
		}
		return local, true

	default:
		return nil, false
	}
}

func byName(packages []*Package, nameIndex map[string]int, name string) (*Package, bool) {
	idx, ok := nameIndex[name]
	if !ok {
		return nil, false
	}
	return packages[idx], true
}

// resolveLocalByPath implements the File/Link/Portal edge rule: p
// (absolute, or joined relative to the dependent's root, then cleaned)
// must equal a local package's root directory.
func resolveLocalByPath(pkg *Package, p string, packages []*Package) (*Package, bool) {
	target := p
	if !filepath.IsAbs(target) {
		target = filepath.Join(pkg.Dir, target)
	}
	target = filepath.Clean(target)
	for _, cand := range packages {
		if cand.Dir == target {
			return cand, true
		}
	}
	return nil, false
}
