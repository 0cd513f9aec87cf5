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

package packagegraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/packagegraph"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestGenerate_WorkspaceCaretLocalMatch covers scenario D: a caret
// workspace dependency resolving to a local package by name and version.
func TestGenerate_WorkspaceCaretLocalMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"name": "monorepo",
		"workspaces": ["packages/*"]
	}`)
	writeFile(t, filepath.Join(root, "package-lock.json"), `{}`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{
		"name": "a",
		"version": "1.2.3"
	}`)
	writeFile(t, filepath.Join(root, "packages", "b", "package.json"), `{
		"name": "b",
		"version": "1.0.0",
		"dependencies": { "a": "workspace:^1.2.0" }
	}`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)
	require.Equal(t, packagegraph.Npm, graph.Manager)
	require.Len(t, graph.Packages(), 3)

	deps, err := graph.DependenciesOf("b")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.Equal(t, "a", deps[0].Name)
	require.Equal(t, packagegraph.DependencyProd, deps[0].Type)

	dependents, err := graph.DependentsOf("a")
	require.NoError(t, err)
	require.Len(t, dependents, 1)
	require.Equal(t, "b", dependents[0].Name)
}

func TestGenerate_CaretNextMajorDoesNotMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"name": "monorepo",
		"workspaces": ["packages/*"]
	}`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{
		"name": "a",
		"version": "2.0.0"
	}`)
	writeFile(t, filepath.Join(root, "packages", "b", "package.json"), `{
		"name": "b",
		"version": "1.0.0",
		"dependencies": { "a": "workspace:^1.2.0" }
	}`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)

	deps, err := graph.DependenciesOf("b")
	require.NoError(t, err)
	require.Empty(t, deps)
}

func TestGenerate_PnpmWorkspaceGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages:\n  - apps/*\n")
	writeFile(t, filepath.Join(root, "package.json"), `{ "name": "monorepo" }`)
	writeFile(t, filepath.Join(root, "apps", "web", "package.json"), `{ "name": "web", "version": "1.0.0" }`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)
	require.Equal(t, packagegraph.Pnpm, graph.Manager)
	require.Len(t, graph.Packages(), 2)
	pkg, ok := graph.PackageByName("web")
	require.True(t, ok)
	require.Equal(t, 1, pkg.Index)
}

func TestGenerate_MissingWorkspacePackageName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"name": "monorepo",
		"workspaces": ["packages/*"]
	}`)
	writeFile(t, filepath.Join(root, "packages", "nameless", "package.json"), `{ "version": "1.0.0" }`)

	_, err := packagegraph.Generate(root)
	require.Error(t, err)
	var missingErr *packagegraph.MissingPackageNameError
	require.ErrorAs(t, err, &missingErr)
}

func TestGenerate_UnknownPackageQuery(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{ "name": "solo" }`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)

	_, err = graph.DependenciesOf("nope")
	require.Error(t, err)
	var unknownErr *packagegraph.UnknownPackageError
	require.ErrorAs(t, err, &unknownErr)
}

// TestGenerate_PnpmCatalogLocalMatch covers a pnpm-workspace.yaml default
// "catalog:" table resolving a "catalog:" dependency value to the local
// workspace package whose version satisfies the catalog's recorded range.
func TestGenerate_PnpmCatalogLocalMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), `packages:
  - packages/*
catalog:
  a: ^1.0.0
`)
	writeFile(t, filepath.Join(root, "package.json"), `{ "name": "monorepo" }`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{
		"name": "a",
		"version": "1.2.3"
	}`)
	writeFile(t, filepath.Join(root, "packages", "b", "package.json"), `{
		"name": "b",
		"version": "1.0.0",
		"dependencies": { "a": "catalog:" }
	}`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)
	require.Equal(t, packagegraph.Pnpm, graph.Manager)

	deps, err := graph.DependenciesOf("b")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.Equal(t, "a", deps[0].Name)
}

// TestGenerate_PnpmNamedCatalogLocalMatch covers a named "catalog:<name>"
// reference resolved from pnpm-workspace.yaml's "catalogs" table.
func TestGenerate_PnpmNamedCatalogLocalMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), `packages:
  - packages/*
catalogs:
  react17:
    a: 1.2.3
`)
	writeFile(t, filepath.Join(root, "package.json"), `{ "name": "monorepo" }`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{
		"name": "a",
		"version": "1.2.3"
	}`)
	writeFile(t, filepath.Join(root, "packages", "b", "package.json"), `{
		"name": "b",
		"version": "1.0.0",
		"dependencies": { "a": "catalog:react17" }
	}`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)

	deps, err := graph.DependenciesOf("b")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.Equal(t, "a", deps[0].Name)
}

func TestGenerate_FileProtocolLocalMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"name": "monorepo",
		"workspaces": ["packages/*"]
	}`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{ "name": "a", "version": "1.0.0" }`)
	writeFile(t, filepath.Join(root, "packages", "b", "package.json"), `{
		"name": "b",
		"version": "1.0.0",
		"devDependencies": { "a": "file:../a" }
	}`)

	graph, err := packagegraph.Generate(root)
	require.NoError(t, err)

	deps, err := graph.DependenciesOf("b")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.Equal(t, "a", deps[0].Name)
	require.Equal(t, packagegraph.DependencyDev, deps[0].Type)
}
