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

package modulegraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/modulegraph"
	"go.bennypowers.dev/jsgraph/queries"
	"go.bennypowers.dev/jsgraph/resolve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newBuilder() *modulegraph.ModuleGraphBuilder {
	return modulegraph.New(modulegraph.Options{
		Resolver:  resolve.New(),
		JsParser:  queries.NewTreeSitterJsParser(),
		CssParser: queries.NewCssModulesParser(),
	})
}

// TestLoadModule_SimpleEsmChain covers a straight-line ESM import chain:
// an entry module with a named import of a single exporting module.
func TestLoadModule_SimpleEsmChain(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "entry.js"), `import { greet } from "./greet.js";
greet();
`)
	writeFile(t, filepath.Join(root, "greet.js"), `export function greet() { return "hi"; }
`)

	b := newBuilder()
	entryID, err := b.LoadModule(root, "./entry.js")
	require.NoError(t, err)
	require.Equal(t, 2, b.Graph.Len())

	entry := b.Graph.Module(entryID)
	require.NotNil(t, entry.Source.JavaScript)
	require.Equal(t, 1, entry.Source.JavaScript.ImportStatements)
	require.Len(t, entry.Imports, 1)

	imp := entry.Imports[0]
	require.Equal(t, modulegraph.AsyncStatic, imp.Kind)
	require.Equal(t, "./greet.js", imp.SourceRequest)
	require.Len(t, imp.Symbols, 1)
	require.Equal(t, modulegraph.Value, imp.Symbols[0].Kind)
	require.Equal(t, "greet", imp.Symbols[0].Name)

	greetID := imp.ModuleID
	require.NotEqual(t, modulegraph.UnsetModuleID, greetID)
	greet := b.Graph.Module(greetID)
	require.Len(t, greet.Exports, 1)
	require.Equal(t, "greet", greet.Exports[0].Symbols[0].Name)

	require.Len(t, b.Graph.Edges(), 1)
	edge := b.Graph.Edges()[0]
	require.Equal(t, entryID, edge.From)
	require.Equal(t, greetID, edge.To)
	require.Equal(t, modulegraph.EdgeImport, edge.Kind)
}

// TestLoadModule_DynamicDestructuredImport covers `const { a, b: c } =
// await import("./module.js")`, which binds individual named exports out
// of the namespace object returned by a dynamic import rather than
// importing the namespace itself.
func TestLoadModule_DynamicDestructuredImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "entry.js"), `async function load() {
  const { a, b: c } = await import("./lib.js");
  return a + c;
}
`)
	writeFile(t, filepath.Join(root, "lib.js"), `export const a = 1;
export const b = 2;
`)

	b := newBuilder()
	entryID, err := b.LoadModule(root, "./entry.js")
	require.NoError(t, err)

	entry := b.Graph.Module(entryID)
	require.Equal(t, 1, entry.Source.JavaScript.DynamicImportCount)
	require.Len(t, entry.Imports, 1)

	imp := entry.Imports[0]
	require.Equal(t, modulegraph.AsyncDynamic, imp.Kind)
	require.Equal(t, "./lib.js", imp.SourceRequest)
	require.Len(t, imp.Symbols, 2)

	byName := make(map[string]modulegraph.ImportedSymbol)
	for _, s := range imp.Symbols {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "a")
	require.Equal(t, modulegraph.Value, byName["a"].Kind)
	require.Equal(t, "", byName["a"].SourceName)

	require.Contains(t, byName, "c")
	require.Equal(t, modulegraph.Value, byName["c"].Kind)
	require.Equal(t, "b", byName["c"].SourceName)
}

// TestLoadModule_RequireAndLegacyExports covers a CommonJS entry that
// loads a module with `require()`, and that module's `module.exports = …`
// assignment, exercising extractJs's legacy-assignment branch.
func TestLoadModule_RequireAndLegacyExports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "entry.js"), `const lib = require("./lib.js");
lib.run();
`)
	writeFile(t, filepath.Join(root, "lib.js"), `module.exports = { run() {} };
`)

	b := newBuilder()
	entryID, err := b.LoadModule(root, "./entry.js")
	require.NoError(t, err)

	entry := b.Graph.Module(entryID)
	require.Equal(t, 1, entry.Source.JavaScript.RequireCount)
	require.Len(t, entry.Imports, 1)
	require.Equal(t, modulegraph.SyncStatic, entry.Imports[0].Kind)

	libID := entry.Imports[0].ModuleID
	lib := b.Graph.Module(libID)
	require.Len(t, lib.Exports, 1)
	require.Equal(t, modulegraph.Legacy, lib.Exports[0].Kind)
	require.Equal(t, modulegraph.Default, lib.Exports[0].Symbols[0].Kind)
}

// TestLoadModule_TypeOnlyImportExport covers TypeScript's `import type`
// and re-exported type aliases, which must be classified TypeOnly and
// carry the *Type symbol kinds rather than their value counterparts.
func TestLoadModule_TypeOnlyImportExport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "entry.ts"), `import type { Widget } from "./types.ts";
export type { Widget };
`)
	writeFile(t, filepath.Join(root, "types.ts"), `export type Widget = { id: string };
`)

	b := newBuilder()
	entryID, err := b.LoadModule(root, "./entry.ts")
	require.NoError(t, err)

	entry := b.Graph.Module(entryID)
	require.Len(t, entry.Imports, 1)
	require.True(t, entry.Imports[0].TypeOnly)
	require.Equal(t, modulegraph.ValueType, entry.Imports[0].Symbols[0].Kind)

	require.Len(t, entry.Exports, 1)
	require.True(t, entry.Exports[0].TypeOnly)
}

// TestLoadModule_ImportEqualsRequire covers TypeScript's bare (non-exported)
// `import m = require("m")` form, which must resolve and load "./lib.ts"
// the same as a static import even though it uses the import-equals
// syntax rather than `import … from`.
func TestLoadModule_ImportEqualsRequire(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "entry.ts"), `import lib = require("./lib.ts");
lib.run();
`)
	writeFile(t, filepath.Join(root, "lib.ts"), `export function run() {}
`)

	b := newBuilder()
	entryID, err := b.LoadModule(root, "./entry.ts")
	require.NoError(t, err)

	entry := b.Graph.Module(entryID)
	require.Equal(t, 1, entry.Source.JavaScript.ImportStatements)
	require.Len(t, entry.Imports, 1)

	imp := entry.Imports[0]
	require.Equal(t, modulegraph.SyncStatic, imp.Kind)
	require.Equal(t, "./lib.ts", imp.SourceRequest)
	require.False(t, imp.TypeOnly)
	require.Len(t, imp.Symbols, 1)
	require.Equal(t, modulegraph.Default, imp.Symbols[0].Kind)
	require.Equal(t, "lib", imp.Symbols[0].Name)

	require.NotEqual(t, modulegraph.UnsetModuleID, imp.ModuleID)
}

func TestLoadModuleAtPath_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), `export const a = 1;`)

	b := newBuilder()
	id1, err := b.LoadModule(root, "./a.js")
	require.NoError(t, err)
	id2, err := b.LoadModule(root, "./a.js")
	require.NoError(t, err)
	require.Equal(t, id1, id2)
	require.Equal(t, 1, b.Graph.Len())
}
