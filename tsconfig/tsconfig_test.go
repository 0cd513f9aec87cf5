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

package tsconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/tsconfig"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestResolveChain_NodeModulesChain reproduces the layout: tsconfig.json
// extends ["./nested/b.json","./nested/a.json"]; nested/a.json extends
// "../c.json"; c.json extends ["package-one"]; node_modules/package-one
// extends "@scope/package-two/tsconfig.other.json".
func TestResolveChain_NodeModulesChain(t *testing.T) {
	root := t.TempDir()

	write(t, filepath.Join(root, "tsconfig.json"), `{
		"extends": ["./nested/b.json", "./nested/a.json"],
		"compilerOptions": { "baseUrl": "." }
	}`)
	write(t, filepath.Join(root, "nested", "b.json"), `{ "compilerOptions": { "strict": true } }`)
	write(t, filepath.Join(root, "nested", "a.json"), `{ "extends": "../c.json" }`)
	write(t, filepath.Join(root, "c.json"), `{ "extends": ["package-one"] }`)
	write(t, filepath.Join(root, "node_modules", "package-one", "tsconfig.json"),
		`{ "extends": "@scope/package-two/tsconfig.other.json" }`)
	write(t, filepath.Join(root, "node_modules", "@scope", "package-two", "tsconfig.other.json"),
		`{ "compilerOptions": { "target": "es2022" } }`)

	chain, err := tsconfig.ResolveChain(filepath.Join(root, "tsconfig.json"))
	require.NoError(t, err)
	require.Len(t, chain, 6)

	want := []string{
		filepath.Join(root, "nested", "b.json"),
		filepath.Join(root, "node_modules", "@scope", "package-two", "tsconfig.other.json"),
		filepath.Join(root, "node_modules", "package-one", "tsconfig.json"),
		filepath.Join(root, "c.json"),
		filepath.Join(root, "nested", "a.json"),
		filepath.Join(root, "tsconfig.json"),
	}
	for i, w := range want {
		require.Equal(t, w, chain[i].Path, "chain[%d]", i)
	}
}

func TestResolveChain_Singleton(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "tsconfig.json"), `{ "compilerOptions": { "strict": true } }`)

	chain, err := tsconfig.ResolveChain(filepath.Join(root, "tsconfig.json"))
	require.NoError(t, err)
	require.Len(t, chain, 1)
	require.Equal(t, filepath.Join(root, "tsconfig.json"), chain[0].Path)
}

func TestMerge_ConfigDirSubstitution(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "base.json"), `{ "compilerOptions": { "baseUrl": "${configDir}/src" } }`)
	write(t, filepath.Join(root, "tsconfig.json"), `{ "extends": "./base.json" }`)

	chain, err := tsconfig.ResolveChain(filepath.Join(root, "tsconfig.json"))
	require.NoError(t, err)

	merged := tsconfig.Merge(chain, root)
	require.Equal(t, root+"/src", merged.BaseURL)
}
