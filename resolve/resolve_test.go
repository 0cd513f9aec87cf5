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

package resolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/resolve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolver_RelativeExtensionProbing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mjs"), `import { hello } from "./b.mjs"`)
	writeFile(t, filepath.Join(root, "b.mjs"), `export const hello = 1`)

	r := resolve.New()
	result, err := r.Resolve(root, "./b")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "b.mjs"), result.Path)
}

func TestResolver_PackageExports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "package.json"), `{
		"name": "pkg",
		"exports": { ".": "./dist/index.js", "./feature": "./dist/feature.js" }
	}`)
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "dist", "index.js"), `export const x = 1`)
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "dist", "feature.js"), `export const y = 1`)
	writeFile(t, filepath.Join(root, "entry.js"), `import "pkg"`)

	r := resolve.New()
	result, err := r.Resolve(root, "pkg")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "node_modules", "pkg", "dist", "index.js"), result.Path)
	require.NotNil(t, result.PackageJSON)
	require.Equal(t, "pkg", result.PackageJSON.Name)

	result, err = r.Resolve(root, "pkg/feature")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "node_modules", "pkg", "dist", "feature.js"), result.Path)
}

func TestResolver_QueryFragment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "style.css"), `.a {}`)

	r := resolve.New()
	result, err := r.Resolve(root, "./style.css?raw#top")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "style.css"), result.Path)
	require.Equal(t, "raw", result.Query)
	require.Equal(t, "top", result.Fragment)
}
