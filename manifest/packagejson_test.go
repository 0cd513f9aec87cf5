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

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/manifest"
)

func TestResolveExportSubpath_ConditionsOnlyRoot(t *testing.T) {
	pkg := &manifest.PackageJSON{
		Exports: map[string]any{
			"import":  "./dist/index.mjs",
			"require": "./dist/index.cjs",
		},
	}
	rel, err := manifest.ResolveExportSubpath(pkg, ".", []string{"import", "require"})
	require.NoError(t, err)
	require.Equal(t, "dist/index.mjs", rel)
}

func TestResolveExportSubpath_WildcardLongestPrefixWins(t *testing.T) {
	pkg := &manifest.PackageJSON{
		Exports: map[string]any{
			"./*":            "./dist/*.js",
			"./feature/*":    "./dist/feature/*.js",
			"./feature/beta": "./dist/feature/beta-special.js",
		},
	}
	rel, err := manifest.ResolveExportSubpath(pkg, "./feature/gamma", []string{"default"})
	require.NoError(t, err)
	require.Equal(t, "dist/feature/gamma.js", rel)

	rel, err = manifest.ResolveExportSubpath(pkg, "./feature/beta", []string{"default"})
	require.NoError(t, err)
	require.Equal(t, "dist/feature/beta-special.js", rel)
}

func TestResolveExportSubpath_MainModuleFallback(t *testing.T) {
	pkg := &manifest.PackageJSON{Module: "./esm/index.js", Main: "./cjs/index.js"}
	rel, err := manifest.ResolveExportSubpath(pkg, ".", nil)
	require.NoError(t, err)
	require.Equal(t, "esm/index.js", rel)

	pkg = &manifest.PackageJSON{Main: "./cjs/index.js"}
	rel, err = manifest.ResolveExportSubpath(pkg, ".", nil)
	require.NoError(t, err)
	require.Equal(t, "cjs/index.js", rel)
}

func TestResolveExportSubpath_NotExported(t *testing.T) {
	pkg := &manifest.PackageJSON{
		Exports: map[string]any{"./a": "./dist/a.js"},
	}
	_, err := manifest.ResolveExportSubpath(pkg, "./b", nil)
	require.ErrorIs(t, err, manifest.ErrNotExported)
}

func TestResolveImportSubpath_Wildcard(t *testing.T) {
	pkg := &manifest.PackageJSON{
		Imports: map[string]any{
			"#internal/*": "./src/internal/*.js",
		},
	}
	rel, err := manifest.ResolveImportSubpath(pkg, "#internal/helpers", []string{"default"})
	require.NoError(t, err)
	require.Equal(t, "src/internal/helpers.js", rel)
}

func TestResolveImportSubpath_NoImportsField(t *testing.T) {
	pkg := &manifest.PackageJSON{}
	_, err := manifest.ResolveImportSubpath(pkg, "#x", nil)
	require.ErrorIs(t, err, manifest.ErrNotExported)
}

func TestWorkspaceGlobs_PlainArray(t *testing.T) {
	pkg := &manifest.PackageJSON{Workspaces: []any{"packages/*", "apps/*"}}
	require.Equal(t, []string{"apps/*", "packages/*"}, manifest.WorkspaceGlobs(pkg))
}

func TestWorkspaceGlobs_PackagesObjectForm(t *testing.T) {
	pkg := &manifest.PackageJSON{
		Workspaces: map[string]any{
			"packages": []any{"packages/*"},
			"nohoist":  []any{"**/react-native"},
		},
	}
	require.Equal(t, []string{"packages/*"}, manifest.WorkspaceGlobs(pkg))
}

func TestWorkspaceGlobs_NilWorkspaces(t *testing.T) {
	require.Nil(t, manifest.WorkspaceGlobs(&manifest.PackageJSON{}))
	require.Nil(t, manifest.WorkspaceGlobs(nil))
}

func TestParsePackageSpecifier_Scoped(t *testing.T) {
	name, subpath := manifest.ParsePackageSpecifier("@scope/pkg/feature")
	require.Equal(t, "@scope/pkg", name)
	require.Equal(t, "./feature", subpath)
}

func TestParsePackageSpecifier_Bare(t *testing.T) {
	name, subpath := manifest.ParsePackageSpecifier("lodash")
	require.Equal(t, "lodash", name)
	require.Equal(t, ".", subpath)
}
