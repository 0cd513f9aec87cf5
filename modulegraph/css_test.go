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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/modulegraph"
)

// TestLoadModule_CssModuleComposes covers a CSS module that composes a
// class from another CSS module: the composing file gains an Import on
// the composed specifier and an Export per local class, and the loaded
// graph follows the composes edge to the dependency module.
func TestLoadModule_CssModuleComposes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "button.module.css"), `.base {
  color: blue;
}
`)
	writeFile(t, filepath.Join(root, "card.module.css"), `.card {
  composes: base from "./button.module.css";
  padding: 1rem;
}
`)

	b := newBuilder()
	cardID, err := b.LoadModule(root, "./card.module.css")
	require.NoError(t, err)

	card := b.Graph.Module(cardID)
	require.Equal(t, modulegraph.SourceCss, card.Source.Kind)
	require.Len(t, card.Exports, 1)
	require.Equal(t, "card", card.Exports[0].Symbols[0].Name)
	require.Equal(t, modulegraph.Native, card.Exports[0].Kind)

	require.Len(t, card.Imports, 1)
	imp := card.Imports[0]
	require.Equal(t, "./button.module.css", imp.SourceRequest)
	require.Len(t, imp.Symbols, 1)
	require.Equal(t, "base", imp.Symbols[0].Name)

	require.Contains(t, card.Source.CssClasses, "card")
	require.NotEmpty(t, card.Source.CssClasses["card"])

	buttonID := imp.ModuleID
	require.NotEqual(t, modulegraph.UnsetModuleID, buttonID)
	button := b.Graph.Module(buttonID)
	require.Len(t, button.Exports, 1)
	require.Equal(t, "base", button.Exports[0].Symbols[0].Name)

	require.Len(t, b.Graph.Edges(), 1)
}

// TestLoadModule_PlainCssEmitsNothing covers a non-module *.css file: it
// loads and classifies as CSS source but produces no imports or exports.
func TestLoadModule_PlainCssEmitsNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "global.css"), `body { margin: 0; }`)

	b := newBuilder()
	id, err := b.LoadModule(root, "./global.css")
	require.NoError(t, err)

	m := b.Graph.Module(id)
	require.Equal(t, modulegraph.SourceCss, m.Source.Kind)
	require.Empty(t, m.Imports)
	require.Empty(t, m.Exports)
	require.Nil(t, m.Source.CssClasses)
}
