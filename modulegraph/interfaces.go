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

// JsSourceKind tells a JsParser which grammar dialect and module system to
// apply: JS vs JSX vs TS vs TSX, crossed with module vs commonjs.
type JsSourceKind int

const (
	JsSourceJS JsSourceKind = iota
	JsSourceJSX
	JsSourceTS
	JsSourceTSX
	JsSourceMTS
	JsSourceCTS
	JsSourceMJS
	JsSourceCJS
)

// JsParseResult is what an external JsParser hands back: it always
// returns a best-effort AST plus zero or more errors, and flags the
// unrecoverable case where neither an AST nor an error could be produced.
// JsExtractor type-asserts Tree to *tree_sitter.Node (the only concrete
// JsParser this module ships); Close releases any underlying tree memory
// and must be called once extraction is done, if non-nil.
type JsParseResult struct {
	Tree     any
	Close    func()
	Errors   []error
	Panicked bool
}

// JsParser is the external collaborator that turns JS/TS source text into
// an AST. The builder never parses JavaScript itself; JsExtractor walks
// the Tree a JsParser hands back.
type JsParser interface {
	Parse(path string, content []byte, kind JsSourceKind) JsParseResult
}

// CssModuleReference is one `composes: name from "specifier"` reference
// extracted by a CssParser's rendered stylesheet.
type CssModuleReference struct {
	Name      string
	Specifier string
}

// CssExportEntry is one local class name and the dependencies it composes.
type CssExportEntry struct {
	Name       string
	HashedName string
	Composes   []CssModuleReference
}

// CssStylesheet is what an external CssParser hands back after rendering:
// the module's reference list (imported names from `composes … from`) and
// its own exports (local → hashed name, with any composed dependencies).
type CssStylesheet interface {
	References() []CssModuleReference
	Exports() []CssExportEntry
}

// CssParser is the external collaborator that parses CSS source text into
// a stylesheet CssExtractor can render.
type CssParser interface {
	Parse(path string, content []byte) (CssStylesheet, error)
}
