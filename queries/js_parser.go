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

package queries

import (
	"go.bennypowers.dev/jsgraph/modulegraph"
)

// TreeSitterJsParser is the default modulegraph.JsParser: it hands the
// root node of a pooled TypeScript or TSX parse tree back to the caller,
// who walks it directly (see modulegraph/js.go) rather than through a
// capture-based query — the full import/export node-mapping table doesn't
// reduce cleanly to .scm patterns the way the CSS "composes" query does.
type TreeSitterJsParser struct{}

func NewTreeSitterJsParser() *TreeSitterJsParser { return &TreeSitterJsParser{} }

func (p *TreeSitterJsParser) Parse(path string, content []byte, kind modulegraph.JsSourceKind) modulegraph.JsParseResult {
	useTSX := kind == modulegraph.JsSourceTSX || kind == modulegraph.JsSourceJSX

	var parser = GetTypeScriptParser()
	putBack := PutTypeScriptParser
	if useTSX {
		parser = GetTSXParser()
		putBack = PutTSXParser
	}
	defer putBack(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return modulegraph.JsParseResult{Panicked: true}
	}

	root := tree.RootNode()
	hasError := root != nil && root.HasError()

	var errs []error
	if hasError {
		errs = append(errs, &syntaxError{path: path})
	}

	return modulegraph.JsParseResult{
		Tree:   root,
		Close:  tree.Close,
		Errors: errs,
	}
}

type syntaxError struct{ path string }

func (e *syntaxError) Error() string { return "syntax error parsing " + e.path }
