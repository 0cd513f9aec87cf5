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

import "strings"

// extractCss implements the CSS extractor (§4.3). Only "*.module.css"
// files participate in import/export extraction; ordinary CSS is loaded
// but emits nothing.
func (b *ModuleGraphBuilder) extractCss(m *Module) error {
	content, err := readSource(m.Path)
	if err != nil {
		return err
	}
	m.Source = Source{Kind: SourceCss}

	if !strings.HasSuffix(strings.ToLower(m.Path), ".module.css") {
		return nil
	}

	sheet, err := b.options.CssParser.Parse(m.Path, content)
	if err != nil {
		return &ParseError{Kind: "css", Path: m.Path, Err: err}
	}

	importBySource := make(map[string]*Import)
	var order []string

	addReference := func(ref CssModuleReference) {
		imp, ok := importBySource[ref.Specifier]
		if !ok {
			imp = &Import{Kind: SyncStatic, SourceRequest: ref.Specifier}
			importBySource[ref.Specifier] = imp
			order = append(order, ref.Specifier)
		}
		for _, s := range imp.Symbols {
			if s.Name == ref.Name {
				return
			}
		}
		imp.Symbols = append(imp.Symbols, ImportedSymbol{Kind: Value, Name: ref.Name})
	}

	for _, ref := range sheet.References() {
		addReference(ref)
	}

	classes := make(map[string]string)
	var exports []Export
	for _, exp := range sheet.Exports() {
		exports = append(exports, Export{Kind: Native, Symbols: []ExportedSymbol{{Kind: Value, Name: exp.Name}}})
		classes[exp.Name] = exp.HashedName
		for _, dep := range exp.Composes {
			addReference(dep)
		}
	}

	imports := make([]Import, 0, len(order))
	for _, specifier := range order {
		imports = append(imports, *importBySource[specifier])
	}

	m.Imports = imports
	m.Exports = exports
	m.Source.CssClasses = classes
	return nil
}
