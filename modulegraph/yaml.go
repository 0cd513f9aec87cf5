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

import "gopkg.in/yaml.v3"

// extractYaml mirrors extractJson but for YAML documents, using yaml.Node
// so top-level mapping keys are read in source (document) order rather
// than the unspecified order of decoding into a Go map.
func (b *ModuleGraphBuilder) extractYaml(m *Module) error {
	raw, err := readSource(m.Path)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return &ParseError{Kind: "yaml", Path: m.Path, Err: err}
	}

	symbols := []ExportedSymbol{{Kind: Default, Name: "default"}}
	if root := yamlRoot(&doc); root != nil && root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			symbols = append(symbols, ExportedSymbol{Kind: Value, Name: root.Content[i].Value})
		}
	}

	m.Source = Source{Kind: SourceYaml}
	m.Exports = []Export{{Kind: Native, Symbols: symbols}}
	return nil
}

func yamlRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}
