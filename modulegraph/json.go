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

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// extractJson implements the JSON extractor (§4.4): parse the document,
// always emit a synthetic Default export, and one Value symbol per
// top-level object key in source order. .jsonc/.json5 files are accepted
// via comment/trailing-comma stripping before the standard decoder runs.
func (b *ModuleGraphBuilder) extractJson(m *Module) error {
	raw, err := readSource(m.Path)
	if err != nil {
		return err
	}
	clean := jsonc.ToJSON(raw)

	keys, isObject, err := orderedTopLevelJSONKeys(clean)
	if err != nil {
		return &ParseError{Kind: "json", Path: m.Path, Err: err}
	}

	symbols := []ExportedSymbol{{Kind: Default, Name: "default"}}
	if isObject {
		for _, k := range keys {
			symbols = append(symbols, ExportedSymbol{Kind: Value, Name: k})
		}
	}

	m.Source = Source{Kind: SourceJson}
	m.Exports = []Export{{Kind: Native, Symbols: symbols}}
	return nil
}

// orderedTopLevelJSONKeys returns the top-level object keys of data in
// source order (json.Decoder's token stream preserves declaration order,
// unlike decoding into a map). Returns isObject=false for any other root
// shape (array, scalar).
func orderedTopLevelJSONKeys(data []byte) (keys []string, isObject bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, false, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		// Still must be valid JSON; decode fully to surface syntax errors.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false, err
		}
		key, _ := keyTok.(string)
		keys = append(keys, key)

		// Skip the value without decoding it into a concrete type.
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false, err
		}
	}
	return keys, true, nil
}
