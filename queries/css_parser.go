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
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"go.bennypowers.dev/jsgraph/modulegraph"
)

// CssModulesParser is the default modulegraph.CssParser: it renders a
// *.module.css stylesheet by running the "composes" query over its
// class rules and turning each one into a local→hashed export, along
// with any cross-file composes dependencies.
type CssModulesParser struct{}

func NewCssModulesParser() *CssModulesParser { return &CssModulesParser{} }

type cssStylesheet struct {
	references []modulegraph.CssModuleReference
	exports    []modulegraph.CssExportEntry
}

func (s *cssStylesheet) References() []modulegraph.CssModuleReference { return s.references }
func (s *cssStylesheet) Exports() []modulegraph.CssExportEntry        { return s.exports }

func (p *CssModulesParser) Parse(path string, content []byte) (modulegraph.CssStylesheet, error) {
	parser := GetCSSParser()
	defer PutCSSParser(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("css: parser produced no tree for %s", path)
	}
	defer tree.Close()
	root := tree.RootNode()

	manager, err := GetGlobalQueryManager()
	if err != nil {
		return nil, err
	}
	matcher, err := NewQueryMatcher(manager, "css", "composes")
	if err != nil {
		return nil, err
	}
	defer matcher.Close()

	sheet := &cssStylesheet{}

	for group := range matcher.ParentCaptures(root, content, "rule") {
		classCaptures := group["rule.class"]
		if len(classCaptures) == 0 {
			continue
		}
		className := classCaptures[0].Text

		var composes []modulegraph.CssModuleReference
		props := group["decl.property"]
		for i, prop := range props {
			if prop.Text != "composes" {
				continue
			}
			source := declarationString(group, i)
			for _, name := range declarationLocals(group, i) {
				ref := modulegraph.CssModuleReference{Name: name, Specifier: source}
				if source != "" {
					composes = append(composes, ref)
					sheet.references = append(sheet.references, ref)
				}
			}
		}

		sheet.exports = append(sheet.exports, modulegraph.CssExportEntry{
			Name:       className,
			HashedName: hashClassName(path, className),
			Composes:   composes,
		})
	}

	return sheet, nil
}

// enclosingDeclaration finds the @declaration capture whose byte range
// contains prop, so decl.local/decl.string captures can be scoped to the
// same declaration rather than matched by nearest-offset guessing.
func enclosingDeclaration(group CaptureMap, prop CaptureInfo) (CaptureInfo, bool) {
	for _, d := range group["declaration"] {
		if d.StartByte <= prop.StartByte && prop.EndByte <= d.EndByte {
			return d, true
		}
	}
	return CaptureInfo{}, false
}

func declarationLocals(group CaptureMap, propIndex int) []string {
	prop := group["decl.property"][propIndex]
	decl, ok := enclosingDeclaration(group, prop)
	if !ok {
		return nil
	}
	var names []string
	for _, local := range group["decl.local"] {
		if local.StartByte >= decl.StartByte && local.EndByte <= decl.EndByte && local.Text != "from" {
			names = append(names, local.Text)
		}
	}
	return names
}

func declarationString(group CaptureMap, propIndex int) string {
	prop := group["decl.property"][propIndex]
	decl, ok := enclosingDeclaration(group, prop)
	if !ok {
		return ""
	}
	for _, s := range group["decl.string"] {
		if s.StartByte >= decl.StartByte && s.EndByte <= decl.EndByte {
			return trimQuotes(s.Text)
		}
	}
	return ""
}

func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// hashClassName produces a short, stable suffix derived from the file path
// and class name (not the file content), in the style of CSS-modules
// tooling (e.g. PostCSS/Vite's `name_hash`).
func hashClassName(path, className string) string {
	sum := sha1.Sum([]byte(path + ":" + className))
	return className + "_" + hex.EncodeToString(sum[:])[:8]
}
