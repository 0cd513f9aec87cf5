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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.bennypowers.dev/jsgraph/manifest"
)

// Options configures a ModuleGraphBuilder.
type Options struct {
	Resolver  Resolver
	JsParser  JsParser
	CssParser CssParser
	// Snapshot enables debug/test-mode sorting of imports/exports on
	// finalization (§4.1 "Determinism", §8 invariant 8). Production
	// builds leave it false and preserve source order.
	Snapshot bool
	// BarrelThreshold is the export_statements count at/above which a
	// file with no other statements is considered a barrel file.
	BarrelThreshold int
}

// ModuleGraphBuilder incrementally constructs a ModuleGraph by loading
// modules, extracting their imports/exports, resolving each specifier, and
// recursing, with de-duplication on path identity. A builder instance is
// owned by exactly one caller; it is not safe to invoke concurrently on
// the same builder (§5).
type ModuleGraphBuilder struct {
	Graph   *ModuleGraph
	options Options
}

// New returns a builder over a fresh, empty graph.
func New(options Options) *ModuleGraphBuilder {
	if options.BarrelThreshold == 0 {
		options.BarrelThreshold = 3
	}
	return &ModuleGraphBuilder{
		Graph:   NewModuleGraph(),
		options: options,
	}
}

// LoadModule resolves specifier against parentDir, then delegates to
// LoadModuleAtPath.
func (b *ModuleGraphBuilder) LoadModule(parentDir, specifier string) (ModuleID, error) {
	result, err := b.options.Resolver.Resolve(parentDir, specifier)
	if err != nil {
		return UnsetModuleID, &ResolveError{Dir: parentDir, Specifier: specifier, Err: err}
	}
	return b.LoadModuleAtPath(result.Path, result.Query, result.Fragment, result.PackageJSON)
}

// LoadModuleAtPath loads the module at absPath, returning its stable id.
// Calling it again with the same path performs no further work and
// returns the same id. absPath must already be absolute.
func (b *ModuleGraphBuilder) LoadModuleAtPath(absPath, query, fragment string, pkgJSON *manifest.PackageJSON) (ModuleID, error) {
	absPath = filepath.Clean(absPath)

	if id, ok := b.Graph.IDForPath(absPath); ok {
		return id, nil
	}

	id := b.Graph.allocateID(absPath)

	m := &Module{
		ID:       id,
		Path:     absPath,
		Query:    query,
		Fragment: fragment,
	}
	if pkgJSON != nil {
		m.PackageName = pkgJSON.Name
	}

	if err := b.extract(m); err != nil {
		return UnsetModuleID, err
	}
	if m.Source.JavaScript != nil && pkgJSON != nil {
		m.Source.JavaScript.PackageType = resolvePackageType(m.Source.JavaScript.PackageType, pkgJSON.Type)
	}

	dir := filepath.Dir(absPath)
	for i := range m.Imports {
		imp := &m.Imports[i]
		if imp.SourceRequest == "" {
			continue
		}
		childID, err := b.LoadModule(dir, imp.SourceRequest)
		if err != nil {
			return UnsetModuleID, err
		}
		imp.ModuleID = childID
		b.Graph.AddEdge(id, childID, EdgeImport)
	}
	for i := range m.Exports {
		exp := &m.Exports[i]
		if exp.Source == "" {
			continue
		}
		childID, err := b.LoadModule(dir, exp.Source)
		if err != nil {
			return UnsetModuleID, err
		}
		exp.ModuleID = childID
		b.Graph.AddEdge(id, childID, EdgeExport)
	}

	if b.options.Snapshot {
		sortForSnapshot(m)
	}

	b.Graph.commit(m)
	return id, nil
}

func sortForSnapshot(m *Module) {
	sort.SliceStable(m.Imports, func(i, j int) bool {
		return m.Imports[i].SourceRequest < m.Imports[j].SourceRequest
	})
	sort.SliceStable(m.Exports, func(i, j int) bool {
		return firstSymbolName(m.Exports[i]) < firstSymbolName(m.Exports[j])
	})
}

func firstSymbolName(e Export) string {
	if len(e.Symbols) == 0 {
		return ""
	}
	return e.Symbols[0].Name
}

// extract dispatches to the per-kind extractor by lowercased final
// extension, per §4.1 step 5.
func (b *ModuleGraphBuilder) extract(m *Module) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(m.Path), "."))

	switch {
	case ext == "css":
		return b.extractCss(m)
	case isJsExtension(ext):
		return b.extractJs(m, ext)
	case ext == "json" || ext == "jsonc" || ext == "json5":
		return b.extractJson(m)
	case ext == "yaml" || ext == "yml":
		return b.extractYaml(m)
	case isTextExtension(ext):
		return b.loadText(m, ext)
	default:
		return b.loadMedia(m, ext)
	}
}

func isJsExtension(ext string) bool {
	switch ext {
	case "js", "jsx", "ts", "tsx", "mts", "cts", "mjs", "cjs":
		return true
	default:
		return false
	}
}

func isTextExtension(ext string) bool {
	switch ext {
	case "gql", "graphql", "html", "less", "map", "sass", "scss", "styl", "svg":
		return true
	default:
		return false
	}
}

func readSource(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FsError{Path: path, Err: err}
	}
	return content, nil
}

func textKindForExtension(ext string) TextKind {
	switch ext {
	case "gql", "graphql":
		return TextGraphql
	case "html":
		return TextHTML
	case "less":
		return TextLess
	case "map":
		return TextSourcemap
	case "sass":
		return TextSass
	case "scss":
		return TextScss
	case "styl":
		return TextStylus
	case "svg":
		return TextSVG
	default:
		return TextUnknown
	}
}

func (b *ModuleGraphBuilder) loadText(m *Module, ext string) error {
	if _, err := readSource(m.Path); err != nil {
		return err
	}
	m.Source = Source{Kind: SourceText, Text: textKindForExtension(ext)}
	return nil
}

var audioExtensions = splitSet("aac, mid, midi, mp3, ogg, oga, mogg, opus, weba, wav")
var imageExtensions = splitSet("apng, avif, bmp, gif, ico, jpg, jpeg, jpe, jif, jfif, pjpeg, pjp, png, tif, tiff, webp")
var videoExtensions = splitSet("avi, mp4, mpeg, ogv, webm")

func splitSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, s := range strings.Split(csv, ",") {
		set[strings.TrimSpace(s)] = true
	}
	return set
}

func (b *ModuleGraphBuilder) loadMedia(m *Module, ext string) error {
	var kind MediaKind
	switch {
	case audioExtensions[ext]:
		kind = MediaAudio
	case imageExtensions[ext]:
		kind = MediaImage
	case videoExtensions[ext]:
		kind = MediaVideo
	default:
		return &UnsupportedFileTypeError{Path: m.Path}
	}
	if _, err := readSource(m.Path); err != nil {
		return err
	}
	m.Source = Source{Kind: SourceMedia, Media: kind}
	return nil
}
