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

// Package modulegraph builds a directed graph of a project's source files,
// following import/export specifiers from an entry file and recording
// every import/export statement each file declares.
package modulegraph

// ModuleID is a dense, 32-bit, monotonically increasing identifier, unique
// within a single graph. 0 is reserved for "not yet assigned" and never
// appears as a key in a built graph.
type ModuleID uint32

// UnsetModuleID is the sentinel value carried by an Import/Export before
// its target has been resolved.
const UnsetModuleID ModuleID = 0

// SourceKind tags which extractor populated a Module and which payload
// variant of Source is valid. The set is closed, so this is a tagged union
// rather than an interface — consistent with ModuleGraph's other sum
// types (ImportKind, ExportKind).
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceJavaScript
	SourceCss
	SourceJson
	SourceYaml
	SourceText
	SourceMedia
)

func (k SourceKind) String() string {
	switch k {
	case SourceJavaScript:
		return "javascript"
	case SourceCss:
		return "css"
	case SourceJson:
		return "json"
	case SourceYaml:
		return "yaml"
	case SourceText:
		return "text"
	case SourceMedia:
		return "media"
	default:
		return "unknown"
	}
}

// MediaKind classifies a binary media file.
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaAudio
	MediaImage
	MediaVideo
)

// TextKind classifies a text file that participates in the graph with no
// extraction.
type TextKind int

const (
	TextUnknown TextKind = iota
	TextGraphql
	TextHTML
	TextLess
	TextSass
	TextScss
	TextSourcemap
	TextStylus
	TextSVG
)

// JavaScriptPackageType is the ESM/CJS classification of a JavaScript
// module, determined once per module per §4.2.
type JavaScriptPackageType int

const (
	PackageTypeUnknown JavaScriptPackageType = iota
	PackageTypeCjs
	PackageTypeMjs
	PackageTypeEsmPackageJson
	PackageTypeCjsPackageJson
)

// JavaScriptStats summarizes one JS/TS file's top-level statements.
type JavaScriptStats struct {
	DynamicImportCount int
	ExportStatements   int
	ExportsDefault     bool
	ImportStatements   int
	OtherStatements    int
	RequireCount       int
	PackageType        JavaScriptPackageType
}

// IsBarrel reports whether the file looks like a pure re-export barrel:
// no statements besides imports/exports, with at least threshold exports.
func (s JavaScriptStats) IsBarrel(threshold int) bool {
	return s.OtherStatements == 0 && s.ExportStatements >= threshold
}

// Source is the closed tagged-union payload attached to a Module,
// discriminated by Kind.
type Source struct {
	Kind       SourceKind
	JavaScript *JavaScriptStats
	Media      MediaKind
	Text       TextKind
	// CssClasses maps local class names to their hashed output names for
	// a CSS module, populated by the CSS extractor for downstream
	// consumers (e.g. a bundler resolving `styles.foo`).
	CssClasses map[string]string
}

// Span is a half-open byte range [Start, End) into a source file.
type Span struct {
	Start int
	End   int
}

// Module is an interned record for one source file, created the first
// time its path is requested. Its ID is fixed at creation and never
// reused; Modules are immutable to consumers once extraction completes.
type Module struct {
	ID          ModuleID
	Path        string
	Query       string
	Fragment    string
	PackageName string
	Imports     []Import
	Exports     []Export
	Source      Source
}
