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
	ts "github.com/tree-sitter/go-tree-sitter"
)

// extractJs implements the JavaScript/TypeScript extractor (§4.2): walk the
// AST once, emitting every Import/Export the file declares plus a
// JavaScriptStats summary, then classify the module as ESM or CJS.
func (b *ModuleGraphBuilder) extractJs(m *Module, ext string) error {
	content, err := readSource(m.Path)
	if err != nil {
		return err
	}

	result := b.options.JsParser.Parse(m.Path, content, jsSourceKindForExtension(ext))
	if result.Close != nil {
		defer result.Close()
	}
	if result.Panicked {
		return &JsPanickedError{Path: m.Path}
	}

	stats := &JavaScriptStats{PackageType: packageTypeForExtension(ext)}

	root, ok := result.Tree.(*ts.Node)
	if !ok || root == nil {
		m.Source = Source{Kind: SourceJavaScript, JavaScript: stats}
		return nil
	}

	w := &jsWalker{content: content, dedup: make(map[[2]int]bool)}
	w.walkProgram(root, stats)

	m.Imports = w.imports
	m.Exports = w.exports
	m.Source = Source{Kind: SourceJavaScript, JavaScript: stats}
	return nil
}

func jsSourceKindForExtension(ext string) JsSourceKind {
	switch ext {
	case "jsx":
		return JsSourceJSX
	case "ts":
		return JsSourceTS
	case "tsx":
		return JsSourceTSX
	case "mts":
		return JsSourceMTS
	case "cts":
		return JsSourceCTS
	case "mjs":
		return JsSourceMJS
	case "cjs":
		return JsSourceCJS
	default:
		return JsSourceJS
	}
}

func packageTypeForExtension(ext string) JavaScriptPackageType {
	switch ext {
	case "cjs", "cts":
		return PackageTypeCjs
	case "mjs", "mts":
		return PackageTypeMjs
	default:
		return PackageTypeUnknown
	}
}

// resolvePackageType refines an Unknown classification using the nearest
// package.json's "type" field, per §4.2's ESM/CJS classification rule. It
// is a package-level helper for the builder to call once the containing
// package.json is known; extractJs alone cannot see it.
func resolvePackageType(current JavaScriptPackageType, manifestType string) JavaScriptPackageType {
	if current != PackageTypeUnknown {
		return current
	}
	switch manifestType {
	case "module":
		return PackageTypeEsmPackageJson
	case "commonjs", "cjs":
		return PackageTypeCjsPackageJson
	default:
		return PackageTypeUnknown
	}
}

// jsWalker accumulates Imports/Exports while traversing one file's AST.
// Only top-level statements are inspected, and within them only a
// statement-level call or a declarator initializer; import()/require()
// calls nested deeper (inside function bodies, blocks or other
// expressions) are not recorded. dedup holds the spans of the
// call-expression-derived imports/requires already recorded, so a call
// site is never recorded twice.
type jsWalker struct {
	content []byte
	imports []Import
	exports []Export
	dedup   map[[2]int]bool
}

func (w *jsWalker) text(n *ts.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(w.content)
}

// hasTypeKeyword reports whether node has a direct (possibly unnamed) child
// whose literal text is "type" — used to detect `import type`/`export
// type`/per-specifier `type` modifiers, none of which tree-sitter exposes
// as a dedicated boolean field.
func (w *jsWalker) hasTypeKeyword(n *ts.Node) bool {
	if n == nil {
		return false
	}
	for i := range n.ChildCount() {
		c := n.Child(i)
		if c != nil && w.text(c) == "type" {
			return true
		}
	}
	return false
}

func stringLiteralValue(n *ts.Node, content []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	kind := n.Kind()
	if kind != "string" && kind != "template_string" {
		return "", false
	}
	for i := range n.NamedChildCount() {
		c := n.NamedChild(i)
		if c != nil && (c.Kind() == "string_fragment" || c.Kind() == "string_fragment_line") {
			return c.Utf8Text(content), true
		}
	}
	// Fall through: string with no fragment child is the empty string.
	if n.NamedChildCount() == 0 {
		return "", true
	}
	return "", false
}

func (w *jsWalker) walkProgram(root *ts.Node, stats *JavaScriptStats) {
	for i := range root.NamedChildCount() {
		stmt := root.NamedChild(i)
		if stmt == nil {
			continue
		}
		w.walkTopLevelStatement(stmt, stats)
	}
}

func (w *jsWalker) walkTopLevelStatement(stmt *ts.Node, stats *JavaScriptStats) {
	switch stmt.Kind() {
	case "import_statement":
		stats.ImportStatements++
		w.walkImportStatement(stmt)
	case "export_statement":
		stats.ExportStatements++
		w.walkExportStatement(stmt, stats)
	case "expression_statement":
		if w.isBareDynamicImport(stmt) {
			stats.DynamicImportCount++
			w.recordDynamicImport(firstCallExpression(stmt), nil)
			return
		}
		if w.isLegacyExportAssignment(stmt) {
			w.walkLegacyExportAssignment(stmt)
			return
		}
		w.countCallSideEffects(stmt, stats)
		stats.OtherStatements++
	case "lexical_declaration", "variable_declaration":
		if w.walkDeclarationImports(stmt, stats) {
			return
		}
		stats.OtherStatements++
	case "import_alias":
		if w.walkImportAlias(stmt) {
			stats.ImportStatements++
		} else {
			stats.OtherStatements++
		}
	default:
		stats.OtherStatements++
	}
}

// ---- import_statement ----

func (w *jsWalker) walkImportStatement(stmt *ts.Node) {
	sourceNode := stmt.ChildByFieldName("source")
	source, _ := stringLiteralValue(sourceNode, w.content)

	typeOnly := w.hasTypeKeyword(stmt)
	imp := Import{Kind: AsyncStatic, SourceRequest: source, TypeOnly: typeOnly, Span: spanOf(stmt)}

	if req := firstChildOfKind(stmt, "import_require_clause"); req != nil {
		// TS `import m = require("m")`: SyncStatic with a single Default symbol.
		source, _ = stringLiteralValue(req.ChildByFieldName("source"), w.content)
		kind := Default
		if typeOnly {
			kind = DefaultType
		}
		imp.Kind = SyncStatic
		imp.SourceRequest = source
		imp.Symbols = []ImportedSymbol{{Kind: kind, Name: w.text(firstChildOfKind(req, "identifier"))}}
		w.imports = append(w.imports, imp)
		return
	}

	clause := firstChildOfKind(stmt, "import_clause")
	if clause == nil {
		// Side-effect-only import: `import "m"`.
		w.imports = append(w.imports, imp)
		return
	}

	for i := range clause.NamedChildCount() {
		part := clause.NamedChild(i)
		if part == nil {
			continue
		}
		switch part.Kind() {
		case "identifier":
			kind := Default
			if typeOnly {
				kind = DefaultType
			}
			imp.Symbols = append(imp.Symbols, ImportedSymbol{Kind: kind, Name: w.text(part)})
		case "namespace_import":
			name := w.text(lastNamedChild(part))
			kind := Namespace
			if typeOnly {
				kind = NamespaceType
			}
			imp.Symbols = append(imp.Symbols, ImportedSymbol{Kind: kind, Name: name})
		case "named_imports":
			for j := range part.NamedChildCount() {
				spec := part.NamedChild(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				imp.Symbols = append(imp.Symbols, w.importSpecifierSymbol(spec, typeOnly))
			}
		}
	}

	w.imports = append(w.imports, imp)
}

func (w *jsWalker) importSpecifierSymbol(spec *ts.Node, parentTypeOnly bool) ImportedSymbol {
	nameNode := spec.ChildByFieldName("name")
	aliasNode := spec.ChildByFieldName("alias")
	specTypeOnly := parentTypeOnly || w.hasTypeKeyword(spec)

	name := w.text(nameNode)
	sourceName := ""
	if aliasNode != nil {
		sourceName = name
		name = w.text(aliasNode)
	}

	kind := Value
	if specTypeOnly {
		kind = ValueType
	}
	if name == "default" && sourceName == "" {
		kind = Default
		if specTypeOnly {
			kind = DefaultType
		}
	}
	return ImportedSymbol{Kind: kind, Name: name, SourceName: sourceName}
}

// ---- import_alias (TS `import m = require("m")` / `import m = N.M`) ----

// walkImportAlias records a top-level TypeScript import-equals
// declaration as a SyncStatic import when its right-hand side is an
// `external_module_reference` (`require("m")`), per spec.md's
// node-mapping table. A qualified-name alias (`import m = N.M`) binds a
// local name to an existing value rather than importing a module, so it
// produces no Import; the caller then counts the statement as "other".
// Returns whether an Import was recorded.
func (w *jsWalker) walkImportAlias(stmt *ts.Node) bool {
	source, ok := w.externalModuleReferenceSource(stmt)
	if !ok {
		return false
	}
	name := w.text(stmt.ChildByFieldName("name"))
	typeOnly := w.hasTypeKeyword(stmt)
	kind := Default
	if typeOnly {
		kind = DefaultType
	}
	w.imports = append(w.imports, Import{
		Kind:          SyncStatic,
		SourceRequest: source,
		TypeOnly:      typeOnly,
		Span:          spanOf(stmt),
		Symbols:       []ImportedSymbol{{Kind: kind, Name: name}},
	})
	return true
}

// externalModuleReferenceSource extracts the string argument of an
// `external_module_reference` (`require("m")`) child of an import_alias
// node, if present.
func (w *jsWalker) externalModuleReferenceSource(stmt *ts.Node) (string, bool) {
	ref := firstChildOfKind(stmt, "external_module_reference")
	if ref == nil {
		return "", false
	}
	for i := range ref.NamedChildCount() {
		if s, ok := stringLiteralValue(ref.NamedChild(i), w.content); ok {
			return s, true
		}
	}
	return "", false
}

// ---- export_statement ----

func (w *jsWalker) walkExportStatement(stmt *ts.Node, stats *JavaScriptStats) {
	typeOnly := w.hasTypeKeyword(stmt)

	if w.hasKeywordChild(stmt, "default") {
		stats.ExportsDefault = true
		w.walkExportDefault(stmt, typeOnly)
		return
	}

	if w.hasKeywordChild(stmt, "*") {
		w.walkExportStar(stmt, typeOnly)
		return
	}

	if clause := firstChildOfKind(stmt, "export_clause"); clause != nil {
		sourceNode := stmt.ChildByFieldName("source")
		source, hasSource := stringLiteralValue(sourceNode, w.content)
		exp := Export{Kind: Modern, TypeOnly: typeOnly, Span: spanOf(stmt)}
		if hasSource {
			exp.Source = source
		}
		for i := range clause.NamedChildCount() {
			spec := clause.NamedChild(i)
			if spec == nil || spec.Kind() != "export_specifier" {
				continue
			}
			exp.Symbols = append(exp.Symbols, w.exportSpecifierSymbol(spec, typeOnly))
		}
		w.exports = append(w.exports, exp)
		return
	}

	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		w.walkExportedDeclaration(decl, typeOnly)
		return
	}
}

func (w *jsWalker) exportSpecifierSymbol(spec *ts.Node, parentTypeOnly bool) ExportedSymbol {
	nameNode := spec.ChildByFieldName("name")
	aliasNode := spec.ChildByFieldName("alias")
	specTypeOnly := parentTypeOnly || w.hasTypeKeyword(spec)

	name := w.text(nameNode)
	if aliasNode != nil {
		name = w.text(aliasNode)
	}
	kind := Value
	if specTypeOnly {
		kind = ValueType
	}
	return ExportedSymbol{Kind: kind, Name: name}
}

func (w *jsWalker) walkExportStar(stmt *ts.Node, typeOnly bool) {
	sourceNode := stmt.ChildByFieldName("source")
	source, _ := stringLiteralValue(sourceNode, w.content)

	kind := Namespace
	name := "*"
	if aliasIdent := firstChildOfKind(stmt, "identifier"); aliasIdent != nil && w.hasKeywordChild(stmt, "as") {
		name = w.text(aliasIdent)
	}
	if typeOnly {
		kind = NamespaceType
	}
	w.exports = append(w.exports, Export{
		Kind:     Modern,
		Source:   source,
		TypeOnly: typeOnly,
		Span:     spanOf(stmt),
		Symbols:  []ExportedSymbol{{Kind: kind, Name: name}},
	})
}

func (w *jsWalker) walkExportDefault(stmt *ts.Node, typeOnly bool) {
	name := "default"
	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		if n := w.declarationName(decl); n != "" {
			name = n
		}
	} else if v := stmt.ChildByFieldName("value"); v != nil {
		if v.Kind() == "identifier" {
			name = w.text(v)
		}
	}
	kind := Default
	if typeOnly {
		kind = DefaultType
	}
	w.exports = append(w.exports, Export{
		Kind:    Modern,
		Span:    spanOf(stmt),
		Symbols: []ExportedSymbol{{Kind: kind, Name: name}},
	})
}

func (w *jsWalker) declarationName(decl *ts.Node) string {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration", "class_declaration",
		"interface_declaration", "enum_declaration", "type_alias_declaration", "internal_module":
		if n := decl.ChildByFieldName("name"); n != nil {
			return w.text(n)
		}
	}
	return ""
}

func (w *jsWalker) walkExportedDeclaration(decl *ts.Node, typeOnly bool) {
	switch decl.Kind() {
	case "lexical_declaration", "variable_declaration":
		for i := range decl.NamedChildCount() {
			d := decl.NamedChild(i)
			if d == nil || d.Kind() != "variable_declarator" {
				continue
			}
			for _, name := range w.bindingNames(d.ChildByFieldName("name")) {
				w.exports = append(w.exports, Export{
					Kind: Modern, Span: spanOf(decl),
					Symbols: []ExportedSymbol{{Kind: Value, Name: name}},
				})
			}
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		name := w.text(decl.ChildByFieldName("name"))
		w.exports = append(w.exports, Export{
			Kind: Modern, Span: spanOf(decl),
			Symbols: []ExportedSymbol{{Kind: Value, Name: name}},
		})
	case "interface_declaration", "enum_declaration", "type_alias_declaration", "internal_module":
		name := w.text(decl.ChildByFieldName("name"))
		w.exports = append(w.exports, Export{
			Kind: Modern, TypeOnly: true, Span: spanOf(decl),
			Symbols: []ExportedSymbol{{Kind: ValueType, Name: name}},
		})
	case "import_alias":
		name := w.text(decl.ChildByFieldName("name"))
		w.exports = append(w.exports, Export{
			Kind: Modern, TypeOnly: true, Span: spanOf(decl),
			Symbols: []ExportedSymbol{{Kind: ValueType, Name: name}},
		})
	case "export_assignment":
		w.exports = append(w.exports, Export{
			Kind: Modern, Span: spanOf(decl),
			Symbols: []ExportedSymbol{{Kind: Default, Name: "default"}},
		})
	}
}

// ---- binding patterns (§4.2 "Binding pattern recursion") ----

// bindingNames flattens a binding target — plain identifier, object
// pattern, or array pattern — into the list of Value-symbol names it
// introduces. Used for `export const/let/var` destructuring.
func (w *jsWalker) bindingNames(pattern *ts.Node) []string {
	if pattern == nil {
		return nil
	}
	switch pattern.Kind() {
	case "identifier":
		return []string{w.text(pattern)}
	case "object_pattern":
		var names []string
		for i := range pattern.NamedChildCount() {
			prop := pattern.NamedChild(i)
			if prop == nil {
				continue
			}
			switch prop.Kind() {
			case "shorthand_property_identifier_pattern":
				names = append(names, w.text(prop))
			case "pair_pattern":
				names = append(names, w.bindingNames(prop.ChildByFieldName("value"))...)
			case "rest_pattern":
				names = append(names, w.bindingNames(prop.NamedChild(0))...)
			case "object_assignment_pattern":
				names = append(names, w.bindingNames(prop.ChildByFieldName("left"))...)
			}
		}
		return names
	case "array_pattern":
		var names []string
		for i := range pattern.NamedChildCount() {
			names = append(names, w.bindingNames(pattern.NamedChild(i))...)
		}
		return names
	default:
		return nil
	}
}

// dynamicImportSymbols derives the symbols bound by
// `const { a, b: c } = await import("m")`, per the namespace-object
// destructuring rule: a plain identifier binds the whole namespace; object
// pattern properties become Value (or Default when the key is literally
// "default") symbols; a rest element becomes Namespace; array patterns are
// ignored at the top level.
func (w *jsWalker) dynamicImportSymbols(pattern *ts.Node) []ImportedSymbol {
	if pattern == nil {
		return nil
	}
	switch pattern.Kind() {
	case "identifier":
		return []ImportedSymbol{{Kind: Namespace, Name: w.text(pattern)}}
	case "object_pattern":
		var symbols []ImportedSymbol
		for i := range pattern.NamedChildCount() {
			prop := pattern.NamedChild(i)
			if prop == nil {
				continue
			}
			switch prop.Kind() {
			case "shorthand_property_identifier_pattern":
				name := w.text(prop)
				kind := Value
				if name == "default" {
					kind = Default
				}
				symbols = append(symbols, ImportedSymbol{Kind: kind, Name: name})
			case "pair_pattern":
				key := w.text(prop.ChildByFieldName("key"))
				value := w.text(prop.ChildByFieldName("value"))
				kind := Value
				sourceName := ""
				if key == "default" {
					kind = Default
				}
				if value != "" && value != key {
					sourceName = key
				} else {
					value = key
				}
				symbols = append(symbols, ImportedSymbol{Kind: kind, Name: value, SourceName: sourceName})
			case "rest_pattern":
				symbols = append(symbols, ImportedSymbol{Kind: Namespace, Name: w.text(prop.NamedChild(0))})
			case "object_assignment_pattern":
				symbols = append(symbols, w.dynamicImportSymbols(prop.ChildByFieldName("left"))...)
			}
		}
		return symbols
	default:
		return nil
	}
}

// ---- const X = import(...) / const X = require(...) / require(...) ----

// walkDeclarationImports scans a top-level `const`/`let`/`var` declaration
// for an initializer that is (possibly via `await`) a dynamic import or a
// require() call, recording it as an Import. Returns true if the whole
// declaration was consumed as an import statement rather than counted as
// an ordinary "other" statement.
func (w *jsWalker) walkDeclarationImports(decl *ts.Node, stats *JavaScriptStats) bool {
	consumed := false
	for i := range decl.NamedChildCount() {
		d := decl.NamedChild(i)
		if d == nil || d.Kind() != "variable_declarator" {
			continue
		}
		value := d.ChildByFieldName("value")
		call := unwrapAwait(value)
		if call == nil || call.Kind() != "call_expression" {
			continue
		}
		fn := call.ChildByFieldName("function")
		if fn == nil {
			continue
		}
		switch {
		case fn.Kind() == "import":
			stats.DynamicImportCount++
			w.recordDynamicImport(call, d.ChildByFieldName("name"))
			consumed = true
		case w.text(fn) == "require":
			stats.RequireCount++
			w.recordRequire(call, d.ChildByFieldName("name"))
			consumed = true
		}
	}
	return consumed
}

func unwrapAwait(n *ts.Node) *ts.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == "await_expression" {
		return n.NamedChild(0)
	}
	return n
}

func (w *jsWalker) recordDynamicImport(call *ts.Node, pattern *ts.Node) {
	if call == nil || w.seen(call) {
		return
	}
	args := call.ChildByFieldName("arguments")
	source, _ := stringLiteralValue(firstNamedChild(args), w.content)
	imp := Import{Kind: AsyncDynamic, SourceRequest: source, Span: spanOf(call)}
	if pattern != nil {
		imp.Symbols = w.dynamicImportSymbols(pattern)
	}
	w.imports = append(w.imports, imp)
}

func (w *jsWalker) recordRequire(call *ts.Node, pattern *ts.Node) {
	if call == nil || w.seen(call) {
		return
	}
	args := call.ChildByFieldName("arguments")
	source, _ := stringLiteralValue(firstNamedChild(args), w.content)
	imp := Import{Kind: SyncStatic, SourceRequest: source, Span: spanOf(call)}
	if pattern != nil {
		imp.Symbols = w.dynamicImportSymbols(pattern)
	}
	w.imports = append(w.imports, imp)
}

func (w *jsWalker) seen(n *ts.Node) bool {
	key := [2]int{int(n.StartByte()), int(n.EndByte())}
	if w.dedup[key] {
		return true
	}
	w.dedup[key] = true
	return false
}

// isBareDynamicImport detects a standalone `import("m");` or
// `await import("m");` expression statement (no binding).
func (w *jsWalker) isBareDynamicImport(stmt *ts.Node) bool {
	call := firstCallExpression(stmt)
	if call == nil {
		return false
	}
	fn := call.ChildByFieldName("function")
	return fn != nil && fn.Kind() == "import"
}

func firstCallExpression(stmt *ts.Node) *ts.Node {
	inner := stmt.NamedChild(0)
	return unwrapAwait(inner)
}

// countCallSideEffects counts bare `require("m");` statements that weren't
// captured as a declarator initializer.
func (w *jsWalker) countCallSideEffects(stmt *ts.Node, stats *JavaScriptStats) {
	inner := stmt.NamedChild(0)
	if inner == nil || inner.Kind() != "call_expression" {
		return
	}
	fn := inner.ChildByFieldName("function")
	if fn != nil && w.text(fn) == "require" {
		stats.RequireCount++
		w.recordRequire(inner, nil)
	}
}

// ---- legacy CommonJS assignment forms ----

// isLegacyExportAssignment reports whether stmt is `exports.x = …` or
// `module.exports = …`.
func (w *jsWalker) isLegacyExportAssignment(stmt *ts.Node) bool {
	assign := stmt.NamedChild(0)
	if assign == nil || assign.Kind() != "assignment_expression" {
		return false
	}
	left := assign.ChildByFieldName("left")
	return w.legacyExportTarget(left) != ""
}

// legacyExportTarget returns "exports"/"module.exports" for a recognized
// left-hand side, or "" otherwise.
func (w *jsWalker) legacyExportTarget(left *ts.Node) string {
	if left == nil || left.Kind() != "member_expression" {
		return ""
	}
	obj := left.ChildByFieldName("object")
	if obj == nil {
		return ""
	}
	switch obj.Kind() {
	case "identifier":
		if w.text(obj) == "exports" {
			return "exports"
		}
		if w.text(obj) == "module" && w.text(left.ChildByFieldName("property")) == "exports" {
			return "module.exports"
		}
	case "member_expression":
		if w.text(obj.ChildByFieldName("object")) == "module" &&
			w.text(obj.ChildByFieldName("property")) == "exports" {
			return "module.exports"
		}
	}
	return ""
}

func (w *jsWalker) walkLegacyExportAssignment(stmt *ts.Node) {
	assign := stmt.NamedChild(0)
	left := assign.ChildByFieldName("left")

	switch w.legacyExportTarget(left) {
	case "exports":
		prop := left.ChildByFieldName("property")
		w.exports = append(w.exports, Export{
			Kind: Legacy, Span: spanOf(stmt),
			Symbols: []ExportedSymbol{{Kind: Value, Name: w.text(prop)}},
		})
	case "module.exports":
		// `module.exports = …` as a whole is a Default export;
		// `module.exports.x = …` (whose object is the `module.exports`
		// member_expression) is a Value export named x, checked first.
		obj := left.ChildByFieldName("object")
		if w.text(obj.ChildByFieldName("property")) == "exports" && left.ChildByFieldName("property") != nil &&
			w.text(left.ChildByFieldName("property")) != "" && obj.Kind() == "member_expression" {
			// module.exports.x = … → Value export named x.
			w.exports = append(w.exports, Export{
				Kind: Legacy, Span: spanOf(stmt),
				Symbols: []ExportedSymbol{{Kind: Value, Name: w.text(left.ChildByFieldName("property"))}},
			})
			return
		}
		w.exports = append(w.exports, Export{
			Kind: Legacy, Span: spanOf(stmt),
			Symbols: []ExportedSymbol{{Kind: Default, Name: "default"}},
		})
	}
}

// ---- small tree helpers ----

func spanOf(n *ts.Node) Span {
	return Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func firstChildOfKind(n *ts.Node, kind string) *ts.Node {
	for i := range n.ChildCount() {
		c := n.Child(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

func (w *jsWalker) hasKeywordChild(n *ts.Node, keyword string) bool {
	for i := range n.ChildCount() {
		c := n.Child(i)
		if c != nil && w.text(c) == keyword {
			return true
		}
	}
	return false
}

func lastNamedChild(n *ts.Node) *ts.Node {
	count := n.NamedChildCount()
	if count == 0 {
		return nil
	}
	return n.NamedChild(count - 1)
}

func firstNamedChild(n *ts.Node) *ts.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}
