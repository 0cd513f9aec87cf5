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

// Package queries owns the tree-sitter grammars, pooled parsers, and
// embedded .scm query files this module parses JS/TS/TSX/CSS source with.
// It supplies the default modulegraph.JsParser and modulegraph.CssParser
// implementations; modulegraph itself never links a concrete grammar.
package queries

import (
	"embed"
	"errors"
	"fmt"
	"iter"
	"path"
	"slices"
	"sync"
	"time"

	"github.com/pterm/pterm"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsCss "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

//go:embed */*.scm
var queryFiles embed.FS

var ErrNoQueryManager = errors.New("QueryManager is nil")

type NoCaptureError struct {
	Capture string
	Query   string
}

func (e *NoCaptureError) Error() string {
	return fmt.Sprintf("no nodes for capture %s in query %s", e.Capture, e.Query)
}

var languages = struct {
	typescript *ts.Language
	tsx        *ts.Language
	css        *ts.Language
}{
	ts.NewLanguage(tsTypescript.LanguageTypescript()),
	ts.NewLanguage(tsTypescript.LanguageTSX()),
	ts.NewLanguage(tsCss.Language()),
}

// ---- Parser pooling ----
//
// Parsers are expensive to configure (grammar load) but cheap to reset, so
// they are pooled exactly as the teacher pools its HTML/CSS/TypeScript
// parsers: Get before use, Put (which Resets) when done.

var typescriptParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.typescript); err != nil {
			panic(fmt.Sprintf("failed to set TypeScript language: %v", err))
		}
		return parser
	},
}

var tsxParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.tsx); err != nil {
			panic(fmt.Sprintf("failed to set TSX language: %v", err))
		}
		return parser
	},
}

var cssParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.css); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return parser
	},
}

// GetTypeScriptParser returns a pooled TypeScript parser. Always call
// PutTypeScriptParser when done.
func GetTypeScriptParser() *ts.Parser { return typescriptParserPool.Get().(*ts.Parser) }

// PutTypeScriptParser returns a parser to the TypeScript pool.
func PutTypeScriptParser(p *ts.Parser) { p.Reset(); typescriptParserPool.Put(p) }

// GetTSXParser returns a pooled TSX parser. Always call PutTSXParser when done.
func GetTSXParser() *ts.Parser { return tsxParserPool.Get().(*ts.Parser) }

// PutTSXParser returns a parser to the TSX pool.
func PutTSXParser(p *ts.Parser) { p.Reset(); tsxParserPool.Put(p) }

// GetCSSParser returns a pooled CSS parser. Always call PutCSSParser when done.
func GetCSSParser() *ts.Parser { return cssParserPool.Get().(*ts.Parser) }

// PutCSSParser returns a parser to the CSS pool.
func PutCSSParser(p *ts.Parser) { p.Reset(); cssParserPool.Put(p) }

// ---- Query loading ----

// QuerySelector names which .scm queries to load per language. Unlike the
// teacher's HTML/JSDoc-heavy selector sets, this module only ever needs
// CSS's "composes" query — JS/TS import/export extraction walks the AST
// directly (see modulegraph/js.go), since the full node-mapping table
// (destructured dynamic imports, binding-pattern recursion, legacy
// CommonJS assignment forms, ...) doesn't reduce cleanly to capture
// groups the way a single "composes: x from y" declaration does.
type QuerySelector struct {
	CSS []string
}

// ModuleGraphQueries is the selector this module actually uses.
func ModuleGraphQueries() QuerySelector {
	return QuerySelector{CSS: []string{"composes"}}
}

type QueryManager struct {
	css map[string]*ts.Query
}

func NewQueryManager(selector QuerySelector) (*QueryManager, error) {
	start := time.Now()
	qm := &QueryManager{css: make(map[string]*ts.Query)}

	for _, name := range selector.CSS {
		if err := qm.loadQuery("css", name); err != nil {
			qm.Close()
			return nil, fmt.Errorf("failed to load CSS query %s: %w", name, err)
		}
	}

	pterm.Debug.Println("Constructing selected queries took", time.Since(start))
	return qm, nil
}

func (qm *QueryManager) loadQuery(language, queryName string) error {
	queryPath := path.Join(language, queryName+".scm")
	data, err := queryFiles.ReadFile(queryPath)
	if err != nil {
		return fmt.Errorf("failed to read query file %s: %w", queryPath, err)
	}

	var lang *ts.Language
	switch language {
	case "css":
		lang = languages.css
	default:
		return fmt.Errorf("unknown language %s", language)
	}

	query, qerr := ts.NewQuery(lang, string(data))
	if qerr != nil {
		return fmt.Errorf("failed to parse query %s: %w", queryName, qerr)
	}

	switch language {
	case "css":
		qm.css[queryName] = query
	}
	return nil
}

func (qm *QueryManager) Close() {
	for _, q := range qm.css {
		q.Close()
	}
}

func (qm *QueryManager) getQuery(queryName, language string) (*ts.Query, error) {
	var q *ts.Query
	var ok bool
	switch language {
	case "css":
		q, ok = qm.css[queryName]
	}
	if !ok {
		return nil, fmt.Errorf("unknown query %s", queryName)
	}
	return q, nil
}

type CaptureInfo struct {
	NodeId    int
	Text      string
	StartByte uint
	EndByte   uint
}

type CaptureMap = map[string][]CaptureInfo

type QueryMatcher struct {
	query  *ts.Query
	cursor *ts.QueryCursor
}

func (qm QueryMatcher) Close() { qm.cursor.Close() }

func NewQueryMatcher(manager *QueryManager, language, queryName string) (*QueryMatcher, error) {
	if manager == nil {
		return nil, ErrNoQueryManager
	}
	query, err := manager.getQuery(queryName, language)
	if err != nil {
		return nil, err
	}
	return &QueryMatcher{query, ts.NewQueryCursor()}, nil
}

func (q QueryMatcher) AllQueryMatches(node *ts.Node, text []byte) iter.Seq[*ts.QueryMatch] {
	matches := q.cursor.Matches(q.query, node, text)
	return func(yield func(*ts.QueryMatch) bool) {
		for {
			m := matches.Next()
			if m == nil {
				break
			}
			if !yield(m) {
				return
			}
		}
	}
}

// ParentCaptures groups captures under the given parentCaptureName's node,
// sorted by that parent node's start byte — used by the CSS "composes"
// query to aggregate one rule's (possibly repeated) composes directives
// into a single group.
func (q *QueryMatcher) ParentCaptures(root *ts.Node, code []byte, parentCaptureName string) iter.Seq[CaptureMap] {
	names := q.query.CaptureNames()

	type pgroup struct {
		capMap    CaptureMap
		startByte uint
	}
	parentGroups := make(map[int]pgroup)

	for match := range q.AllQueryMatches(root, code) {
		var parentNode *ts.Node
		for _, cap := range match.Captures {
			if names[cap.Index] == parentCaptureName {
				parentNode = &cap.Node
				break
			}
		}
		if parentNode == nil {
			continue
		}
		pid := int(parentNode.Id())
		if _, ok := parentGroups[pid]; !ok {
			parentGroups[pid] = pgroup{make(CaptureMap), parentNode.StartByte()}
		}
		for _, cap := range match.Captures {
			name := names[cap.Index]
			ci := CaptureInfo{
				NodeId:    int(cap.Node.Id()),
				Text:      cap.Node.Utf8Text(code),
				StartByte: cap.Node.StartByte(),
				EndByte:   cap.Node.EndByte(),
			}
			if !slices.ContainsFunc(parentGroups[pid].capMap[name], func(m CaptureInfo) bool {
				return m.NodeId == ci.NodeId
			}) {
				parentGroups[pid].capMap[name] = append(parentGroups[pid].capMap[name], ci)
			}
		}
	}

	sorted := make([]pgroup, 0, len(parentGroups))
	for _, g := range parentGroups {
		sorted = append(sorted, g)
	}
	slices.SortStableFunc(sorted, func(a, b pgroup) int { return int(a.startByte) - int(b.startByte) })

	return func(yield func(CaptureMap) bool) {
		for _, g := range sorted {
			if !yield(g.capMap) {
				return
			}
		}
	}
}

// GetDescendantById walks root looking for the node with the given
// tree-sitter node id.
func GetDescendantById(root *ts.Node, id int) *ts.Node {
	var find func(node *ts.Node) *ts.Node
	find = func(node *ts.Node) *ts.Node {
		if int(node.Id()) == id {
			return node
		}
		for i := range int(node.ChildCount()) {
			child := node.Child(uint(i))
			if child == nil {
				continue
			}
			if res := find(child); res != nil {
				return res
			}
		}
		return nil
	}
	return find(root)
}

// Position and Range convert tree-sitter byte offsets to line/character
// positions for diagnostics (span reporting).
type Position struct {
	Line      uint32
	Character uint32
}

type Range struct {
	Start Position
	End   Position
}

func byteOffsetToPosition(content []byte, offset uint) Position {
	line, char := uint32(0), uint32(0)
	for i, b := range content {
		if uint(i) >= offset {
			break
		}
		if b == '\n' {
			line++
			char = 0
		} else {
			char++
		}
	}
	return Position{Line: line, Character: char}
}

func NodeToRange(node *ts.Node, content []byte) Range {
	return Range{
		Start: byteOffsetToPosition(content, node.StartByte()),
		End:   byteOffsetToPosition(content, node.EndByte()),
	}
}

// Thread-safe singleton QueryManager, matching the teacher's
// GetGlobalQueryManager pattern.
var (
	globalQueryManager *QueryManager
	globalQueryOnce    sync.Once
	globalQueryError   error
)

func GetGlobalQueryManager() (*QueryManager, error) {
	globalQueryOnce.Do(func() {
		manager, err := NewQueryManager(ModuleGraphQueries())
		if err != nil {
			globalQueryError = err
			return
		}
		globalQueryManager = manager
	})
	if globalQueryError != nil {
		return nil, globalQueryError
	}
	if globalQueryManager == nil {
		return nil, fmt.Errorf("failed to initialize global query manager")
	}
	return globalQueryManager, nil
}

// GetCachedQueryMatcher returns a matcher over the cached (shared) query
// but with a fresh cursor — cursors are stateful and must not be shared
// across concurrent callers.
func GetCachedQueryMatcher(manager *QueryManager, language, queryName string) (*QueryMatcher, error) {
	if manager == nil {
		return nil, ErrNoQueryManager
	}
	query, err := manager.getQuery(queryName, language)
	if err != nil {
		return nil, err
	}
	return &QueryMatcher{query, ts.NewQueryCursor()}, nil
}
