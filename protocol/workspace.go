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

package protocol

import "strings"

// WorkspaceKind tags the WorkspaceProtocol variant.
type WorkspaceKind int

const (
	WorkspaceAny WorkspaceKind = iota
	WorkspaceTilde
	WorkspaceCaret
	WorkspaceFile
	WorkspaceVersion
)

// WorkspaceProtocol is the sum type behind the "workspace:" dependency
// protocol: Any{alias?} | Tilde{alias?, version?} | Caret{alias?, version?}
// | File(path) | Version(version).
type WorkspaceProtocol struct {
	Kind    WorkspaceKind
	Alias   string
	Version string
	Path    string
}

// ParseWorkspaceProtocol parses the remainder of a "workspace:" specifier
// (i.e. everything after the "workspace:" prefix has already been
// stripped by ParseVersionProtocol, or the whole string when called
// directly).
func ParseWorkspaceProtocol(s string) (WorkspaceProtocol, error) {
	alias, rest := splitWorkspaceAlias(s)

	switch {
	case rest == "*":
		return WorkspaceProtocol{Kind: WorkspaceAny, Alias: alias}, nil
	case strings.HasPrefix(rest, "*"):
		return WorkspaceProtocol{}, ErrStarNoVersion
	case strings.HasPrefix(rest, "^"):
		return WorkspaceProtocol{Kind: WorkspaceCaret, Alias: alias, Version: rest[1:]}, nil
	case strings.HasPrefix(rest, "~"):
		return WorkspaceProtocol{Kind: WorkspaceTilde, Alias: alias, Version: rest[1:]}, nil
	case strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "/"):
		return WorkspaceProtocol{Kind: WorkspaceFile, Alias: alias, Path: rest}, nil
	default:
		return WorkspaceProtocol{Kind: WorkspaceVersion, Alias: alias, Version: rest}, nil
	}
}

// splitWorkspaceAlias strips a leading "<alias>@" prefix, searching for the
// first "@" after the first character so that scoped package names like
// "@scope/pkg@^1.0.0" keep "@scope/pkg" as the alias rather than splitting
// on their own leading "@".
func splitWorkspaceAlias(s string) (alias, rest string) {
	if s == "" {
		return "", s
	}
	if idx := strings.Index(s[1:], "@"); idx >= 0 {
		return s[:idx+1], s[idx+2:]
	}
	return "", s
}

// String renders the canonical inverse of ParseWorkspaceProtocol, without
// the "workspace:" prefix (VersionProtocol.String adds that).
func (w WorkspaceProtocol) String() string {
	var b strings.Builder
	if w.Alias != "" {
		b.WriteString(w.Alias)
		b.WriteByte('@')
	}
	switch w.Kind {
	case WorkspaceAny:
		b.WriteByte('*')
	case WorkspaceTilde:
		b.WriteByte('~')
		b.WriteString(w.Version)
	case WorkspaceCaret:
		b.WriteByte('^')
		b.WriteString(w.Version)
	case WorkspaceFile:
		b.WriteString(w.Path)
	case WorkspaceVersion:
		b.WriteString(w.Version)
	}
	return b.String()
}
