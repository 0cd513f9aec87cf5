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

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// Kind tags the VersionProtocol variant. This is a closed, finite set, so a
// tagged union is used rather than an interface with dynamic dispatch, the
// same design used for ModuleGraph's Module.source.
type Kind int

const (
	KindRequirement Kind = iota
	KindVersion
	KindRange
	KindFile
	KindLink
	KindPortal
	KindWorkspace
	KindGit
	KindGitHub
	KindUrl
	KindCatalog
)

var githubShorthand = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+(#.+)?$`)

// VersionProtocol is the sum type over the npm dependency-value grammar.
type VersionProtocol struct {
	Kind Kind

	Requirement Requirement   // KindRequirement
	Version     string        // KindVersion
	Range       []Requirement // KindRange (OR-ed)
	Path        string        // KindFile, KindLink, KindPortal
	Workspace   WorkspaceProtocol

	GitProto string // KindGit, e.g. "git+ssh:"
	GitURL   string
	GitRef   string // optional, after "#"

	GitHubOwner string // KindGitHub
	GitHubRepo  string
	GitHubRef   string

	URL string // KindUrl, the raw whole string

	CatalogName string // KindCatalog, "" means the default catalog
}

// ParseVersionProtocol parses a package.json dependency value per the
// grammar in order; the first matching form wins.
func ParseVersionProtocol(s string) (VersionProtocol, error) {
	if s == "" || s == "*" {
		return VersionProtocol{Kind: KindRequirement}, nil
	}

	if proto, rest, ok := cutProto(s); ok {
		switch proto {
		case "http:", "https:":
			return VersionProtocol{Kind: KindUrl, URL: s}, nil
		case "git:", "git+ssh:", "git+http:", "git+https:", "git+file:":
			url, ref, _ := strings.Cut(rest, "#")
			return VersionProtocol{Kind: KindGit, GitProto: proto, GitURL: url, GitRef: ref}, nil
		case "file:":
			return VersionProtocol{Kind: KindFile, Path: rest}, nil
		case "link:":
			return VersionProtocol{Kind: KindLink, Path: rest}, nil
		case "portal:":
			return VersionProtocol{Kind: KindPortal, Path: rest}, nil
		case "workspace:":
			wp, err := ParseWorkspaceProtocol(rest)
			if err != nil {
				return VersionProtocol{}, err
			}
			return VersionProtocol{Kind: KindWorkspace, Workspace: wp}, nil
		case "catalog:":
			return VersionProtocol{Kind: KindCatalog, CatalogName: rest}, nil
		}
	}

	if m := githubShorthand.FindStringSubmatch(s); m != nil {
		body, ref, _ := strings.Cut(s, "#")
		owner, repo, ok := strings.Cut(body, "/")
		if ok {
			return VersionProtocol{Kind: KindGitHub, GitHubOwner: owner, GitHubRepo: repo, GitHubRef: ref}, nil
		}
	}

	if strings.Contains(s, "-") {
		if left, right, ok := cutHyphenRange(s); ok {
			left = strings.TrimSpace(left)
			right = strings.TrimSpace(right)
			if left == "" {
				return VersionProtocol{}, ErrRangeMissingStartVersion
			}
			if right == "" {
				return VersionProtocol{}, ErrRangeMissingStopVersion
			}
			req := Requirement{Comparators: []Comparator{
				{Op: ">=", Version: left},
				{Op: "<=", Version: right},
			}}
			return VersionProtocol{Kind: KindRequirement, Requirement: req}, nil
		}
	}

	if strings.Contains(s, "||") {
		parts := strings.Split(s, "||")
		reqs := make([]Requirement, 0, len(parts))
		for _, p := range parts {
			req, err := ParseRequirement(strings.TrimSpace(p))
			if err != nil {
				return VersionProtocol{}, err
			}
			reqs = append(reqs, req)
		}
		return VersionProtocol{Kind: KindRange, Range: reqs}, nil
	}

	if strings.ContainsAny(s, "^~><=") {
		req, err := ParseRequirement(s)
		if err != nil {
			return VersionProtocol{}, err
		}
		return VersionProtocol{Kind: KindRequirement, Requirement: req}, nil
	}

	if !isValidSemver(s) {
		return VersionProtocol{}, fmt.Errorf("%w: %q", ErrSemver, s)
	}
	return VersionProtocol{Kind: KindVersion, Version: s}, nil
}

// cutProto recognizes a leading "<scheme>:" prefix from the set this
// grammar understands, returning the scheme (with trailing colon) and the
// remainder.
func cutProto(s string) (proto, rest string, ok bool) {
	for _, p := range []string{
		"git+ssh:", "git+https:", "git+http:", "git+file:", "git:",
		"https:", "http:", "file:", "link:", "portal:", "workspace:", "catalog:",
	} {
		if strings.HasPrefix(s, p) {
			return p, strings.TrimPrefix(s, p), true
		}
	}
	return "", s, false
}

// cutHyphenRange splits "L - R" on the first " - " separator. A bare
// hyphen inside a prerelease tag (e.g. "1.2.3-alpha") never matches
// because it lacks surrounding spaces.
func cutHyphenRange(s string) (left, right string, ok bool) {
	left, right, ok = strings.Cut(s, " - ")
	return
}

// String renders the canonical inverse of ParseVersionProtocol.
func (v VersionProtocol) String() string {
	switch v.Kind {
	case KindRequirement:
		return v.Requirement.String()
	case KindVersion:
		return v.Version
	case KindRange:
		parts := make([]string, len(v.Range))
		for i, r := range v.Range {
			parts[i] = r.String()
		}
		return strings.Join(parts, " || ")
	case KindFile:
		return "file:" + v.Path
	case KindLink:
		return "link:" + v.Path
	case KindPortal:
		return "portal:" + v.Path
	case KindWorkspace:
		return "workspace:" + v.Workspace.String()
	case KindGit:
		s := v.GitProto + v.GitURL
		if v.GitRef != "" {
			s += "#" + v.GitRef
		}
		return s
	case KindGitHub:
		s := v.GitHubOwner + "/" + v.GitHubRepo
		if v.GitHubRef != "" {
			s += "#" + v.GitHubRef
		}
		return s
	case KindUrl:
		return v.URL
	case KindCatalog:
		return "catalog:" + v.CatalogName
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler so VersionProtocol can be used
// directly as a package.json dependency map value.
func (v VersionProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler, parsing the dependency string
// through ParseVersionProtocol.
func (v *VersionProtocol) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding version protocol: %w", err)
	}
	parsed, err := ParseVersionProtocol(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Matches reports whether this protocol value is satisfied by the given
// installed/local version string. Only Requirement, Range, and Version
// kinds carry a version constraint that can be evaluated this way; other
// kinds (File, Link, Git, ...) are resolved by path/location, not version,
// and always report false here.
func (v VersionProtocol) Matches(version string) bool {
	switch v.Kind {
	case KindRequirement:
		return v.Requirement.Matches(version)
	case KindRange:
		for _, r := range v.Range {
			if r.Matches(version) {
				return true
			}
		}
		return false
	case KindVersion:
		return canonicalize(version) == canonicalize(v.Version)
	default:
		return false
	}
}

// Comparator is a single operator+version term, e.g. "^1.2.3".
type Comparator struct {
	Op      string // one of "", "=", ">", ">=", "<", "<=", "^", "~"
	Version string
}

func (c Comparator) String() string { return c.Op + c.Version }

// Requirement is an AND-ed list of comparators (npm calls this a "simple
// range"); an empty Requirement means "*" (matches anything).
type Requirement struct {
	Comparators []Comparator
}

func (r Requirement) String() string {
	if len(r.Comparators) == 0 {
		return "*"
	}
	parts := make([]string, len(r.Comparators))
	for i, c := range r.Comparators {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether every comparator in the requirement is satisfied.
func (r Requirement) Matches(version string) bool {
	if len(r.Comparators) == 0 {
		return true
	}
	for _, c := range r.Comparators {
		if !c.matches(version) {
			return false
		}
	}
	return true
}

var comparatorOps = []string{">=", "<=", "^", "~", ">", "<", "="}

// ParseRequirement parses a single AND-ed comparator list such as
// "^1.2.3" or ">=1.2.3, <=4.5.6".
func ParseRequirement(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return Requirement{}, nil
	}
	parts := strings.Split(s, ",")
	comparators := make([]Comparator, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		c, err := parseComparator(p)
		if err != nil {
			return Requirement{}, err
		}
		comparators = append(comparators, c)
	}
	return Requirement{Comparators: comparators}, nil
}

func parseComparator(s string) (Comparator, error) {
	for _, op := range comparatorOps {
		if strings.HasPrefix(s, op) {
			version := strings.TrimSpace(strings.TrimPrefix(s, op))
			if !isValidSemver(version) {
				return Comparator{}, fmt.Errorf("%w: %q", ErrSemver, s)
			}
			return Comparator{Op: op, Version: version}, nil
		}
	}
	if !isValidSemver(s) {
		return Comparator{}, fmt.Errorf("%w: %q", ErrSemver, s)
	}
	return Comparator{Op: "", Version: s}, nil
}

func (c Comparator) matches(version string) bool {
	v := canonicalize(version)
	cv := canonicalize(c.Version)
	if v == "" || cv == "" {
		return false
	}
	switch c.Op {
	case "", "=":
		return semver.Compare(v, cv) == 0
	case ">":
		return semver.Compare(v, cv) > 0
	case ">=":
		return semver.Compare(v, cv) >= 0
	case "<":
		return semver.Compare(v, cv) < 0
	case "<=":
		return semver.Compare(v, cv) <= 0
	case "^":
		return matchesCaret(v, cv)
	case "~":
		return matchesTilde(v, cv)
	default:
		return false
	}
}

// matchesCaret implements npm's "^" semantics atop semver.Compare: allow
// changes that do not modify the left-most non-zero digit of [major, minor,
// patch].
func matchesCaret(v, base string) bool {
	if semver.Compare(v, base) < 0 {
		return false
	}
	major := semver.Major(base)
	if major != "v0" {
		return semver.Major(v) == major
	}
	majorMinor := semver.MajorMinor(base)
	baseMinor := strings.TrimPrefix(majorMinor, "v0.")
	if baseMinor != "0" {
		return semver.MajorMinor(v) == majorMinor
	}
	// ^0.0.x: only the exact patch is allowed to vary by nothing (no
	// range at all below the next patch).
	return semver.Compare(v, bumpPatch(base)) < 0
}

// matchesTilde implements npm's "~" semantics: patch-level changes if a
// minor is specified, minor-level otherwise.
func matchesTilde(v, base string) bool {
	if semver.Compare(v, base) < 0 {
		return false
	}
	if !strings.Contains(base, ".") {
		return semver.Major(v) == semver.Major(base)
	}
	return semver.Compare(v, bumpMinor(base)) < 0
}

func bumpPatch(v string) string {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	var maj, min, patch int
	fmt.Sscanf(parts[0], "%d", &maj)
	fmt.Sscanf(parts[1], "%d", &min)
	fmt.Sscanf(parts[2], "%d", &patch)
	return fmt.Sprintf("v%d.%d.%d", maj, min, patch+1)
}

func bumpMinor(v string) string {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	for len(parts) < 2 {
		parts = append(parts, "0")
	}
	var maj, min int
	fmt.Sscanf(parts[0], "%d", &maj)
	fmt.Sscanf(parts[1], "%d", &min)
	return fmt.Sprintf("v%d.%d.0", maj, min+1)
}

// isValidSemver reports whether s parses as a (possibly partial) semantic
// version, tolerant of the missing leading "v" that package.json always
// omits.
func isValidSemver(s string) bool {
	return semver.IsValid(canonicalize(s))
}

func canonicalize(s string) string {
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if !semver.IsValid(s) {
		return ""
	}
	return s
}
