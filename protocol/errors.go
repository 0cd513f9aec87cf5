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

// Package protocol parses and displays the npm VersionProtocol and
// WorkspaceProtocol grammars used in package.json dependency fields.
package protocol

import "errors"

var (
	// ErrRangeMissingStartVersion is returned when a hyphen range has no
	// left-hand version, e.g. " - 1.2.3".
	ErrRangeMissingStartVersion = errors.New("protocol: hyphen range missing start version")
	// ErrRangeMissingStopVersion is returned when a hyphen range has no
	// right-hand version, e.g. "1.2.3 - ".
	ErrRangeMissingStopVersion = errors.New("protocol: hyphen range missing stop version")
	// ErrStarNoVersion is returned when a workspace:* specifier carries a
	// trailing suffix, which the grammar forbids.
	ErrStarNoVersion = errors.New("protocol: workspace \"*\" must not be followed by a version")
	// ErrSemver wraps any malformed version text encountered while parsing
	// a comparator or a bare version.
	ErrSemver = errors.New("protocol: invalid semver")
)
