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

import "fmt"

// FsError wraps any read/metadata failure on a file the builder chose to
// open.
type FsError struct {
	Path string
	Err  error
}

func (e *FsError) Error() string { return fmt.Sprintf("fs %s: %v", e.Path, e.Err) }
func (e *FsError) Unwrap() error { return e.Err }

// ParseError wraps a structured parse failure from one of the per-kind
// extractors, including the offending path.
type ParseError struct {
	Kind string // "js", "css", "json", "yaml"
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// JsPanickedError is raised when the JS parser returns no result and no
// errors — distinct from ParseError because it indicates a parser bug or
// an unsupported syntax frontier rather than a diagnosable syntax error.
type JsPanickedError struct {
	Path string
}

func (e *JsPanickedError) Error() string {
	return fmt.Sprintf("js %s: parser panicked without producing a result", e.Path)
}

// UnsupportedFileTypeError is raised when no extractor matches an
// extension and the media fallback also rejects it.
type UnsupportedFileTypeError struct {
	Path string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Path)
}
