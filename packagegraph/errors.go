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

package packagegraph

import "fmt"

// MissingPackageNameError is raised when a workspace package's manifest has
// no "name" field. The root package is exempt when workspaces are enabled.
type MissingPackageNameError struct {
	Dir string
}

func (e *MissingPackageNameError) Error() string {
	return fmt.Sprintf("package at %s has no name", e.Dir)
}

// UnknownPackageError is raised by DependenciesOf/DependentsOf for a name
// absent from the graph.
type UnknownPackageError struct {
	Name string
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("unknown package: %s", e.Name)
}

// FsError wraps a filesystem failure encountered during discovery or
// package loading.
type FsError struct {
	Path string
	Err  error
}

func (e *FsError) Error() string { return fmt.Sprintf("fs %s: %v", e.Path, e.Err) }
func (e *FsError) Unwrap() error { return e.Err }
