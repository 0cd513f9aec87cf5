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

import "fmt"

// Catalogs holds pnpm's "catalog" and "catalogs" tables from
// pnpm-workspace.yaml: the default catalog plus zero or more named ones.
// A dependency value of "catalog:" or "catalog:<name>" short-circuits
// through this table before ordinary constraint evaluation.
type Catalogs struct {
	Default map[string]string            // default "catalog:" table
	Named   map[string]map[string]string // "catalog:<name>" tables
}

// ErrUnknownCatalog is returned when a "catalog:<name>" reference names a
// catalog absent from pnpm-workspace.yaml.
var ErrUnknownCatalog = fmt.Errorf("protocol: unknown catalog")

// Resolve looks up depName's version string in the named catalog (or the
// default catalog when name is ""), returning the raw dependency-value
// string so it can be re-parsed as a VersionProtocol.
func (c Catalogs) Resolve(name, depName string) (string, error) {
	table := c.Default
	if name != "" {
		var ok bool
		table, ok = c.Named[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownCatalog, name)
		}
	}
	version, ok := table[depName]
	if !ok {
		return "", fmt.Errorf("protocol: package %q not found in catalog %q: %w", depName, name, ErrUnknownCatalog)
	}
	return version, nil
}
