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

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.bennypowers.dev/jsgraph/protocol"
)

// pnpmWorkspace is the subset of pnpm-workspace.yaml this module reads: the
// workspace package globs plus the default and named "catalog:" tables.
type pnpmWorkspace struct {
	Packages []string                     `yaml:"packages"`
	Catalog  map[string]string            `yaml:"catalog"`
	Catalogs map[string]map[string]string `yaml:"catalogs"`
}

// readPnpmWorkspace reads rootDir/pnpm-workspace.yaml. Returns nil, nil if
// the file is absent.
func readPnpmWorkspace(rootDir string) (*pnpmWorkspace, error) {
	path := filepath.Join(rootDir, "pnpm-workspace.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &FsError{Path: path, Err: err}
	}
	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, &FsError{Path: path, Err: err}
	}
	return &ws, nil
}

// pnpmCatalogs converts ws's "catalog"/"catalogs" tables into a
// protocol.Catalogs value for catalog:-protocol resolution. ws may be nil.
func pnpmCatalogs(ws *pnpmWorkspace) protocol.Catalogs {
	if ws == nil {
		return protocol.Catalogs{}
	}
	return protocol.Catalogs{Default: ws.Catalog, Named: ws.Catalogs}
}
