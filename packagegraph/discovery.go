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
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"go.bennypowers.dev/jsgraph/manifest"
)

// findRoot walks parents of workingDir, returning the first directory
// carrying a package-manager marker, tagged with the inferred manager.
// Falls back to workingDir tagged Npm when nothing matches.
func findRoot(workingDir string) (string, PackageManager) {
	dir := workingDir
	for {
		if fileExists(filepath.Join(dir, "bun.lockb")) {
			return dir, Bun
		}
		if fileExists(filepath.Join(dir, "pnpm-lock.yaml")) || fileExists(filepath.Join(dir, "pnpm-workspace.yaml")) {
			return dir, Pnpm
		}
		if fileExists(filepath.Join(dir, "yarn.lock")) {
			if dirExists(filepath.Join(dir, ".yarn")) || fileExists(filepath.Join(dir, ".yarnrc.yml")) {
				return dir, Yarn
			}
			return dir, YarnLegacy
		}
		if fileExists(filepath.Join(dir, "package-lock.json")) || fileExists(filepath.Join(dir, "npm-shrinkwrap.json")) {
			return dir, Npm
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return workingDir, Npm
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

func dirExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// workspaceGlobs returns the configured workspace package globs: ws's
// "packages" array when manager is Pnpm and ws declares one, otherwise the
// root manifest's "workspaces" field (plain list or {packages, nohoist?}).
func workspaceGlobs(manager PackageManager, rootPkg *manifest.PackageJSON, ws *pnpmWorkspace) []string {
	if manager == Pnpm && ws != nil && ws.Packages != nil {
		return ws.Packages
	}
	return manifest.WorkspaceGlobs(rootPkg)
}

// loadPackages expands globs against rootDir, deterministically sorts the
// resulting package directories, and loads each package.json. Index 0 is
// always rootDir itself.
func loadPackages(rootDir string, globs []string) ([]*Package, error) {
	rootManifest, err := manifest.LoadPackageJSON(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return nil, &FsError{Path: rootDir, Err: err}
	}
	root := &Package{Index: 0, Dir: filepath.Clean(rootDir), Name: rootManifest.Name, Manifest: rootManifest}
	packages := []*Package{root}

	if len(globs) == 0 {
		return packages, nil
	}

	dirSet := map[string]bool{}
	for _, pattern := range globs {
		matches, err := doublestar.FilepathGlob(filepath.Join(rootDir, pattern, "package.json"))
		if err != nil {
			return nil, &FsError{Path: pattern, Err: err}
		}
		for _, m := range matches {
			dirSet[filepath.Clean(filepath.Dir(m))] = true
		}
	}
	delete(dirSet, root.Dir)

	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	for i, dir := range dirs {
		pkg, err := manifest.LoadPackageJSON(filepath.Join(dir, "package.json"))
		if err != nil {
			return nil, &FsError{Path: dir, Err: err}
		}
		if pkg.Name == "" {
			return nil, &MissingPackageNameError{Dir: dir}
		}
		packages = append(packages, &Package{Index: i + 1, Dir: dir, Name: pkg.Name, Manifest: pkg})
	}

	return packages, nil
}
