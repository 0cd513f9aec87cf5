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

// Package version carries build-time identity, set via -ldflags at
// release build time and left at their zero values for `go run`/local
// builds.
package version

import "runtime"

var (
	// Version is the release tag, e.g. "v1.4.0". "dev" when unset.
	Version = "dev"
	// Commit is the short VCS commit hash the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp in RFC3339.
	Date = "unknown"
)

// BuildInfo is the structured form of version information, for
// `jsgraph version --output json` and diagnostic logging.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetVersion returns the release tag.
func GetVersion() string { return Version }

// GetBuildInfo returns the full structured build record.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
