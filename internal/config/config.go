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

// Package config is the YAML-backed configuration for the jsgraph CLI: a
// .config/jsgraph.yaml file, discovered per-package or at a monorepo
// workspace root, overlaid with flags and JSGRAPH_* environment variables
// bound through viper in cmd.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GraphConfig holds options for the `jsgraph graph` command.
type GraphConfig struct {
	// Entry module specifier to root the graph at; empty means every
	// discovered module is a root.
	Entry string `mapstructure:"entry" yaml:"entry"`
	// BarrelThreshold is the minimum export-statement count before a module
	// is flagged as a barrel file.
	BarrelThreshold int `mapstructure:"barrelThreshold" yaml:"barrelThreshold"`
	// Snapshot enables deterministic, sorted output for golden-file diffing.
	Snapshot bool `mapstructure:"snapshot" yaml:"snapshot"`
}

// PackagesConfig holds options for the `jsgraph packages` command.
type PackagesConfig struct {
	WorkingDir string `mapstructure:"workingDir" yaml:"workingDir"`
}

// JsGraphConfig is the root configuration object, unmarshaled from
// .config/jsgraph.yaml and overridable by CLI flags / JSGRAPH_* env vars.
type JsGraphConfig struct {
	ProjectDir string `mapstructure:"projectDir" yaml:"projectDir"`
	ConfigFile string `mapstructure:"configFile" yaml:"configFile"`
	// Output format: "text", "json", or "dot".
	Output  string `mapstructure:"output" yaml:"output"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
	Quiet   bool   `mapstructure:"quiet" yaml:"quiet"`
	// MaxTsconfigExtendsDepth is read from the config file and merged with
	// workspace defaults. tsconfig.ResolveChain takes no depth limit and does
	// not consult it; extends cycles are caught only by its visited-path set.
	MaxTsconfigExtendsDepth int            `mapstructure:"maxTsconfigExtendsDepth" yaml:"maxTsconfigExtendsDepth"`
	Graph                   GraphConfig    `mapstructure:"graph" yaml:"graph"`
	Packages                PackagesConfig `mapstructure:"packages" yaml:"packages"`
}

// Clone returns a copy safe for a subcommand to mutate without affecting
// the global config.
func (c *JsGraphConfig) Clone() *JsGraphConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Graph.Entry != "" {
		clone.Graph.Entry = c.Graph.Entry
	}
	return &clone
}

// Default returns a JsGraphConfig with the documented defaults applied.
func Default() *JsGraphConfig {
	return &JsGraphConfig{
		Output:                  "text",
		MaxTsconfigExtendsDepth: 32,
		Graph:                   GraphConfig{BarrelThreshold: 3},
	}
}

type packageJSON struct {
	Workspaces json.RawMessage `json:"workspaces"`
}

// findWorkspaceRoot walks upward from startDir looking for a package.json
// carrying a "workspaces" field, stopping at a .git boundary.
func findWorkspaceRoot(startDir string) string {
	dir := startDir
	for {
		pkgPath := filepath.Join(dir, "package.json")
		if data, err := os.ReadFile(pkgPath); err == nil {
			var pkg packageJSON
			if err := json.Unmarshal(data, &pkg); err == nil && len(pkg.Workspaces) > 0 {
				return dir
			}
		}

		if stat, err := os.Stat(filepath.Join(dir, ".git")); err == nil && stat.IsDir() {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadWorkspaceConfig loads .config/jsgraph.yaml from the workspace root
// above packageDir, if one exists. Returns nil, nil when packageDir isn't
// part of a workspace, or the workspace carries no config file.
func LoadWorkspaceConfig(packageDir string) (*JsGraphConfig, error) {
	workspaceRoot := findWorkspaceRoot(packageDir)
	if workspaceRoot == "" {
		return nil, nil
	}

	configPath := filepath.Join(workspaceRoot, ".config", "jsgraph.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.ProjectDir = workspaceRoot
	cfg.ConfigFile = configPath
	return cfg, nil
}

// LoadPackageConfigWithWorkspaceDefaults loads the config at packageDir,
// falling back to a workspace-root config for Graph.BarrelThreshold,
// MaxTsconfigExtendsDepth and Output when the package config leaves them at
// their defaults. No other field is taken from the workspace config.
func LoadPackageConfigWithWorkspaceDefaults(packageDir string) (*JsGraphConfig, error) {
	workspaceConfig, err := LoadWorkspaceConfig(packageDir)
	if err != nil {
		return nil, err
	}

	packageConfig := Default()
	packageConfig.ProjectDir = packageDir
	packageConfig.ConfigFile = filepath.Join(packageDir, ".config", "jsgraph.yaml")

	if _, err := os.Stat(packageConfig.ConfigFile); err == nil {
		data, err := os.ReadFile(packageConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, packageConfig); err != nil {
			return nil, err
		}
	}

	if workspaceConfig == nil {
		return packageConfig, nil
	}

	if packageConfig.Graph.BarrelThreshold == Default().Graph.BarrelThreshold &&
		workspaceConfig.Graph.BarrelThreshold != 0 {
		packageConfig.Graph.BarrelThreshold = workspaceConfig.Graph.BarrelThreshold
	}
	if packageConfig.MaxTsconfigExtendsDepth == Default().MaxTsconfigExtendsDepth &&
		workspaceConfig.MaxTsconfigExtendsDepth != 0 {
		packageConfig.MaxTsconfigExtendsDepth = workspaceConfig.MaxTsconfigExtendsDepth
	}
	if packageConfig.Output == Default().Output && workspaceConfig.Output != Default().Output {
		packageConfig.Output = workspaceConfig.Output
	}

	return packageConfig, nil
}
