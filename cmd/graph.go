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

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"go.bennypowers.dev/jsgraph/internal/config"
	"go.bennypowers.dev/jsgraph/modulegraph"
	"go.bennypowers.dev/jsgraph/queries"
	"go.bennypowers.dev/jsgraph/resolve"
)

var graphCmd = &cobra.Command{
	Use:   "graph <entry>",
	Short: "Build and print the module graph rooted at an entry file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving entry path: %w", err)
		}

		snapshot, _ := cmd.Flags().GetBool("snapshot")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.LoadPackageConfigWithWorkspaceDefaults(filepath.Dir(entry))
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Graph.Snapshot {
			snapshot = true
		}

		builder := modulegraph.New(modulegraph.Options{
			Resolver:        resolve.New(),
			JsParser:        queries.NewTreeSitterJsParser(),
			CssParser:       queries.NewCssModulesParser(),
			Snapshot:        snapshot,
			BarrelThreshold: cfg.Graph.BarrelThreshold,
		})

		if _, err := builder.LoadModule(filepath.Dir(entry), "./"+filepath.Base(entry)); err != nil {
			return fmt.Errorf("loading %s: %w", entry, err)
		}

		return printModuleGraph(builder.Graph, output)
	},
}

func printModuleGraph(graph *modulegraph.ModuleGraph, output string) error {
	switch output {
	case "dot":
		fmt.Println(graph.ToDot())
	case "json":
		type moduleView struct {
			ID   modulegraph.ModuleID `json:"id"`
			Path string                `json:"path"`
		}
		views := make([]moduleView, 0, graph.Len())
		for _, m := range graph.Modules() {
			views = append(views, moduleView{ID: m.ID, Path: m.Path})
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling module graph: %w", err)
		}
		fmt.Println(string(data))
	default:
		for _, m := range graph.Modules() {
			pterm.Println(fmt.Sprintf("%d  %s", m.ID, m.Path))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("snapshot", false, "sort imports/exports deterministically for diffing")
}
