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
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"go.bennypowers.dev/jsgraph/packagegraph"
)

var packagesCmd = &cobra.Command{
	Use:   "packages [dir]",
	Short: "Discover the workspace and print its package dependency graph",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workingDir := "."
		if len(args) == 1 {
			workingDir = args[0]
		} else if cwd, err := os.Getwd(); err == nil {
			workingDir = cwd
		}

		graph, err := packagegraph.Generate(workingDir)
		if err != nil {
			return fmt.Errorf("building package graph: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		return printPackageGraph(graph, output)
	},
}

func printPackageGraph(graph *packagegraph.PackageGraph, output string) error {
	switch output {
	case "dot":
		fmt.Println(graph.ToDot())
	case "json":
		type packageView struct {
			Index int    `json:"index"`
			Name  string `json:"name"`
			Dir   string `json:"dir"`
		}
		views := make([]packageView, 0, len(graph.Packages()))
		for _, p := range graph.Packages() {
			views = append(views, packageView{Index: p.Index, Name: p.Name, Dir: p.Dir})
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling package graph: %w", err)
		}
		fmt.Println(string(data))
	default:
		pterm.Printf("package manager: %s\n", graph.Manager)
		for _, p := range graph.Packages() {
			pterm.Println(fmt.Sprintf("%d  %s  %s", p.Index, p.Name, p.Dir))
		}
		for _, e := range graph.Edges() {
			from := graph.Packages()[e.From]
			to := graph.Packages()[e.To]
			pterm.Println(fmt.Sprintf("  %s -[%s]-> %s", from.Name, e.Type, to.Name))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(packagesCmd)
}
