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

	"go.bennypowers.dev/jsgraph/tsconfig"
)

var tsconfigCmd = &cobra.Command{
	Use:   "tsconfig <path>",
	Short: "Print the resolved tsconfig.json extends chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving tsconfig path: %w", err)
		}

		chain, err := tsconfig.ResolveChain(path)
		if err != nil {
			return fmt.Errorf("resolving extends chain: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "json" {
			paths := make([]string, len(chain))
			for i, c := range chain {
				paths[i] = c.Path
			}
			data, err := json.MarshalIndent(paths, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling extends chain: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for i, c := range chain {
			pterm.Println(fmt.Sprintf("%d  %s", i, c.Path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tsconfigCmd)
}
