package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newthinker/lmt/internal/catalog"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range catalog.All() {
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			if len(m.Aliases) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Alias: %s\n", m.Aliases[0])
			} else if len(m.Aliases) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Aliases: %s\n", strings.Join(m.Aliases, ", "))
			}
			if m.InputPerMillion > 0 || m.OutputPerMillion > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Price: $%.2f/1M input, $%.2f/1M output\n",
					m.InputPerMillion, m.OutputPerMillion)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
