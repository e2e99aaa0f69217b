package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgDir string
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:   "lmt [prompt...]",
	Short: "lmt - Language Models Terminal",
	Long: `lmt sends prompts to large-language-model APIs and renders the
streamed response in your terminal, with reusable prompt templates,
token-cost estimation, and syntax-highlighted markdown output.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runPrompt,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "", "config directory (default ~/.config/lmt)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
