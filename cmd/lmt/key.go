package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newthinker/lmt/internal/config"
)

var keyProvider string

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the API keys",
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set an API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir(cfgDir)
		if err != nil {
			return err
		}
		if config.HasAPIKey(dir, keyProvider) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s A %s API key already exists.\n",
				color.RedString("Error:"), keyProvider)
			fmt.Fprintf(cmd.OutOrStdout(), "Use %s to replace it.\n", color.BlueString("lmt key edit"))
			return nil
		}
		return promptAndStoreKey(cmd, dir, "added")
	},
}

var keyEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Replace an API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir(cfgDir)
		if err != nil {
			return err
		}
		return promptAndStoreKey(cmd, dir, "updated")
	},
}

func promptAndStoreKey(cmd *cobra.Command, dir, verb string) error {
	key, err := readSecret(cmd, fmt.Sprintf("Your %s API key: ", keyProvider))
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("empty API key")
	}
	if err := config.SetAPIKey(dir, keyProvider, key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s API key %s.\n", color.GreenString("Success!"), verb)
	fmt.Fprintf(cmd.OutOrStdout(), "The key is stored in %s.\n", dir)
	return nil
}

// readSecret reads a key without echoing it when attached to a
// terminal, falling back to a plain line read otherwise.
func readSecret(cmd *cobra.Command, promptText string) (string, error) {
	fmt.Fprint(os.Stderr, promptText)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	keyCmd.PersistentFlags().StringVar(&keyProvider, "provider", "openai", "provider the key belongs to (openai, claude)")
	keyCmd.AddCommand(keySetCmd, keyEditCmd)
	rootCmd.AddCommand(keyCmd)
}
