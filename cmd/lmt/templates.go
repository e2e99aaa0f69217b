package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/newthinker/lmt/internal/config"
	"github.com/newthinker/lmt/internal/template"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the prompt templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var templatesViewCmd = &cobra.Command{
	Use:   "view <template>",
	Short: "View a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}
		raw, err := store.Raw(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), raw)
		return nil
	},
}

var templatesAddCmd = &cobra.Command{
	Use:   "add <template>",
	Short: "Create a new template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}
		if err := store.Add(args[0]); err != nil {
			if errors.Is(err, template.ErrUnchanged) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s The template was not created because no changes were made.\n",
					color.RedString("Aborting:"))
				return nil
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Template %s created.\n",
			color.GreenString("Success!"), color.GreenString(args[0]))
		return nil
	},
}

var templatesEditCmd = &cobra.Command{
	Use:   "edit <template>",
	Short: "Edit a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}
		if err := store.Edit(args[0]); err != nil {
			if errors.Is(err, template.ErrUnchanged) {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes were made.")
				return nil
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Template %s was updated.\n",
			color.GreenString("Success!"), color.GreenString(args[0]))
		return nil
	},
}

var templatesRemoveCmd = &cobra.Command{
	Use:     "remove <template>",
	Aliases: []string{"delete"},
	Short:   "Remove a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Template %s deleted.\n",
			color.GreenString("Success!"), color.BlueString(args[0]))
		return nil
	},
}

var templatesRenameCmd = &cobra.Command{
	Use:   "rename <template> <new-name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}
		if err := store.Rename(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Template %s renamed to %s.\n",
			color.GreenString("Success!"), color.BlueString(args[0]), color.GreenString(args[1]))
		return nil
	},
}

func templateStore() (*template.Store, error) {
	dir, err := config.Dir(cfgDir)
	if err != nil {
		return nil, err
	}
	tplDir, err := config.TemplatesDir(dir)
	if err != nil {
		return nil, err
	}
	return template.NewStore(tplDir), nil
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesViewCmd, templatesAddCmd,
		templatesEditCmd, templatesRemoveCmd, templatesRenameCmd)
	rootCmd.AddCommand(templatesCmd)
}
