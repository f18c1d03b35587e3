package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/cutout/internal/config"
	"github.com/csheth/cutout/internal/uistate"
)

func newThemeCmd(loader *config.Loader, opts *rootOptions) *cobra.Command {
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the active theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, loader, opts, func(c *uistate.Controller) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Theme())
				return err
			})
		},
	}
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the persisted theme",
		Args:  cobra.NoArgs,
		RunE:  get.RunE,
	}
	cmd.AddCommand(get)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Persist a theme for the next start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, loader, opts, func(c *uistate.Controller) error {
				if err := c.SetTheme(args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", c.Theme())
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, loader, opts, func(c *uistate.Controller) error {
				out := cmd.OutOrStdout()
				for _, name := range uistate.ThemeNames() {
					marker := " "
					if name == c.Theme() {
						marker = "*"
					}
					if _, err := fmt.Fprintf(out, "%s %s\n", marker, name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})

	return cmd
}

func withController(cmd *cobra.Command, loader *config.Loader, opts *rootOptions, fn func(*uistate.Controller) error) error {
	s, err := setup(cmd, loader, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(uistate.NewController(s.prefsStore(), s.log))
}
