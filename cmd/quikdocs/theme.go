package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/quikdocs/internal/app"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the theme quikdocs starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := app.ShowTheme(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			printTheme(cmd.OutOrStdout(), info)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Store a theme as your explicit choice",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := app.SetTheme(cmd.Context(), flags.options(cmd), args[0])
			if err != nil {
				return err
			}
			printTheme(cmd.OutOrStdout(), info)
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Store the opposite of the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := app.ToggleTheme(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			printTheme(cmd.OutOrStdout(), info)
			return nil
		},
	}

	themeCmd.AddCommand(setCmd, toggleCmd)
	return themeCmd
}

func printTheme(w io.Writer, info app.ThemeInfo) {
	fmt.Fprintf(w, "theme:  %s\n", info.Theme)
	fmt.Fprintf(w, "origin: %s\n", info.Origin)
	if info.HasSystem {
		source := info.System.Source
		if source == "" {
			source = "unknown"
		}
		fmt.Fprintf(w, "os:     prefers %s (%s)\n", osScheme(info.System.PrefersDark), source)
	} else {
		fmt.Fprintln(w, "os:     undetected")
	}
	fmt.Fprintf(w, "prefs:  %s\n", info.PrefsPath)
}

func osScheme(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
