package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/quikdocs/internal/app"
)

type rootFlags struct {
	configPath   string
	prefsPath    string
	followSystem bool
	poll         time.Duration
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "quikdocs",
		Short: "Browse the Quik CSS documentation in the terminal",
		Long: `quikdocs renders the Quik CSS documentation catalog in a terminal UI
with a light/dark theme that follows your OS preference until you pick one.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(cmd))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/quikdocs/config.toml)")
	cmd.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file path (overrides prefs_path)")
	cmd.Flags().BoolVar(&flags.followSystem, "follow-system", false, "let OS color-scheme changes override an explicit choice")
	cmd.Flags().DurationVar(&flags.poll, "poll", 0, "OS color-scheme poll interval (overrides system_poll_interval)")

	cmd.AddCommand(newThemeCmd(&flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// options maps flags to app options. Unset flags leave config values alone.
func (f *rootFlags) options(cmd *cobra.Command) app.Options {
	opts := app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		PollEvery:  f.poll,
	}
	if flag := cmd.Flags().Lookup("follow-system"); flag != nil && flag.Changed {
		follow := f.followSystem
		opts.FollowSystem = &follow
	}
	return opts
}
