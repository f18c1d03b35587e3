package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/csheth/cutout/internal/bridge"
	"github.com/csheth/cutout/internal/config"
	"github.com/csheth/cutout/internal/logging"
	"github.com/csheth/cutout/internal/prefs"
	"github.com/csheth/cutout/internal/tui"
	"github.com/csheth/cutout/internal/uistate"
)

type rootOptions struct {
	configFile  string
	noAltScreen bool
	noMouse     bool
}

// session is what every command needs once flags and config are resolved.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

func (r *session) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *session) prefsStore() *prefs.FileStore {
	path := r.cfg.Prefs.Path
	if path == "" {
		path = prefs.DefaultPath()
	}
	return prefs.NewFileStore(path)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	loader := config.NewLoader()

	root := &cobra.Command{
		Use:           "cutout",
		Short:         "Terminal front-end for a background removal host",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, loader, opts)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runUI(cmd, rt)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/cutout/config.toml)")
	flags.String("host", "", "host base URL, e.g. http://127.0.0.1:8765")
	flags.String("log-file", "", `log destination ("-" for stderr)`)
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("prefs", "", "preferences file")
	root.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	root.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse click targets")

	for key, name := range map[string]string{
		"host.url":      "host",
		"logging.file":  "log-file",
		"logging.level": "log-level",
		"prefs.path":    "prefs",
	} {
		if err := loader.BindFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newThemeCmd(loader, opts))
	root.AddCommand(newVersionCmd())
	return root
}

func setup(cmd *cobra.Command, loader *config.Loader, opts *rootOptions) (*session, error) {
	if opts.configFile != "" {
		loader.SetConfigFile(opts.configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if opts.noAltScreen {
		cfg.UI.AltScreen = false
	}
	if opts.noMouse {
		cfg.UI.Mouse = false
	}

	log, closer, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return nil, err
	}
	log = log.With().Str("command", cmd.Name()).Logger()
	if used := loader.ConfigFileUsed(); used != "" {
		log.Debug().Str("path", used).Msg("loaded config file")
	}
	return &session{cfg: cfg, log: log, closer: closer}, nil
}

func runUI(cmd *cobra.Command, rt *session) error {
	cfg := rt.cfg
	api, err := bridge.NewClient(bridge.Config{
		Endpoint: cfg.Host.URL,
		Timeout:  cfg.Host.Timeout,
		Logger:   &rt.log,
	})
	if err != nil {
		return err
	}
	controller := uistate.NewController(rt.prefsStore(), rt.log)

	model := tui.New(tui.Config{
		API:             api,
		Controller:      controller,
		Logger:          rt.log,
		HostURL:         api.Endpoint(),
		NotificationTTL: cfg.UI.NotificationTTL,
		WelcomeDelay:    cfg.UI.WelcomeDelay,
		ReconnectDelay:  cfg.Host.ReconnectDelay,
		ExportDir:       cfg.Export.Dir,
		Mouse:           cfg.UI.Mouse,
	})

	programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	rt.log.Info().Str("host", api.Endpoint()).Msg("starting ui")
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	rt.log.Info().Msg("ui exited")
	return nil
}
