package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dhanuzh/dbexplorer/internal/config"
	"github.com/Dhanuzh/dbexplorer/internal/cssroot"
	"github.com/Dhanuzh/dbexplorer/internal/logging"
	"github.com/Dhanuzh/dbexplorer/internal/server"
	"github.com/Dhanuzh/dbexplorer/internal/store"
	"github.com/Dhanuzh/dbexplorer/internal/theme"
	"github.com/Dhanuzh/dbexplorer/internal/themectl"
	"github.com/Dhanuzh/dbexplorer/internal/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbexplorer",
		Short: "dbexplorer - theme engine for the database explorer UI",
		Long: `dbexplorer manages the color theme of the database explorer UI.
It keeps the selected theme and light/dark mode, derives the CSS custom
properties the UI reads, and serves them over HTTP.`,
		RunE:          runPicker,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags
	rootCmd.PersistentFlags().String("storage", "", "Selection storage driver (file, sqlite, memory)")
	rootCmd.PersistentFlags().String("storage-path", "", "Path of the selection file or database")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (console, json)")

	// Sub-commands
	rootCmd.AddCommand(
		serveCmd(),
		themeCmd(),
		configCmd(),
		completionCmd(),
		versionCmd(),
	)
	return rootCmd
}

// runPicker is the default command - opens the theme picker
func runPicker(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	res, err := tui.Run(cmd.Context(), env.ctl)
	if err != nil {
		return err
	}
	if res.Confirmed {
		def := env.ctl.Registry().Resolve(res.ThemeKey)
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s (%s, %s mode)\n", def.DisplayName, def.Key, res.Mode)
	}
	return nil
}

// ---------------------------------------------------------------------------
// serve command
// ---------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server exposing the theme selection, the derived variables and a stylesheet.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			if cmd.Flags().Changed("port") {
				env.cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if h, _ := cmd.Flags().GetString("hostname"); h != "" {
				env.cfg.Server.Hostname = h
			}

			srv := server.New(env.cfg, env.ctl,
				server.WithLogger(env.logger),
				server.WithVersion(version),
			)

			// Handle shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				env.logger.Info().Msg("shutting down server")
				if err := srv.Stop(); err != nil {
					env.logger.Error().Err(err).Msg("shutdown failed")
				}
			}()

			return srv.Start()
		},
	}
	cmd.Flags().IntP("port", "P", 5174, "Port to listen on")
	cmd.Flags().String("hostname", "", "Hostname to listen on")
	return cmd
}

// ---------------------------------------------------------------------------
// config command
// ---------------------------------------------------------------------------

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or update configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cfg.String())
			if f := cfg.ConfigFile(); f != "" {
				fmt.Fprintf(out, "\nLoaded from %s\n", f)
			}
			return nil
		},
	}

	cmd.AddCommand(
		show,
		&cobra.Command{
			Use:   "set [key] [value]",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				path := config.DefaultConfigPath()
				if err := cfg.SaveConfig(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s = %s to %s\n", args[0], args[1], path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "precedence",
			Short: "Explain where configuration comes from",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprint(cmd.OutOrStdout(), config.GetConfigPrecedence())
			},
		},
	)

	// Default to show
	cmd.RunE = show.RunE

	return cmd
}

func completionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootCmd := cmd.Root()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
}

// ---------------------------------------------------------------------------
// version command
// ---------------------------------------------------------------------------

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dbexplorer version %s (%s)\n", version, commit)
			fmt.Fprintf(out, "go version %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// ---------------------------------------------------------------------------
// Helper functions
// ---------------------------------------------------------------------------

// environment is everything a theme command needs.
type environment struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  store.Store
	ctl    *themectl.Controller
}

func (e *environment) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn().Err(err).Msg("failed to close selection store")
	}
}

// loadConfig loads and validates the config with command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if d, _ := flags.GetString("storage"); d != "" {
		if d != cfg.Storage.Driver && !flags.Changed("storage-path") {
			// The configured path belongs to the configured driver.
			cfg.Storage.Path = ""
		}
		cfg.Storage.Driver = d
	}
	if p, _ := flags.GetString("storage-path"); p != "" {
		cfg.Storage.Path = p
	}
	if l, _ := flags.GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	if f, _ := flags.GetString("log-format"); f != "" {
		cfg.LogFormat = f
	}
	cfg.ApplyDefaults()
}

// setup loads config, opens the store and initializes the controller.
func setup(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		// An unreadable selection store must not keep the app from starting.
		logger.Warn().
			Err(err).
			Str("driver", cfg.Storage.Driver).
			Str("path", cfg.Storage.Path).
			Msg("failed to open selection store, selection will not be saved")
		st = store.NewMemory()
	}

	ctl := themectl.New(theme.NewRegistry(), st, cssroot.New(), themectl.WithLogger(logger))
	if err := ctl.Initialize(ctx); err != nil {
		st.Close()
		return nil, err
	}

	logger.Debug().
		Str("driver", cfg.Storage.Driver).
		Str("path", cfg.Storage.Path).
		Msg("theme controller ready")

	return &environment{cfg: cfg, logger: logger, store: st, ctl: ctl}, nil
}
