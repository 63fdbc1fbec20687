package cmd

import (
	"github.com/alantheprice/cmdline/pkg/cmdline"
	"github.com/alantheprice/cmdline/pkg/configuration"
	"github.com/alantheprice/cmdline/pkg/console"
	"github.com/alantheprice/cmdline/pkg/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	promptFlag     string
	logFile        string
	noEnhancements bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmdline",
	Short: "Interactive command loop for raw-mode terminals",
	Long: `cmdline starts an interactive session with a handful of demo commands.

The line editor tracks the cursor itself, so long input wraps correctly
and the terminal is always restored on exit.

Available commands inside the session:
  simple   - print a greeting
  echo     - print the arguments back
  color    - print text in a color
  size     - show the terminal size and cursor position
  clear    - clear the screen
  help     - list commands
  quit     - leave the session (Escape and Ctrl+C work too)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cmdline/config.toml)")

	rootCmd.Flags().StringVar(&promptFlag, "prompt", "", "prompt to show, overriding the config file")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "session log file (default is $HOME/.cmdline/session.log)")
	rootCmd.Flags().BoolVar(&noEnhancements, "no-enhancements", false, "disable keyboard enhancement, mouse capture and focus reporting")
}

// configPath returns the --config value or the default location.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return configuration.DefaultPath()
}

// loadConfig reads the config file and applies command line flags on top.
func loadConfig(cmd *cobra.Command) (*configuration.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := configuration.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("prompt") {
		cfg.Prompt = promptFlag
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if noEnhancements {
		cfg.KeyboardEnhancement = false
		cfg.MouseCapture = false
		cfg.FocusReporting = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSession(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Options{Path: cfg.LogFile})
	if err != nil {
		return err
	}
	defer logger.Close()

	device := console.NewTerminalManager(cfg.Features())
	console.SetLogger(device, logger.Debug)

	profile := termenv.Ascii
	if cfg.Color {
		profile = termenv.EnvColorProfile()
	}
	session := newSession(device, cfg, logger, profile)

	if cfg.Watch {
		if stop := watchConfig(session, logger, !cmd.Flags().Changed("prompt")); stop != nil {
			defer stop()
		}
	}

	return session.Run()
}

func newSession(device console.TerminalManager, cfg *configuration.Config, logger *logging.Logger, profile termenv.Profile, opts ...cmdline.Option) *cmdline.Cmdline {
	opts = append([]cmdline.Option{
		cmdline.WithPrompt(cfg.Prompt),
		cmdline.WithLogger(logger),
		cmdline.WithProfile(profile),
		cmdline.WithResizeWindow(cfg.ResizeWindow()),
	}, opts...)

	session := cmdline.New(device, opts...)
	registerDemoCommands(session)
	return session
}

// watchConfig applies prompt changes from the config file to a running
// session. It returns a function that stops watching, or nil when the
// watcher could not be started.
func watchConfig(session *cmdline.Cmdline, logger *logging.Logger, applyPrompt bool) func() {
	path, err := configPath()
	if err != nil {
		logger.Warn("config reload disabled: %v", err)
		return nil
	}

	w, err := configuration.NewWatcher(path, func(cfg *configuration.Config) {
		logger.Info("config reloaded from %s", path)
		if applyPrompt {
			session.ChangePrompt(cfg.Prompt)
		}
	})
	if err != nil {
		logger.Warn("config reload disabled: %v", err)
		return nil
	}
	w.OnError(logger.LogError)
	if err := w.Watch(); err != nil {
		logger.Warn("config reload disabled: %v", err)
		w.Close()
		return nil
	}
	return func() { w.Close() }
}
