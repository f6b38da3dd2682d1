// Package cli implements the termtune command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/termtune/internal/app"
	"github.com/tejashwikalptaru/termtune/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	mockAudio bool

	cfg       *config.Config
	cfgSource string
)

var rootCmd = &cobra.Command{
	Use:   "termtune",
	Short: "Play your music library from the terminal",
	Long: `termtune browses a local music library by folder, album, artist, genre and year,
and plays it with a queue you can extend while listening.

Keyboard shortcuts:
  ↑/k ↓/j      Move
  Enter        Select
  Esc          Back
  Space        Play/Pause
  s            Stop
  n            Next track
  p            Previous track (restarts short tracks)
  ?            Help
  q, Ctrl+C    Quit`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE:         runPlayer,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.termtunerc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&mockAudio, "mock-audio", false, "use a silent audio engine")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
		cfgSource = cfgFile
	} else {
		cfg, cfgSource, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// newApplication builds the application from the loaded configuration.
func newApplication(opts app.Config) (*app.Application, error) {
	opts.Settings = cfg
	opts.Source = cfgSource
	opts.Verbose = verbose
	opts.UseMockAudio = opts.UseMockAudio || mockAudio
	return app.NewApplication(opts)
}

func runPlayer(cmd *cobra.Command, args []string) error {
	// The UI owns the terminal; logs only go to log.file.
	application, err := newApplication(app.Config{})
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
