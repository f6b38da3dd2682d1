// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tejashwikalptaru/termtune/internal/adapter/audio/beep"
	"github.com/tejashwikalptaru/termtune/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/termtune/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/termtune/internal/adapter/tags/cache"
	"github.com/tejashwikalptaru/termtune/internal/adapter/tags/dhowden"
	"github.com/tejashwikalptaru/termtune/internal/adapter/ui/tui"
	"github.com/tejashwikalptaru/termtune/internal/config"
	"github.com/tejashwikalptaru/termtune/internal/logger"
	"github.com/tejashwikalptaru/termtune/internal/navigation"
	"github.com/tejashwikalptaru/termtune/internal/ports"
	"github.com/tejashwikalptaru/termtune/internal/service"
)

// TagCacheSize bounds the number of files whose tags are kept in memory.
const TagCacheSize = 4096

// Application is the root application structure that holds all dependencies.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for the CLI
type Application struct {
	// Core dependencies
	logger   *slog.Logger
	settings *config.Config
	source   string
	logFile  io.Closer

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	tagReader   *cache.Reader

	// Services
	libraryService  *service.LibraryService
	playbackService *service.PlaybackService

	// UI
	navigator *navigation.Navigator

	closed bool
}

// Config holds application configuration.
type Config struct {
	// Settings is the loaded configuration file; nil means defaults.
	Settings *config.Config

	// Source names where Settings came from, for display.
	Source string

	// UseMockAudio selects the in-memory audio engine instead of the speaker.
	UseMockAudio bool

	// Verbose forces debug logging.
	Verbose bool

	// LogOutput receives logs when no log file is configured; nil discards them.
	LogOutput io.Writer
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	return Config{
		Settings: config.Default(),
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(cfg Config) (*Application, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		settings: cfg.Settings,
		source:   cfg.Source,
	}

	// Step 1: Create logger
	if err := app.initLogger(cfg); err != nil {
		return nil, err
	}
	app.logger.Info("initializing application",
		slog.String("version", GetVersionInfo().FullString()),
		slog.String("config", app.ConfigSource()))

	// Step 2: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus(app.logger)

	// Step 3: Create an audio engine
	app.audioEngine = app.newAudioEngine(cfg.UseMockAudio)

	// Step 4: Create the tag reader
	reader, err := cache.New(dhowden.NewReader(app.logger), TagCacheSize)
	if err != nil {
		app.closeLog()
		return nil, fmt.Errorf("failed to create tag cache: %w", err)
	}
	app.tagReader = reader

	// Step 5: Create services (with dependency injection)
	lib := cfg.Settings.Library
	app.libraryService = service.NewLibraryService(
		app.logger.With(slog.String("service", "library")),
		app.tagReader,
		app.eventBus,
		service.LibraryOptions{
			MusicDir:        lib.MusicDir,
			PlaylistDir:     lib.PlaylistDir,
			MusicFormats:    lib.MusicFormats,
			PlaylistFormats: lib.PlaylistFormats,
		},
	)

	app.playbackService = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.audioEngine,
		app.tagReader,
		app.eventBus,
		app.libraryService,
		service.PlaybackOptions{SkipBackThreshold: cfg.Settings.Playback.SkipBack()},
	)

	// Step 6: Create navigation
	app.navigator = navigation.New(navigation.NewLibrarySource(
		app.libraryService,
		app.playbackService,
		app.SettingsLines,
	))

	return app, nil
}

func (a *Application) initLogger(cfg Config) error {
	level, _ := logger.ParseLevel(a.settings.Log.Level)
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	out := cfg.LogOutput
	if a.settings.Log.File != "" {
		f, err := logger.OpenFile(a.settings.Log.File)
		if err != nil {
			return err
		}
		a.logFile = f
		out = f
	}
	if out == nil {
		a.logger = logger.Discard()
		return nil
	}

	a.logger = logger.NewLogger(logger.Config{
		Level:  level,
		Format: a.settings.Log.Format,
		Output: out,
	})
	return nil
}

// newAudioEngine picks and initializes the audio engine. A speaker that fails to
// start leaves an uninitialized engine, so every play reports a transport failure.
func (a *Application) newAudioEngine(useMock bool) ports.AudioEngine {
	var engine ports.AudioEngine
	if useMock {
		engine = mock.NewRealtimeEngine(a.logger)
	} else {
		engine = beep.NewEngine(a.logger, beep.DefaultSampleRate)
	}

	if err := engine.Initialize(); err != nil {
		a.logger.Warn("audio output unavailable", slog.Any("error", err))
	}
	return engine
}

// Scan rebuilds the library from disk. Cached tags are dropped first so
// retagged files are read again.
func (a *Application) Scan(ctx context.Context) error {
	a.tagReader.Forget()
	if err := a.libraryService.Refresh(ctx); err != nil {
		return err
	}

	hits, misses, size := a.tagReader.Stats()
	a.logger.Debug("tag cache after scan",
		slog.Uint64("hits", hits),
		slog.Uint64("misses", misses),
		slog.Int("entries", size))
	return nil
}

// Run scans the library and shows the terminal UI until the user quits.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("termtune started")

	if err := a.Scan(ctx); err != nil {
		return fmt.Errorf("failed to scan library: %w", err)
	}

	model := tui.NewModel(a.playbackService, tui.RescanFunc(a.Scan), a.navigator, a.eventBus, tui.Options{
		Logger:  a.logger.With(slog.String("component", "tui")),
		Refresh: a.settings.TUI.Refresh(),
	})
	return tui.Run(model)
}

// SettingsLines describes the active configuration for the settings screen.
func (a *Application) SettingsLines() []string {
	lib := a.settings.Library
	return []string{
		"config: " + a.ConfigSource(),
		"music dir: " + lib.MusicDir,
		"playlist dir: " + lib.PlaylistDir,
		"music formats: " + strings.Join(lib.MusicFormats, " "),
		"playlist formats: " + strings.Join(lib.PlaylistFormats, " "),
		fmt.Sprintf("skip back threshold: %s", a.settings.Playback.SkipBack()),
	}
}

// ConfigSource returns the file the configuration was read from.
func (a *Application) ConfigSource() string {
	if a.source == "" {
		return "defaults"
	}
	return a.source
}

// Library returns the library service.
func (a *Application) Library() *service.LibraryService { return a.libraryService }

// Player returns the playback service.
func (a *Application) Player() *service.PlaybackService { return a.playbackService }

// Navigator returns the menu state.
func (a *Application) Navigator() *navigation.Navigator { return a.navigator }

// EventBus returns the event bus.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Shutdown gracefully shuts down the application.
// It is safe to call more than once.
func (a *Application) Shutdown() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.logger.Info("shutting down application")

	var errs []error

	// Shutdown services (in reverse order of creation)
	if a.playbackService != nil {
		if err := a.playbackService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown playback service", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if a.audioEngine != nil && a.audioEngine.IsInitialized() {
		if err := a.audioEngine.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown audio engine", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	a.closeLog()
	return errors.Join(errs...)
}

func (a *Application) closeLog() {
	if a.logFile == nil {
		return
	}
	if err := a.logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	a.logFile = nil
}
