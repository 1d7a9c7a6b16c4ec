// Package app wires configuration, logging, the project registry and the
// template engine together so the TUI and the CLI share one setup path.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"tableflip.dev/launcher/pkg/lifecycle"
	"tableflip.dev/launcher/pkg/logging"
	"tableflip.dev/launcher/pkg/project"
	"tableflip.dev/launcher/pkg/store"
	"tableflip.dev/launcher/pkg/template"
)

// Registry is the persistence the service needs.
type Registry interface {
	lifecycle.Registry
	List(ctx context.Context) ([]project.Descriptor, error)
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Service holds the collaborators of the creation lifecycle.
type Service struct {
	Settings *store.Settings
	Registry Registry
	Engine   *template.Engine
	Logger   *slog.Logger

	progress chan string
	closeLog func() error
}

// progressBuffer holds engine output between ticks. Lines beyond it are
// dropped rather than stalling the job.
const progressBuffer = 256

// Load reads configuration and opens the registry and template engine.
// Diagnostics go to the configured log file, or to logFallback when none
// is set.
func Load(logFallback io.Writer) (*Service, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(settings, logFallback)
}

// New builds a Service from explicit settings.
func New(settings *store.Settings, logFallback io.Writer) (*Service, error) {
	if settings == nil {
		return nil, errors.New("app: no settings")
	}
	if logFallback == nil {
		logFallback = io.Discard
	}
	logger, closeLog, err := logging.Open(settings.LogFile, logFallback, logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	registry, err := store.Open(settings)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	progress := make(chan string, progressBuffer)
	engine, err := template.NewEngine(template.Options{
		Dir: settings.Templates,
		Git: settings.Git,
		Progress: func(line string) {
			select {
			case progress <- line:
			default:
			}
		},
		Logger: logger,
	})
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &Service{
		Settings: settings,
		Registry: registry,
		Engine:   engine,
		Logger:   logger,
		progress: progress,
		closeLog: closeLog,
	}, nil
}

// Controller builds a lifecycle controller seeded with the stored projects.
func (s *Service) Controller(ctx context.Context, presenter lifecycle.Presenter) (*lifecycle.Controller, error) {
	if s.Registry == nil {
		return nil, errors.New("app: no registry configured")
	}
	projects, err := s.Registry.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := lifecycle.Options{
		Registry:  s.Registry,
		Presenter: presenter,
		Logger:    s.Logger,
		Projects:  projects,
		Progress:  s.progress,
	}
	if s.Engine != nil {
		opts.Engine = s.Engine
	}
	if s.Settings != nil {
		opts.Grace = s.Settings.Grace
		opts.LogLimit = s.Settings.LogLimit
	}
	return lifecycle.NewController(opts), nil
}

// Templates lists the available templates.
func (s *Service) Templates() []template.Manifest {
	if s.Engine == nil {
		return nil
	}
	return s.Engine.Templates()
}

// Close releases the log file.
func (s *Service) Close() error {
	if s.closeLog == nil {
		return nil
	}
	return s.closeLog()
}
