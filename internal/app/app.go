package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/metrics"
	"github.com/specialistvlad/skymodel/internal/model"
	"github.com/specialistvlad/skymodel/internal/parser"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	catalog *functions.Registry
	loader  *parser.Loader
	gather  prometheus.Gatherer
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, catalog *functions.Registry) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if catalog == nil {
		catalog = functions.Builtin()
	}
	logger.Debug("Function catalog ready.", "functions", len(catalog.Names()))

	reg := prometheus.NewRegistry()
	m, err := metrics.NewLoader(reg)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		catalog: catalog,
		loader: &parser.Loader{
			Fetcher: document.Router{S3: &lazyS3{cfg: cfg.S3}},
			Catalog: catalog,
			Metrics: m,
		},
		gather: reg,
	}, nil
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads the configured model and applies the configured overrides.
func (a *App) Load(ctx context.Context) (*model.Model, error) {
	ctx = a.Context(ctx)
	m, err := a.loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return nil, err
	}
	for _, o := range a.config.Overrides {
		path, v, err := splitOverride(o)
		if err != nil {
			return nil, err
		}
		if err := m.Set(path, v); err != nil {
			return nil, fmt.Errorf("applying override '%s': %w", o, err)
		}
		ctxlog.FromContext(ctx).Debug("Override applied.", "path", path, "value", v)
	}
	return m, nil
}

// splitOverride parses a "path=value" assignment.
func splitOverride(s string) (string, float64, error) {
	path, raw, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return "", 0, fmt.Errorf("invalid override '%s': expected path=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid override '%s': %w", s, err)
	}
	return path, v, nil
}

// lazyS3 builds the S3 client on first use, so that local models never
// touch the AWS configuration chain.
type lazyS3 struct {
	cfg document.S3Config

	once    sync.Once
	fetcher *document.S3Fetcher
	err     error
}

func (l *lazyS3) Fetch(ctx context.Context, location string) ([]byte, error) {
	l.once.Do(func() {
		l.fetcher, l.err = document.NewS3Fetcher(ctx, l.cfg)
	})
	if l.err != nil {
		return nil, fmt.Errorf("%w: configuring s3 client: %w", document.ErrFileIO, l.err)
	}
	return l.fetcher.Fetch(ctx, location)
}
