package parser

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/metrics"
	"github.com/specialistvlad/skymodel/internal/model"
)

// Loader fetches, decodes and parses model documents. Zero fields fall back
// to local files, the built-in function catalog and no metrics.
type Loader struct {
	Fetcher document.Fetcher
	Catalog functions.Catalog
	Metrics *metrics.Loader
}

// LoadModel reads the model at location using the built-in function catalog.
func LoadModel(ctx context.Context, location string) (*model.Model, error) {
	var l Loader
	return l.Load(ctx, location)
}

// Load reads the model at location, a file path or an s3://bucket/key URL.
func (l *Loader) Load(ctx context.Context, location string) (*model.Model, error) {
	logger := ctxlog.FromContext(ctx).With("location", location)
	start := time.Now()

	fetcher := l.Fetcher
	if fetcher == nil {
		fetcher = document.Router{}
	}
	catalog := l.Catalog
	if catalog == nil {
		catalog = functions.Builtin()
	}

	doc, err := document.Load(ctx, fetcher, location)
	if err != nil {
		l.Metrics.Observe(ctx, resultOf(err), time.Since(start), 0, 0)
		return nil, err
	}

	m, stats, err := New(catalog).parse(ctx, doc)
	if err != nil {
		l.Metrics.Observe(ctx, resultOf(err), time.Since(start), 0, 0)
		logger.Debug("Model rejected.", "error", err)
		return nil, err
	}

	l.Metrics.Observe(ctx, metrics.ResultSuccess, time.Since(start), len(m.Parameters()), stats.Links)
	logger.Debug("Model loaded.", "duration", time.Since(start))
	return m, nil
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, document.ErrFileIO):
		return metrics.ResultIOError
	case errors.Is(err, ErrLinkResolution):
		return metrics.ResultLinkError
	case errors.Is(err, ErrModelSyntax):
		return metrics.ResultSyntaxError
	}
	return metrics.ResultDocumentError
}
