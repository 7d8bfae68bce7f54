package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/soul/internal/logging"
	"github.com/aretw0/soul/pkg/model"
	"github.com/aretw0/soul/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// ApplyOptions contains the configuration for the apply command.
type ApplyOptions struct {
	BasePath    string
	PatchPaths  []string
	Format      string
	Freeze      bool
	NoExtend    bool
	Metrics     bool
	Logger      *slog.Logger
	Out         io.Writer
	ErrOut      io.Writer
	ContinueErr bool
}

// Apply loads a base document, sets each patch on it in order and prints every change.
func Apply(opts ApplyOptions) error {
	format, err := ResolveFormat(opts.Format, opts.Out)
	if err != nil {
		return err
	}
	printer := NewPrinter(opts.Out, format)
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	base, err := LoadAttributes(opts.BasePath)
	if err != nil {
		return fmt.Errorf("failed to load base: %w", err)
	}

	soul, err := model.New(base, model.WithLogger(logger.With("model", opts.BasePath)))
	if err != nil {
		return err
	}
	logger.Debug("base loaded", "path", opts.BasePath, "keys", soul.Len())

	reg := prometheus.NewRegistry()
	if opts.Metrics {
		rec, err := observability.NewRecorder(reg)
		if err != nil {
			return err
		}
		rec.Observe(soul, "base")
	}

	soul.On(model.EventChange, func(args ...any) error {
		return printer.Event(EventRecord{
			Event: model.EventChange,
			Old:   args[0].(model.Attributes),
			New:   args[1].(model.Attributes),
		})
	})

	switch {
	case opts.Freeze:
		soul.Freeze()
	case opts.NoExtend:
		soul.PreventExtensions()
	}

	for _, path := range opts.PatchPaths {
		patch, err := LoadAttributes(path)
		if err != nil {
			return fmt.Errorf("failed to load patch: %w", err)
		}

		if err := soul.Set(patch); err != nil {
			logger.Error("patch rejected", "path", path, "error", err)
			if !opts.ContinueErr {
				return fmt.Errorf("%s: %w", path, err)
			}
			printer.Errorf("%s: %v", path, err)
			continue
		}
		logger.Debug("patch applied", "path", path)
	}

	if err := printer.Document(soul); err != nil {
		return err
	}
	if opts.Metrics {
		return PrintMetrics(opts.ErrOut, reg)
	}
	return nil
}
