package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/soul/internal/logging"
	"github.com/aretw0/soul/pkg/model"
	"github.com/aretw0/soul/pkg/observability"
	"github.com/aretw0/soul/pkg/soulset"
	"github.com/prometheus/client_golang/prometheus"
)

// SetOptions contains the configuration for the set command.
type SetOptions struct {
	MemberPaths []string
	PatchPath   string
	PatchIndex  int
	Remove      []int
	Format      string
	Metrics     bool
	Logger      *slog.Logger
	Out         io.Writer
	ErrOut      io.Writer
}

// RunSet builds a set from member documents, optionally patches or removes members,
// and prints the aggregate events.
func RunSet(opts SetOptions) error {
	format, err := ResolveFormat(opts.Format, opts.Out)
	if err != nil {
		return err
	}
	printer := NewPrinter(opts.Out, format)
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	set, err := soulset.New(nil, model.WithLogger(logger.With("model", "set")))
	if err != nil {
		return err
	}
	defer set.Close()

	reg := prometheus.NewRegistry()
	if opts.Metrics {
		rec, err := observability.NewRecorder(reg)
		if err != nil {
			return err
		}
		rec.Observe(set, "set")
	}

	for _, event := range []string{soulset.EventAdd, soulset.EventRemove} {
		set.On(event, func(args ...any) error {
			return printer.Event(EventRecord{Event: event, Child: args[0]})
		})
	}
	set.On(soulset.EventChildChange, func(args ...any) error {
		return printer.Event(EventRecord{
			Event: soulset.EventChildChange,
			Child: args[0],
			Old:   args[1].(model.Attributes),
			New:   args[2].(model.Attributes),
		})
	})

	var members []model.Model
	for _, path := range opts.MemberPaths {
		docs, err := LoadDocuments(path)
		if err != nil {
			return fmt.Errorf("failed to load member: %w", err)
		}
		for _, doc := range docs {
			child, err := model.New(doc, model.WithLogger(logger.With("model", path)))
			if err != nil {
				return err
			}
			if err := set.Add(child); err != nil {
				return err
			}
			members = append(members, child)
		}
	}
	logger.Debug("members loaded", "size", set.Size())

	if opts.PatchPath != "" {
		child, err := member(members, opts.PatchIndex)
		if err != nil {
			return err
		}
		patch, err := LoadAttributes(opts.PatchPath)
		if err != nil {
			return fmt.Errorf("failed to load patch: %w", err)
		}
		if err := child.Set(patch); err != nil {
			return fmt.Errorf("%s: %w", opts.PatchPath, err)
		}
	}

	remove := slices.Clone(opts.Remove)
	slices.Sort(remove)
	for _, i := range slices.Compact(remove) {
		child, err := member(members, i)
		if err != nil {
			return err
		}
		if err := set.Remove(child); err != nil {
			return err
		}
	}

	if err := printer.Document(set); err != nil {
		return err
	}
	if opts.Metrics {
		return PrintMetrics(opts.ErrOut, reg)
	}
	return nil
}

func member(members []model.Model, i int) (model.Model, error) {
	if i < 0 || i >= len(members) {
		return nil, fmt.Errorf("member index %d out of range [0, %d)", i, len(members))
	}
	return members[i], nil
}
