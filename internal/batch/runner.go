package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/qawash/internal/audit"
	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/exporters"
	"github.com/mrlokans/qawash/internal/formats"
	"github.com/mrlokans/qawash/internal/importers"
	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/washer"
)

// Options wires a Runner.
type Options struct {
	Input  formats.Input
	Decode importers.Options
	Wash   washer.Options
	Writer *exporters.SnapshotWriter

	// Aggregate writes the concatenation of every final snapshot once all
	// files are washed.
	Aggregate     bool
	AggregateName string

	// Recorder keeps audit evidence and run history. May be nil.
	Recorder *audit.Service
}

// FileResult is the outcome of one washed file.
type FileResult struct {
	Path   string
	Result washer.Result
}

// Summary describes a whole batch.
type Summary struct {
	Files     []FileResult
	Aggregate string // path of the aggregate, empty when not written
}

// Runner washes a batch of files one after another. The first failing file
// aborts the batch; outputs written before the failure are left in place.
type Runner struct {
	opts     Options
	decoder  importers.Decoder
	pipeline *washer.Pipeline
}

func NewRunner(opts Options) (*Runner, error) {
	if opts.Writer == nil {
		return nil, errors.New("batch runner requires a snapshot writer")
	}
	decoder, err := importers.ForFormat(opts.Input, opts.Decode)
	if err != nil {
		return nil, err
	}
	return &Runner{
		opts:     opts,
		decoder:  decoder,
		pipeline: washer.NewPipeline(opts.Wash, opts.Writer),
	}, nil
}

// Run washes the files Discover finds in dir. The context is checked
// between files; a file that has started is always finished.
func (r *Runner) Run(ctx context.Context, dir, explicit string) (Summary, error) {
	var summary Summary

	files, err := Discover(dir, r.opts.Input, explicit)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		logger.Warnf("No %s files to wash in %s", r.opts.Input, dir)
		return summary, nil
	}

	finals := make([]entities.Table, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := r.washFile(path)
		if err != nil {
			return summary, fmt.Errorf("failed to wash %s: %w", path, err)
		}
		summary.Files = append(summary.Files, FileResult{Path: path, Result: result})
		finals = append(finals, result.Final)
	}

	if r.opts.Aggregate {
		aggregate, err := Concatenate(r.opts.Writer, finals, r.opts.AggregateName, dir)
		if err != nil {
			return summary, err
		}
		summary.Aggregate = aggregate
	}

	logger.Infof("Washed %d file(s)", len(summary.Files))
	return summary, nil
}

func (r *Runner) washFile(path string) (washer.Result, error) {
	logger.Infof("Washing %s", path)

	table, err := r.decoder.Decode(path)
	if err != nil {
		r.opts.Recorder.RecordFailure(path, washer.Result{Category: washer.CategoryFromPath(path)}, err)
		return washer.Result{}, err
	}

	result, err := r.pipeline.Wash(table, path)
	if err != nil {
		r.opts.Recorder.RecordFailure(path, result, err)
		return result, err
	}

	if _, err := r.opts.Recorder.RecordSuccess(path, result); err != nil {
		return result, fmt.Errorf("failed to record exclusions: %w", err)
	}
	return result, nil
}

// Concatenate appends every final snapshot row-wise and writes the result
// once, without a header. Nothing is written for an empty batch.
func Concatenate(w *exporters.SnapshotWriter, finals []entities.Table, name, dir string) (string, error) {
	if len(finals) == 0 {
		return "", nil
	}
	all, err := entities.Concat(name, finals...)
	if err != nil {
		return "", err
	}
	return w.WriteAggregate(all, name, dir)
}
