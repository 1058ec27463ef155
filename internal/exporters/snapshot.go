package exporters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/utils"
)

// SnapshotOptions controls where snapshots go and which are suppressed.
type SnapshotOptions struct {
	// OutputDir receives every artifact. Empty means next to the source file.
	OutputDir string
	// Finalize suppresses every snapshot except the final one.
	Finalize bool
	// SingleFile suppresses all per-file snapshots; only the aggregate is written.
	SingleFile bool
}

// SnapshotWriter writes per-stage snapshots of a table in one output format.
type SnapshotWriter struct {
	format  formats.Output
	encoder Encoder
	opts    SnapshotOptions
}

// NewSnapshotWriter fails for unknown formats, so a bad configuration is
// reported before any file is processed.
func NewSnapshotWriter(format formats.Output, opts SnapshotOptions) (*SnapshotWriter, error) {
	encoder, err := ForFormat(format)
	if err != nil {
		return nil, err
	}
	return &SnapshotWriter{format: format, encoder: encoder, opts: opts}, nil
}

// Format returns the output format.
func (w *SnapshotWriter) Format() formats.Output {
	return w.format
}

// Suppressed reports whether a snapshot with this suffix would be skipped.
func (w *SnapshotWriter) Suppressed(suffix entities.Suffix) bool {
	if w.opts.SingleFile {
		return true
	}
	return w.opts.Finalize && !suffix.IsFinal()
}

// Write saves t as <base>_<suffix>[gen].<ext>. written is false when the
// snapshot was suppressed.
func (w *SnapshotWriter) Write(t entities.Table, suffix entities.Suffix) (string, bool, error) {
	if w.Suppressed(suffix) {
		logger.Debugf("Skipping %s snapshot of %s", suffix, t.Name)
		return "", false, nil
	}

	dir := w.opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(t.Name)
	}
	path := filepath.Join(dir, utils.SnapshotFilename(t.Name, suffix, w.format.Extension()))

	if err := w.writeFile(path, t, EncodeOptions{Header: true}); err != nil {
		return "", false, err
	}
	logger.Infof("Written %s", path)
	return path, true, nil
}

// WriteAggregate saves the concatenated final snapshots as <name>[gen].<ext>
// without a header row.
func (w *SnapshotWriter) WriteAggregate(t entities.Table, name, dir string) (string, error) {
	if w.opts.OutputDir != "" {
		dir = w.opts.OutputDir
	}
	path := filepath.Join(dir, utils.AggregateFilename(name, w.format.Extension()))

	if err := w.writeFile(path, t, EncodeOptions{Header: false}); err != nil {
		return "", err
	}
	logger.Infof("Written %s (%d rows)", path, t.Len())
	return path, nil
}

func (w *SnapshotWriter) writeFile(path string, t entities.Table, opts EncodeOptions) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := w.encoder.Encode(f, t, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
