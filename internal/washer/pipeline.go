package washer

import (
	"fmt"
	"io"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/logger"
)

// Sink receives the snapshots produced while washing one file.
type Sink interface {
	Write(t entities.Table, suffix entities.Suffix) (path string, written bool, err error)
}

// Options holds the tunable constants of a washing pass.
type Options struct {
	Boilerplate   []string
	Keywords      []string
	TruncateLimit int
	Checks        []AttentionCheck
	FinalSuffix   entities.Suffix
	// ReportOut receives the human-readable exclusion report of each file.
	// Nil disables it.
	ReportOut io.Writer
}

// DefaultOptions returns the constants of the most recent revision of the
// washing rules.
func DefaultOptions() Options {
	return Options{
		Boilerplate:   DefaultBoilerplate,
		Keywords:      DefaultExclusionKeywords,
		TruncateLimit: DefaultTruncateLimit,
		Checks:        DefaultAttentionChecks,
		FinalSuffix:   entities.SuffixFinal,
	}
}

// Result describes one washed file.
type Result struct {
	Category string
	Schema   entities.Schema
	RowsRead int
	Report   ExclusionReport
	Final    entities.Table
	Written  []string
}

// Pipeline runs every washing stage on one table at a time:
// normalize → sanitize → decompose → tag → exclude → truncate → inject.
type Pipeline struct {
	sanitizer *Sanitizer
	filter    *ExclusionFilter
	opts      Options
	sink      Sink
}

// NewPipeline creates a pipeline that hands snapshots to sink.
func NewPipeline(opts Options, sink Sink) *Pipeline {
	if opts.FinalSuffix == "" {
		opts.FinalSuffix = entities.SuffixFinal
	}
	return &Pipeline{
		sanitizer: NewSanitizer(opts.Boilerplate),
		filter:    NewExclusionFilter(opts.Keywords),
		opts:      opts,
		sink:      sink,
	}
}

// Wash pushes a freshly read table through every stage. sourcePath names
// the input file; the category is derived from it.
func (p *Pipeline) Wash(input entities.Table, sourcePath string) (Result, error) {
	log := logger.With(sourcePath)
	result := Result{Category: CategoryFromPath(sourcePath), RowsRead: input.Len()}

	t, err := Normalize(input)
	if err != nil {
		return result, err
	}
	result.Schema = t.Schema
	if t.Schema == entities.SchemaWashed {
		log.Warn().Msg("file has already been washed, skipping sanitization and decomposition")
	}

	t = p.sanitizer.Apply(t)
	if t, err = Decompose(t); err != nil {
		return result, err
	}
	if t, err = Tag(t, sourcePath); err != nil {
		return result, err
	}
	if t.Schema == entities.SchemaRaw {
		if err := p.emit(&result, t, entities.SuffixReplaced); err != nil {
			return result, err
		}
	}

	t, report, err := p.filter.Apply(t)
	if err != nil {
		return result, err
	}
	result.Report = report
	log.Info().
		Int("by_keyword", len(report.ByKeyword)).
		Int("by_empty_cell", len(report.ByEmpty)).
		Int("remaining", report.Remaining).
		Msg("exclusion filter applied")
	if p.opts.ReportOut != nil {
		if _, err := io.WriteString(p.opts.ReportOut, report.Format()); err != nil {
			log.Warn().Err(err).Msg("failed to print exclusion report")
		}
	}
	if err := p.emit(&result, t, entities.SuffixExcluded); err != nil {
		return result, err
	}

	t = Truncate(t, p.opts.TruncateLimit)
	if err := p.emit(&result, t, entities.SuffixTop); err != nil {
		return result, err
	}

	t, err = InjectAttentionChecks(t, result.Category, p.opts.Checks)
	if err != nil {
		return result, err
	}
	result.Final = t
	if err := p.emit(&result, t, p.opts.FinalSuffix); err != nil {
		return result, err
	}
	log.Info().Int("rows", t.Len()).Msg("washing finished")
	return result, nil
}

func (p *Pipeline) emit(result *Result, t entities.Table, suffix entities.Suffix) error {
	if p.sink == nil {
		return nil
	}
	path, written, err := p.sink.Write(t, suffix)
	if err != nil {
		return fmt.Errorf("failed to write %s snapshot: %w", suffix, err)
	}
	if written {
		result.Written = append(result.Written, path)
	}
	return nil
}
