package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/qawash/internal/audit"
	"github.com/mrlokans/qawash/internal/batch"
	"github.com/mrlokans/qawash/internal/config"
	"github.com/mrlokans/qawash/internal/database"
	"github.com/mrlokans/qawash/internal/database/runs"
	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/exporters"
	"github.com/mrlokans/qawash/internal/importers"
	"github.com/mrlokans/qawash/internal/logger"
)

// washFlags are the command line overrides shared by wash and watch.
// Only flags given explicitly replace configured values.
type washFlags struct {
	ConfigFile   string
	Dir          string
	InputFormat  string
	OutputFormat string
	OutputDir    string
	Finalize     bool
	SingleFile   bool
	Fake         bool
	Sheet        string
	Query        string
	AuditDir     string
	HistoryDB    string
	Retention    int
	LogLevel     string

	set map[string]bool
}

func (f *washFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "Path to a YAML config file (default: ./qawash.yaml when present)")
	fs.StringVar(&f.Dir, "dir", ".", "Directory containing the source files")
	fs.StringVar(&f.InputFormat, "input-format", config.DefaultInputFormat, "Input format: xlsx, csv, json, yaml, sqlite")
	fs.StringVar(&f.OutputFormat, "o", config.DefaultOutputFormat, "Output format: csv, xlsx, json, yaml, latex, markdown")
	fs.StringVar(&f.OutputDir, "out", "", "Directory for generated files (default: next to each source file)")
	fs.BoolVar(&f.Finalize, "f", false, "Only write the final file of each source plus the combined file")
	fs.BoolVar(&f.SingleFile, "single", false, "Only write one combined file for all sources")
	fs.BoolVar(&f.Fake, "fake", false, "Name final files with the 'fake' suffix instead of 'FINAL'")
	fs.StringVar(&f.Sheet, "sheet", "", "Worksheet to read from xlsx sources (default: first sheet)")
	fs.StringVar(&f.Query, "query", "", "Query producing the records of sqlite sources (default: "+importers.DefaultSQLiteQuery+")")
	fs.StringVar(&f.AuditDir, "audit-dir", "", "Directory for JSON exclusion evidence (disabled when empty)")
	fs.StringVar(&f.HistoryDB, "history-db", "", "SQLite database recording every run (disabled when empty)")
	fs.IntVar(&f.Retention, "history-retention", 0, "Prune recorded runs older than this many days (0 keeps all)")
	fs.StringVar(&f.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
}

// remember records which flags were given on the command line.
func (f *washFlags) remember(fs *flag.FlagSet) {
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
}

// loadConfig merges the configuration sources with the command line.
func (f *washFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}

	if f.set["dir"] {
		cfg.Input.Dir = f.Dir
	}
	if f.set["input-format"] {
		cfg.Input.Format = f.InputFormat
	}
	if f.set["o"] {
		cfg.Output.Format = f.OutputFormat
	}
	if f.set["out"] {
		cfg.Output.Dir = f.OutputDir
	}
	if f.set["f"] {
		cfg.Finalize = f.Finalize
	}
	if f.set["single"] {
		cfg.SingleFile = f.SingleFile
	}
	if f.set["fake"] && f.Fake {
		cfg.FinalSuffix = string(entities.SuffixFake)
	}
	if f.set["sheet"] {
		cfg.Sheet = f.Sheet
	}
	if f.set["query"] {
		cfg.SQLiteQuery = f.Query
	}
	if f.set["audit-dir"] {
		cfg.Audit.Dir = f.AuditDir
	}
	if f.set["history-db"] {
		cfg.HistoryPath = f.HistoryDB
	}
	if f.set["history-retention"] {
		cfg.RetentionDays = f.Retention
	}
	if f.set["log-level"] {
		cfg.Level = f.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Setup(cfg.Level, os.Stdout, os.Stderr)
	return cfg, nil
}

// buildRunner wires a batch runner from the configuration. The returned
// function releases the run-history database.
func buildRunner(cfg *config.Config) (*batch.Runner, func(), error) {
	writer, err := exporters.NewSnapshotWriter(cfg.OutputFormat(), exporters.SnapshotOptions{
		OutputDir:  cfg.Output.Dir,
		Finalize:   cfg.Finalize,
		SingleFile: cfg.SingleFile,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var auditor *audit.Auditor
	if cfg.Audit.Dir != "" {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
	}
	var repo *runs.Repository
	if cfg.HistoryPath != "" {
		db, err := database.NewDatabase(cfg.HistoryPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open run history: %w", err)
		}
		repo = runs.NewRepository(db.DB)
		if _, err := pruneHistory(repo, cfg.RetentionDays, time.Now()); err != nil {
			logger.Warnf("Failed to prune run history: %v", err)
		}
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Warnf("Failed to close run history: %v", err)
			}
		}
	}

	wash := cfg.WashOptions()
	wash.ReportOut = os.Stdout

	runner, err := batch.NewRunner(batch.Options{
		Input:         cfg.InputFormat(),
		Decode:        importers.Options{Sheet: cfg.Sheet, SQLiteQuery: cfg.SQLiteQuery},
		Wash:          wash,
		Writer:        writer,
		Aggregate:     cfg.Finalize || cfg.SingleFile,
		AggregateName: cfg.AggregateName,
		Recorder:      audit.NewService(auditor, repo),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return runner, cleanup, nil
}

// pruneHistory removes runs older than days before now. days <= 0 keeps
// every run.
func pruneHistory(repo *runs.Repository, days int, now time.Time) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	removed, err := repo.DeleteOlderThan(now.AddDate(0, 0, -days))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Infof("Pruned %d runs older than %d days from history", removed, days)
	}
	return removed, nil
}
