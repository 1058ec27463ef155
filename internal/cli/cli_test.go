package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qawash/internal/config"
	"github.com/mrlokans/qawash/internal/database"
	"github.com/mrlokans/qawash/internal/database/runs"
	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/scheduler"
)

func writeRawCSV(t *testing.T, path string, n int) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(entities.RawColumns))
	for i := 0; i < n; i++ {
		row := []string{fmt.Sprintf("question %d", i), "description"}
		for slot := 0; slot < entities.DoctorSlots; slot++ {
			row = append(row, "Dr.Wang Hospital Chief", "info", "answer")
		}
		require.NoError(t, w.Write(row))
	}
	w.Flush()
	require.NoError(t, w.Error())
}

func TestWashCommand_ParseFlags(t *testing.T) {
	cmd := NewWashCommand()

	err := cmd.ParseFlags([]string{"-o", "xlsx", "-f", "asthma"})

	require.NoError(t, err)
	assert.Equal(t, "asthma", cmd.File)
	assert.True(t, cmd.set["o"])
	assert.True(t, cmd.set["f"])
	assert.False(t, cmd.set["single"])
}

func TestWashCommand_TooManyFiles(t *testing.T) {
	err := NewWashCommand().ParseFlags([]string{"asthma", "cough"})
	assert.Error(t, err)
}

func TestWashFlags_LoadConfigOverrides(t *testing.T) {
	cmd := NewWashCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-o", "md", "-fake", "-single", "-input-format", "csv"}))

	cfg, err := cmd.loadConfig()

	require.NoError(t, err)
	assert.Equal(t, formats.OutputMarkdown, cfg.OutputFormat())
	assert.Equal(t, formats.InputCSV, cfg.InputFormat())
	assert.True(t, cfg.SingleFile)
	assert.False(t, cfg.Finalize)
	assert.Equal(t, "fake", cfg.FinalSuffix)
}

func TestWashFlags_RejectsUnknownFormat(t *testing.T) {
	cmd := NewWashCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-o", "pdf"}))

	_, err := cmd.loadConfig()

	assert.ErrorIs(t, err, formats.ErrUnsupportedFormat)
}

func TestWashCommand_Run(t *testing.T) {
	dir := t.TempDir()
	writeRawCSV(t, filepath.Join(dir, "asthma.csv"), 90)
	historyDB := filepath.Join(t.TempDir(), "history.db")

	cmd := NewWashCommand()
	require.NoError(t, cmd.ParseFlags([]string{
		"-dir", dir, "-input-format", "csv", "-o", "json", "-f", "-history-db", historyDB,
	}))

	require.NoError(t, cmd.Run())

	assert.FileExists(t, filepath.Join(dir, "asthma_FINAL[gen].json"))
	assert.FileExists(t, filepath.Join(dir, "final[gen].json"))
	assert.NoFileExists(t, filepath.Join(dir, "asthma_excluded[gen].json"))
	assert.FileExists(t, historyDB)

	clean := NewCleanCommand()
	require.NoError(t, clean.ParseFlags([]string{"-dir", dir}))
	require.NoError(t, clean.Run())
	assert.NoFileExists(t, filepath.Join(dir, "final[gen].json"))
	assert.FileExists(t, filepath.Join(dir, "asthma.csv"))
}

func TestHistoryCommand_RequiresDatabase(t *testing.T) {
	cmd := NewHistoryCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	err := cmd.Run()

	assert.Error(t, err)
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, nil)
	assert.Equal(t, "No runs recorded\n", buf.String())

	buf.Reset()
	printRuns(&buf, []entities.WashRun{{
		File:      "asthma.xlsx",
		Category:  "asthma",
		Status:    entities.WashRunStatusFailed,
		ErrorMsg:  "schema mismatch",
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}})
	assert.Contains(t, buf.String(), "2024-03-01 09:30")
	assert.Contains(t, buf.String(), "asthma.xlsx")
	assert.Contains(t, buf.String(), "error: schema mismatch")
}

func TestWatchCommand_ParseFlags(t *testing.T) {
	cmd := NewWatchCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-schedule", "@hourly", "-o", "yaml"}))

	assert.Equal(t, "@hourly", cmd.Schedule)
	assert.True(t, cmd.set["o"])
}

func seedHistory(t *testing.T, path string, now time.Time) {
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	repo := runs.NewRepository(db.DB)
	require.NoError(t, repo.LogRun(&entities.WashRun{File: "old.xlsx", Status: entities.WashRunStatusSuccess, CreatedAt: now.AddDate(0, 0, -40)}))
	require.NoError(t, repo.LogRun(&entities.WashRun{File: "new.xlsx", Status: entities.WashRunStatusSuccess, CreatedAt: now.AddDate(0, 0, -2)}))
}

func TestPruneHistory(t *testing.T) {
	now := time.Now()
	path := filepath.Join(t.TempDir(), "runs.db")
	seedHistory(t, path, now)

	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()
	repo := runs.NewRepository(db.DB)

	removed, err := pruneHistory(repo, 0, now)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = pruneHistory(repo, 30, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	list, err := repo.GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new.xlsx", list[0].File)
}

func TestBuildRunner_PrunesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	seedHistory(t, path, time.Now())

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.HistoryPath = path
	cfg.RetentionDays = 30

	_, cleanup, err := buildRunner(cfg)
	require.NoError(t, err)
	cleanup()

	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()
	list, err := runs.NewRepository(db.DB).GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new.xlsx", list[0].File)
}

func TestWashFlags_HistoryRetention(t *testing.T) {
	cmd := NewWashCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-history-retention", "14"}))

	cfg, err := cmd.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.RetentionDays)
}

func TestLogWatchSummary(t *testing.T) {
	var out bytes.Buffer
	logger.Setup("info", &out, &out)
	t.Cleanup(func() { logger.Setup("info", os.Stdout, os.Stderr) })

	boom := errors.New("boom")
	watcher := scheduler.NewWatchScheduler(func(ctx context.Context) error { return boom })
	require.ErrorIs(t, watcher.RunNow(context.Background()), boom)

	logWatchSummary(watcher)

	assert.Contains(t, out.String(), "Watch stopped after 1 runs, last run failed: boom")
}
