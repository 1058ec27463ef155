package audit

import (
	"encoding/json"

	"github.com/mrlokans/qawash/internal/database/runs"
	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/washer"
)

// Service keeps the evidence of every washed file. Both the JSON auditor and
// the run-history repository are optional.
type Service struct {
	auditor *Auditor
	repo    *runs.Repository
}

// NewService creates a new audit service.
func NewService(auditor *Auditor, repo *runs.Repository) *Service {
	return &Service{auditor: auditor, repo: repo}
}

// Enabled reports whether anything is recorded at all.
func (s *Service) Enabled() bool {
	return s != nil && (s.auditor != nil || s.repo != nil)
}

// RecordSuccess saves the exclusion report of a washed file.
func (s *Service) RecordSuccess(file string, result washer.Result) (*entities.WashRun, error) {
	if !s.Enabled() {
		return nil, nil
	}

	run := &entities.WashRun{
		File:            file,
		Category:        result.Category,
		Schema:          result.Schema,
		RowsRead:        result.RowsRead,
		ExcludedKeyword: len(result.Report.ByKeyword),
		ExcludedEmpty:   len(result.Report.ByEmpty),
		RowsRemaining:   result.Report.Remaining,
		RowsFinal:       result.Final.Len(),
		Status:          entities.WashRunStatusSuccess,
	}
	if reportBytes, err := json.Marshal(result.Report); err == nil {
		run.ExcludedIndices = string(reportBytes)
	}

	if s.auditor != nil {
		filename, err := s.auditor.SaveReport(file, result)
		if err != nil {
			return nil, err
		}
		run.AuditFile = filename
	}

	if s.repo != nil {
		if err := s.repo.LogRun(run); err != nil {
			return nil, err
		}
	}
	return run, nil
}

// RecordFailure logs a failed wash to the run history. Failures to record
// are only logged so the original error stays the one reported.
func (s *Service) RecordFailure(file string, result washer.Result, cause error) {
	if s == nil || s.repo == nil {
		return
	}

	run := &entities.WashRun{
		File:     file,
		Category: result.Category,
		Schema:   result.Schema,
		RowsRead: result.RowsRead,
		Status:   entities.WashRunStatusFailed,
		ErrorMsg: truncate(cause.Error(), 500),
	}
	if err := s.repo.LogRun(run); err != nil {
		logger.Errorf("Failed to record failed run of %s: %v", file, err)
	}
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
