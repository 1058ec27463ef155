package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/washer"
)

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Evidence is the record kept for one washed file: which rows were removed
// and why, so a reviewer can check the exclusions later.
type Evidence struct {
	ID        string                 `json:"id"`
	File      string                 `json:"file"`
	Category  string                 `json:"category"`
	RowsRead  int                    `json:"rows_read"`
	RowsFinal int                    `json:"rows_final"`
	Report    washer.ExclusionReport `json:"exclusions"`
	Written   []string               `json:"written,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// SaveReport stores the evidence of one washing pass and returns its file name.
func (a *Auditor) SaveReport(file string, result washer.Result) (string, error) {
	return a.SaveJSON(Evidence{
		File:      file,
		Category:  result.Category,
		RowsRead:  result.RowsRead,
		RowsFinal: result.Final.Len(),
		Report:    result.Report,
		Written:   result.Written,
		CreatedAt: time.Now().UTC(),
	})
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename.
// Evidence gets the same UUID as its ID.
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	auditID := uuid.New()
	filename := fmt.Sprintf("%s.json", auditID.String())
	path := filepath.Join(a.AuditDir, filename)

	if evidence, ok := data.(Evidence); ok {
		evidence.ID = auditID.String()
		data = evidence
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	logger.Debugf("Saved audit file: %s", path)
	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
