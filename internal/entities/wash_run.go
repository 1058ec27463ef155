package entities

import "time"

type WashRunStatus string

const (
	WashRunStatusSuccess WashRunStatus = "success"
	WashRunStatusFailed  WashRunStatus = "failed"
)

// WashRun records the outcome of washing one input file.
type WashRun struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	File            string        `gorm:"index;size:512" json:"file"`
	Category        string        `gorm:"index;size:256" json:"category"`
	Schema          Schema        `gorm:"size:20" json:"schema"`
	RowsRead        int           `json:"rows_read"`
	ExcludedKeyword int           `json:"excluded_keyword"`
	ExcludedEmpty   int           `json:"excluded_empty"`
	RowsRemaining   int           `json:"rows_remaining"`
	RowsFinal       int           `json:"rows_final"`
	ExcludedIndices string        `gorm:"type:text" json:"excluded_indices,omitempty"` // JSON encoded report
	AuditFile       string        `gorm:"size:100" json:"audit_file,omitempty"`
	Status          WashRunStatus `gorm:"size:20" json:"status"`
	ErrorMsg        string        `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
}

func (WashRun) TableName() string {
	return "wash_runs"
}
