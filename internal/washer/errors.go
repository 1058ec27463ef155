package washer

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch indicates an input table with an unexpected column count.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrSchemaInvariantViolation indicates the column layout drifted after normalization.
	ErrSchemaInvariantViolation = errors.New("schema invariant violation")
	// ErrInjectionIndexOutOfRange indicates too few rows to place an attention check.
	ErrInjectionIndexOutOfRange = errors.New("injection index out of range")
)

// SchemaMismatchError names the file and the observed column count.
type SchemaMismatchError struct {
	File    string
	Columns int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: unexpected column count %d (want 11 for raw or 18 for washed)", e.File, e.Columns)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// InjectionError reports an attention check that could not be placed.
type InjectionError struct {
	File     string
	Position int
	Rows     int
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s: cannot insert attention check at row %d, table has %d rows", e.File, e.Position, e.Rows)
}

func (e *InjectionError) Unwrap() error { return ErrInjectionIndexOutOfRange }
