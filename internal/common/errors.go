// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Pipeline errors.
	ErrIngestion         = errors.New("ingestion failed")
	ErrUnsupportedSource = errors.New("unsupported source kind")
	ErrSchema            = errors.New("required columns not found")
	ErrNoTransactions    = errors.New("no transactions")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrComputation       = errors.New("computation failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IngestionError reports a source that could not be read at all.
type IngestionError struct {
	Err    error
	Source string
	Kind   string
}

func (e *IngestionError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("ingest %s (%s): %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("ingest %s: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() []error {
	return []error{ErrIngestion, e.Err}
}

// SchemaError reports mandatory canonical fields that no source column maps to.
type SchemaError struct {
	Missing []string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: missing %s (columns: %s)",
		ErrSchema, strings.Join(e.Missing, ", "), strings.Join(e.Columns, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// InsufficientDataError reports that an analysis did not have enough samples to run.
type InsufficientDataError struct {
	Component string
	Have      int
	Need      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %v (have %d, need %d)", e.Component, ErrInsufficientData, e.Have, e.Need)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// ComputationError wraps an unexpected failure inside one analytics component.
type ComputationError struct {
	Err       error
	Component string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Component, ErrComputation, e.Err)
}

func (e *ComputationError) Unwrap() []error {
	return []error{ErrComputation, e.Err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
