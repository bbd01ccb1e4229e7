// Package errors defines the pipeline error taxonomy.
//
// Every stage of the forecast pipeline fails with a PipelineError carrying a
// discriminated Kind. Stages never recover; the driver reports the first
// failure and terminates, so kinds exist for diagnosis, not for routing.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	// KindConfig covers wrong paths, missing or misnamed columns and sheets.
	KindConfig Kind = "CONFIG"
	// KindDataFormat covers date columns that cannot be parsed at all.
	KindDataFormat Kind = "DATA_FORMAT"
	// KindInsufficientData covers series shorter than two seasonal cycles.
	KindInsufficientData Kind = "INSUFFICIENT_DATA"
	// KindModelFit covers numerical failure while fitting the model.
	KindModelFit Kind = "MODEL_FIT"
	// KindConsistency covers forecast count vs. target cell count mismatch.
	KindConsistency Kind = "CONSISTENCY"
	// KindPersistence covers workbook write and save failures.
	KindPersistence Kind = "PERSISTENCE"
)

// PipelineError is the error type returned by every pipeline stage.
// Message and Hint are operator-facing and written in Portuguese, matching
// the diagnostics the tool prints on the console.
type PipelineError struct {
	Kind    Kind
	Message string
	Hint    string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// WithHint attaches remediation guidance to the error.
func (e *PipelineError) WithHint(hint string) *PipelineError {
	e.Hint = hint
	return e
}

// New creates a PipelineError of the given kind.
func New(kind Kind, message string, cause error) *PipelineError {
	return &PipelineError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *PipelineError {
	return New(KindConfig, message, cause)
}

// NewDataFormatError creates a data format error.
func NewDataFormatError(message string, cause error) *PipelineError {
	return New(KindDataFormat, message, cause)
}

// NewInsufficientDataError creates an insufficient data error.
func NewInsufficientDataError(message string) *PipelineError {
	return New(KindInsufficientData, message, nil)
}

// NewModelFitError creates a model fitting error.
func NewModelFitError(message string, cause error) *PipelineError {
	return New(KindModelFit, message, cause)
}

// NewConsistencyError creates a consistency error.
func NewConsistencyError(message string) *PipelineError {
	return New(KindConsistency, message, nil)
}

// NewPersistenceError creates a persistence error.
func NewPersistenceError(message string, cause error) *PipelineError {
	return New(KindPersistence, message, cause)
}

// KindOf returns the Kind of err when it is (or wraps) a PipelineError,
// and the empty Kind otherwise.
func KindOf(err error) Kind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// HintOf returns the remediation hint of err, if any.
func HintOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Hint
	}
	return ""
}
