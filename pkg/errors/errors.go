package errors

import (
	"fmt"
)

// ParseError represents a configuration parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EvalError represents a runtime failure while evaluating an item.
type EvalError struct {
	ItemID string
	Err    error
}

// NewEvalError constructs an EvalError.
func NewEvalError(itemID string, err error) error {
	return &EvalError{ItemID: itemID, Err: err}
}

func (e *EvalError) Error() string {
	if e == nil {
		return ""
	}
	if e.ItemID != "" {
		return fmt.Sprintf("evaluation error on item %s: %v", e.ItemID, e.Err)
	}
	return fmt.Sprintf("evaluation error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *EvalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StoreError indicates a value-store source that could not be trusted.
type StoreError struct {
	Source  string
	Message string
	Err     error
}

// NewStoreError constructs a StoreError for the given source path or name.
func NewStoreError(source string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &StoreError{Source: source, Message: message, Err: err}
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.Source != "" {
		return fmt.Sprintf("store error [%s]: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
