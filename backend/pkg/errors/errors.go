package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeInput represents malformed ingestion input
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrorType returns the category; promoted to every typed error embedding BaseError.
func (e *BaseError) ErrorType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph write or read fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrGraphNodeNotFound is returned when a lookup by key matches no node
type ErrGraphNodeNotFound struct {
	*BaseError
	Label string
	Key   string
	Value string
}

func NewGraphNodeNotFound(label, key, value string) *ErrGraphNodeNotFound {
	return &ErrGraphNodeNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("%s not found: %s=%q", label, key, value), nil),
		Label:     label,
		Key:       key,
		Value:     value,
	}
}

// ErrGraphAmbiguousMatch is returned when a lookup expected one node and matched several
type ErrGraphAmbiguousMatch struct {
	*BaseError
	Label   string
	Key     string
	Value   string
	Matches int
}

func NewGraphAmbiguousMatch(label, key, value string, matches int) *ErrGraphAmbiguousMatch {
	return &ErrGraphAmbiguousMatch{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("%d %s nodes match %s=%q", matches, label, key, value), nil),
		Label:     label,
		Key:       key,
		Value:     value,
		Matches:   matches,
	}
}

// Input Errors

// ErrInputMissingColumn is returned when the CSV header lacks a required column
type ErrInputMissingColumn struct {
	*BaseError
	Column string
}

func NewInputMissingColumn(column string) *ErrInputMissingColumn {
	return &ErrInputMissingColumn{
		BaseError: NewBaseError(ErrorTypeInput, fmt.Sprintf("missing required column: %s", column), nil),
		Column:    column,
	}
}

// ErrInputMalformedRow is returned when a data row cannot be read or a field cannot be parsed
type ErrInputMalformedRow struct {
	*BaseError
	Row   int
	Field string
}

func NewInputMalformedRow(row int, field string, err error) *ErrInputMalformedRow {
	msg := fmt.Sprintf("malformed row %d", row)
	if field != "" {
		msg = fmt.Sprintf("malformed row %d: field %s", row, field)
	}
	return &ErrInputMalformedRow{
		BaseError: NewBaseError(ErrorTypeInput, msg, err),
		Row:       row,
		Field:     field,
	}
}

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type typedError interface {
	error
	ErrorType() ErrorType
}

// IsErrorType checks if any error in the chain is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		var typed typedError
		if !stderrors.As(err, &typed) {
			return false
		}
		if typed.ErrorType() == errType {
			return true
		}
		err = stderrors.Unwrap(typed)
	}
	return false
}
