package trace

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes execution errors.
type ErrorCode string

const (
	// ErrCodeEmptyFlow indicates a flow with zero hops was executed.
	ErrCodeEmptyFlow ErrorCode = "EMPTY_FLOW"

	// ErrCodeNotConfigured indicates a by-id wrapper was called without a
	// flow source to resolve against.
	ErrCodeNotConfigured ErrorCode = "NOT_CONFIGURED"

	// ErrCodeFlowNotFound indicates the named flow does not exist in the
	// configured source.
	ErrCodeFlowNotFound ErrorCode = "FLOW_NOT_FOUND"
)

// ExecError represents a hard caller error raised by the synthesizer.
//
// Normal graph-of-services states — cycles, unreachable services, missing
// directory entries — are data, not errors, and never surface here. Only
// malformed input (empty step list) or a missing required collaborator
// produces an ExecError.
type ExecError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// FlowID identifies the affected flow, when known.
	FlowID string
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.FlowID != "" {
		return fmt.Sprintf("%s: %s (flow=%s)", e.Code, e.Message, e.FlowID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsEmptyFlow returns true if the error is an empty-flow error.
// Uses errors.As to handle wrapped errors.
func IsEmptyFlow(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee) && ee.Code == ErrCodeEmptyFlow
}

// IsNotConfigured returns true if the error is a missing-collaborator error.
func IsNotConfigured(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee) && ee.Code == ErrCodeNotConfigured
}

// IsFlowNotFound returns true if the error is an unknown-flow error.
func IsFlowNotFound(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee) && ee.Code == ErrCodeFlowNotFound
}

// NewEmptyFlowError creates an ExecError for a flow with no steps.
func NewEmptyFlowError(flowID string) *ExecError {
	return &ExecError{
		Code:    ErrCodeEmptyFlow,
		Message: "flow has no steps to execute",
		FlowID:  flowID,
	}
}

// NewNotConfiguredError creates an ExecError for a missing collaborator.
func NewNotConfiguredError(what string) *ExecError {
	return &ExecError{
		Code:    ErrCodeNotConfigured,
		Message: fmt.Sprintf("%s not configured", what),
	}
}

// NewFlowNotFoundError creates an ExecError for an unknown flow id.
func NewFlowNotFoundError(flowID string) *ExecError {
	return &ExecError{
		Code:    ErrCodeFlowNotFound,
		Message: "flow not found",
		FlowID:  flowID,
	}
}
