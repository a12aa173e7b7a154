package model

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrInvalidID           = errors.New("invalid id format")
	ErrSummarizationFailed = errors.New("AI summary failed")
)

// Reason tags why a single input rule failed.
type Reason string

const (
	ReasonTypeMismatch   Reason = "TypeMismatch"
	ReasonRequired       Reason = "Required"
	ReasonWhitespaceOnly Reason = "WhitespaceOnly"
	ReasonTooLong        Reason = "TooLong"
	ReasonUnknownField   Reason = "UnknownField"
	ReasonNotANumber     Reason = "NotANumber"
	ReasonOutOfRange     Reason = "OutOfRange"
)

// Violation is one failed rule for one field.
type Violation struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found for a payload.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasReason reports whether any violation carries the given reason.
func (e *ValidationError) HasReason(r Reason) bool {
	for _, v := range e.Violations {
		if v.Reason == r {
			return true
		}
	}
	return false
}

// NewValidationError builds a ValidationError from violations.
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// SummarizationError reports a failed summarizer call. The message never
// includes the upstream cause; Cause is kept for logging.
type SummarizationError struct {
	Cause error
}

func (e *SummarizationError) Error() string { return ErrSummarizationFailed.Error() }

func (e *SummarizationError) Unwrap() []error {
	return []error{ErrSummarizationFailed, e.Cause}
}
