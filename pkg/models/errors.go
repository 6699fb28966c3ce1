package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes used in service responses
const (
	ErrCodeEnvelope    = "ENVELOPE_ERROR"
	ErrCodeShape       = "SHAPE_VIOLATION"
	ErrCodeLookupMiss  = "LOOKUP_MISS"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// Error classes. Match with errors.Is.
var (
	ErrEnvelope       = errors.New("catalog api reported an error")
	ErrShapeViolation = errors.New("payload does not match the expected shape")
	ErrLookupMiss     = errors.New("no display entry for code")
)

// EnvelopeError is an application-level failure reported by the catalog API
// itself through a status "error" envelope.
type EnvelopeError struct {
	Code    int
	Message string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("catalog api error %d: %s", e.Code, e.Message)
}

func (e *EnvelopeError) Is(target error) bool {
	return target == ErrEnvelope
}

// FieldProblem describes one offending field of a payload
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ShapeError reports a payload that breaks the structural contract:
// a missing required field or a discriminant outside its fixed set.
type ShapeError struct {
	Field    string
	Reason   string
	Problems []FieldProblem
	Err      error
}

// NewShapeError builds a ShapeError for a single field
func NewShapeError(field, reason string, err error) *ShapeError {
	return &ShapeError{Field: field, Reason: reason, Err: err}
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("shape violation")
	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Problems) > 0 {
		parts := make([]string, 0, len(e.Problems))
		for _, p := range e.Problems {
			parts = append(parts, p.Field+" "+p.Message)
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(parts, "; "))
	}
	return b.String()
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeViolation
}

// withPrefix qualifies every field path with the enclosing location
func (e *ShapeError) withPrefix(prefix string) *ShapeError {
	out := &ShapeError{Reason: e.Reason, Err: e.Err}
	if e.Field != "" || len(e.Problems) == 0 {
		out.Field = joinPath(prefix, e.Field)
	}
	for _, p := range e.Problems {
		out.Problems = append(out.Problems, FieldProblem{Field: joinPath(prefix, p.Field), Message: p.Message})
	}
	return out
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	case strings.HasPrefix(field, "["):
		return prefix + field
	default:
		return prefix + "." + field
	}
}

// LookupError reports a code with no display entry in a lookup table
type LookupError struct {
	Table string
	Key   string
}

// NewLookupError builds a LookupError
func NewLookupError(table, key string) *LookupError {
	return &LookupError{Table: table, Key: key}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup miss: %q", e.Table, e.Key)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookupMiss
}

// AppError is the error shape served by the normalization service
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	// ResponseCode overrides the envelope code, used to relay upstream codes verbatim
	ResponseCode int `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToFailure converts to a status "error" envelope
func (e *AppError) ToFailure() Failure[any] {
	code := e.StatusCode
	if e.ResponseCode != 0 {
		code = e.ResponseCode
	}
	return Failure[any]{Code: code, Message: e.Message}
}

// NewHTTPError builds an AppError for the service surface
func NewHTTPError(code, message string, statusCode int, err error) *AppError {
	appErr := &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
	if err != nil {
		appErr.Details = map[string]interface{}{"original_error": err.Error()}
	}
	return appErr
}

// AsAppError maps any error of this package onto an AppError
func AsAppError(err error) *AppError {
	var (
		appErr    *AppError
		envErr    *EnvelopeError
		shapeErr  *ShapeError
		lookupErr *LookupError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &envErr):
		return &AppError{
			Code:         ErrCodeEnvelope,
			Message:      envErr.Message,
			StatusCode:   http.StatusBadGateway,
			ResponseCode: envErr.Code,
			Details:      map[string]interface{}{"upstream_code": envErr.Code},
		}
	case errors.As(err, &shapeErr):
		details := map[string]interface{}{}
		if shapeErr.Field != "" {
			details["field"] = shapeErr.Field
		}
		if len(shapeErr.Problems) > 0 {
			details["problems"] = shapeErr.Problems
		}
		return &AppError{
			Code:       ErrCodeShape,
			Message:    shapeErr.Error(),
			StatusCode: http.StatusUnprocessableEntity,
			Details:    details,
		}
	case errors.As(err, &lookupErr):
		return &AppError{
			Code:       ErrCodeLookupMiss,
			Message:    lookupErr.Error(),
			StatusCode: http.StatusUnprocessableEntity,
			Details:    map[string]interface{}{"table": lookupErr.Table, "key": lookupErr.Key},
		}
	default:
		return NewHTTPError(ErrCodeInternal, "internal error", http.StatusInternalServerError, err)
	}
}
