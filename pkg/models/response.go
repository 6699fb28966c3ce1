package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Envelope status literals
const (
	EnvelopeStatusOK    = "OK"
	EnvelopeStatusError = "error"
)

// Response is the envelope every catalog API call is wrapped in. It is
// either OK[T] or Failure[T]; callers type-switch before touching data.
type Response[T any] interface {
	StatusCode() int
	IsOK() bool
	sealed(T)
}

// OK is a successful envelope: {code, status: "OK", data}
type OK[T any] struct {
	Code int
	Data T
}

// NewOK builds a successful envelope
func NewOK[T any](code int, data T) OK[T] {
	return OK[T]{Code: code, Data: data}
}

func (r OK[T]) StatusCode() int { return r.Code }
func (r OK[T]) IsOK() bool { return true }
func (r OK[T]) sealed(T) {}

func (r OK[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Data   T      `json:"data"`
	}{r.Code, EnvelopeStatusOK, r.Data})
}

// Failure is an error envelope: {code, status: "error", message}
type Failure[T any] struct {
	Code    int
	Message string
}

// NewFailure builds an error envelope
func NewFailure[T any](code int, message string) Failure[T] {
	return Failure[T]{Code: code, Message: message}
}

func (r Failure[T]) StatusCode() int { return r.Code }
func (r Failure[T]) IsOK() bool { return false }
func (r Failure[T]) sealed(T) {}

func (r Failure[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}{r.Code, EnvelopeStatusError, r.Message})
}

// DecodeResponse parses an envelope and its payload. Any deviation from the
// envelope contract is reported as a *ShapeError; a well-formed error
// envelope is returned as Failure[T] with a nil error.
func DecodeResponse[T any](raw []byte) (Response[T], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, NewShapeError("", "envelope is not a JSON object", err)
	}
	if fields == nil {
		return nil, NewShapeError("", "envelope is null", nil)
	}

	codeRaw, ok := fields["code"]
	if !ok || isNull(codeRaw) {
		return nil, NewShapeError("code", "is required", nil)
	}
	var code int
	if err := json.Unmarshal(codeRaw, &code); err != nil {
		return nil, NewShapeError("code", "must be an integer", err)
	}

	statusRaw, ok := fields["status"]
	if !ok || isNull(statusRaw) {
		return nil, NewShapeError("status", "is required", nil)
	}
	var status string
	if err := json.Unmarshal(statusRaw, &status); err != nil {
		return nil, NewShapeError("status", "must be a string", err)
	}

	dataRaw, hasData := fields["data"]
	messageRaw, hasMessage := fields["message"]

	switch status {
	case EnvelopeStatusOK:
		if !hasData {
			return nil, NewShapeError("data", "is required when status is OK", nil)
		}
		if hasMessage {
			return nil, NewShapeError("message", "must be absent when status is OK", nil)
		}

		var data T
		if isNull(dataRaw) {
			if !nullable[T]() {
				return nil, NewShapeError("data", fmt.Sprintf("must not be null for %T", data), nil)
			}
			return OK[T]{Code: code, Data: data}, nil
		}
		if err := json.Unmarshal(dataRaw, &data); err != nil {
			var shapeErr *ShapeError
			if errors.As(err, &shapeErr) {
				return nil, shapeErr.withPrefix("data")
			}
			return nil, NewShapeError("data", "does not match the expected shape", err)
		}
		if err := Validate(data); err != nil {
			var shapeErr *ShapeError
			if errors.As(err, &shapeErr) {
				return nil, shapeErr.withPrefix("data")
			}
			return nil, err
		}
		return OK[T]{Code: code, Data: data}, nil

	case EnvelopeStatusError:
		if hasData {
			return nil, NewShapeError("data", "must be absent when status is error", nil)
		}
		if !hasMessage || isNull(messageRaw) {
			return nil, NewShapeError("message", "is required when status is error", nil)
		}
		var message string
		if err := json.Unmarshal(messageRaw, &message); err != nil {
			return nil, NewShapeError("message", "must be a string", err)
		}
		return Failure[T]{Code: code, Message: message}, nil

	default:
		return nil, NewShapeError("status", fmt.Sprintf("unknown status %q", status), nil)
	}
}

// Unwrap returns the payload of an OK envelope, or an *EnvelopeError
// carrying the code and message of a Failure verbatim.
func Unwrap[T any](resp Response[T]) (T, error) {
	var zero T
	switch r := resp.(type) {
	case OK[T]:
		return r.Data, nil
	case Failure[T]:
		return zero, &EnvelopeError{Code: r.Code, Message: r.Message}
	default:
		return zero, NewShapeError("", "no envelope", nil)
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// nullable reports whether T has a nil value that JSON null can decode into
func nullable[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}
