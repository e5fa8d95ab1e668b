package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"petmanager/internal/common"
	"petmanager/internal/normalize"
)

// HTTPError is a non-2xx response. Message carries the server-supplied
// message field when one could be extracted from the body.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{Status: status, Body: body}
	var m map[string]any
	if sonic.Unmarshal(body, &m) == nil {
		e.Message = normalize.StringField(m, "message", "error", "detail")
	}
	return e
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// Unwrap maps well-known statuses to sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrConflict
	default:
		return nil
	}
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// HTTPError.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// MessageOf returns the server-supplied message carried by err, or "".
func MessageOf(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return ""
}
