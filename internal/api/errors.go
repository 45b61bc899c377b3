package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps the status onto one of the sentinel errors.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

func newStatusError(method, path string, status int, body []byte) *StatusError {
	return &StatusError{Method: method, Path: path, StatusCode: status, Message: messageFromBody(body)}
}

// messageFromBody pulls a human message out of {"message":...} or {"error":...} bodies.
func messageFromBody(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if len(payload.Message) > 0 {
		var s string
		if err := json.Unmarshal(payload.Message, &s); err == nil {
			return s
		}
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	return payload.Error
}
