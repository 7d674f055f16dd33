package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/branchadmin/internal/common"
)

// APIError is returned for every failed call. It unwraps to one of the
// common sentinels (ErrUnauthorized, ErrThrottled, ErrUnavailable,
// ErrBadResponse) and, for transport failures, to the underlying error.
type APIError struct {
	StatusCode int
	// Message is the server's own explanation, when it sent one.
	Message string
	Err     error

	cause error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

// ServerMessage extracts the server-provided message from err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapStatus converts a non-2xx response into an APIError.
func mapStatus(code int, body []byte) error {
	var sentinel error
	switch {
	case code == http.StatusBadRequest,
		code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		code == http.StatusUnprocessableEntity:
		sentinel = common.ErrUnauthorized
	case code == http.StatusTooManyRequests:
		sentinel = common.ErrThrottled
	case code >= http.StatusInternalServerError:
		sentinel = common.ErrUnavailable
	default:
		sentinel = common.ErrBadResponse
	}

	return &APIError{StatusCode: code, Message: bodyMessage(body), Err: sentinel}
}

func bodyMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}

func transportError(err error) error {
	return &APIError{Err: common.ErrUnavailable, cause: err}
}

func badResponse(code int, reason string) error {
	return &APIError{StatusCode: code, Err: common.ErrBadResponse, cause: errors.New(reason)}
}
