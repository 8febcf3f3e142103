package http

import (
	"fmt"
	"net/http"
)

// AppError is an error that knows which HTTP status it maps to, so
// handlers can hand it straight to AppErrorResponse.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError attaches the underlying cause.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// UpstreamError flags a market-data feed failure. The scan did not
// run; retrying is the client's call.
func UpstreamError(message string) *AppError {
	return &AppError{Code: "ERR_UPSTREAM", Message: message, Status: http.StatusBadGateway}
}
