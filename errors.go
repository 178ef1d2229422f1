package ward

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusCoder is implemented by errors or responses that carry an HTTP
// status code.
type StatusCoder interface {
	StatusCode() int
}

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error returns the error message.
func (e *HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int { return e.Status }

// Error returns an error with the given HTTP status code and message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns a formatted error with the given HTTP status code.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// ErrorHandler is a custom translation from an unexpected error to a
// response. It sees every pipeline failure except validation rejections,
// which are answered before it could run.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ErrorResponse is the default error body. Errors is populated only for
// validation rejections.
type ErrorResponse struct {
	Message string  `json:"message"`
	Errors  []Issue `json:"errors,omitempty"`
}

// errorStatus maps an error to a response status. A StatusCoder keeps its
// own code; anything else with a message is treated as a client fault.
func errorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	if err.Error() != "" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeErrorResponse is the default ErrorHandler behavior.
func writeErrorResponse(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	message := err.Error()
	if message == "" {
		message = "Internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}
