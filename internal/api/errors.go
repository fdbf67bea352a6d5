package api

import "fmt"

// Code is the machine-readable error class returned to callers.
type Code string

const (
	CodeInvalidInput        Code = "invalid_input"
	CodeParameterOutOfRange Code = "parameter_out_of_range"
	CodeDecodingFailure     Code = "decoding_failure"
	CodeBudgetExceeded      Code = "budget_exceeded"
)

// Error is the only error type Service methods return. A transport
// layer can serialize it as-is.
type Error struct {
	Code    Code   `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
