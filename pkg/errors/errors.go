package errors

import "errors"

// Codes shared by the dashboard domains.
const (
	CodeInvalidInput     = "invalid_input"
	CodeNotAuthenticated = "not_authenticated"
	CodeNoReport         = "no_report"
	CodeExportFailed     = "export_failed"
	CodeSessionStore     = "session_store_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// Invalid builds the client-side validation failure that blocks a backend call.
func Invalid(message string) error {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

// Message is the user-facing text of err: the AppError message when err carries one,
// otherwise err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
