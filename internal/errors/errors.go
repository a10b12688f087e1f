package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType is the part of the sample an AppError came from.
type ErrorType int

const (
	ErrorUnknown ErrorType = iota
	// ErrorConfiguration covers flags, the config file and builder validation.
	ErrorConfiguration
	// ErrorNetwork covers the data plane and the control plane.
	ErrorNetwork
	// ErrorIntegration covers device-mode destinations such as Sprig.
	ErrorIntegration
	// ErrorStorage covers the persisted identity.
	ErrorStorage
	// ErrorUI covers the terminal screen.
	ErrorUI
)

var typeNames = map[ErrorType]string{
	ErrorConfiguration: "Configuration Error",
	ErrorNetwork:       "Network Error",
	ErrorIntegration:   "Integration Error",
	ErrorStorage:       "Storage Error",
	ErrorUI:            "UI Error",
}

// String returns the name shown to the user for t.
func (t ErrorType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown Error"
}

// recoverable reports whether running the sample again may succeed without
// changing its configuration: the planes may come back and an integration
// is set up again from a fresh source config.
func (t ErrorType) recoverable() bool {
	return t == ErrorNetwork || t == ErrorIntegration
}

// AppError is an error tagged with its category and optional context.
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
	Context   map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without a cause.
func New(errorType ErrorType, message string) *AppError {
	return Wrap(errorType, message, nil)
}

// Wrap creates an AppError around cause.
func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errorType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds a key/value pair, e.g. the config path that failed.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	e.Context[key] = value
	return e
}

func (e *AppError) GetTypeString() string {
	return e.Type.String()
}

func (e *AppError) IsRecoverable() bool {
	return e.Type.recoverable()
}

// TypeOf returns the category of the first AppError in err's chain, or
// ErrorUnknown when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorUnknown
}

// Recoverable reports whether err carries a recoverable AppError.
func Recoverable(err error) bool {
	return TypeOf(err).recoverable()
}

// Describe formats err for the user, prefixed with its category when it
// has one.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if t := TypeOf(err); t != ErrorUnknown {
		return t.String() + ": " + err.Error()
	}
	return err.Error()
}

func NewConfigError(message string, cause error) *AppError {
	return Wrap(ErrorConfiguration, message, cause)
}

func NewNetworkError(message string, cause error) *AppError {
	return Wrap(ErrorNetwork, message, cause)
}

func NewIntegrationError(message string, cause error) *AppError {
	return Wrap(ErrorIntegration, message, cause)
}

func NewStorageError(message string, cause error) *AppError {
	return Wrap(ErrorStorage, message, cause)
}

func NewUIError(message string, cause error) *AppError {
	return Wrap(ErrorUI, message, cause)
}
