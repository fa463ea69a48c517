package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// NetworkError represents a network-related error that may be retriable
type NetworkError struct {
	Op        string // Operation that failed (e.g., "fetch_price", "load_template")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// NewFatalNetworkError creates a non-retriable network error
func NewFatalNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: false}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidationError is a user-facing input problem. The triggering
// operation aborts without touching any state.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a user-facing validation error
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// ExportError means the composed image could not be encoded. It carries a
// remediation hint so the caller can show something actionable instead of
// a generic failure.
type ExportError struct {
	Hint string
	Err  error
}

func (e *ExportError) Error() string {
	return "export failed: " + e.Err.Error() + " (" + e.Hint + ")"
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError wraps an encode failure with the standard remediation hint
func NewExportError(err error) *ExportError {
	return &ExportError{
		Hint: "unable to export image, try a different template",
		Err:  err,
	}
}

var (
	// ErrNoTemplate is returned when composing without a loaded template image.
	ErrNoTemplate = errors.New("no template image loaded")

	// ErrEmptyCaption is returned when saving a meme with no text at all. Not retriable.
	ErrEmptyCaption = errors.New("caption text is required")

	// ErrStaleLoad is returned when a template load completes after a newer selection superseded it.
	ErrStaleLoad = errors.New("template load superseded")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
