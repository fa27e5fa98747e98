package fingerprint

import "fmt"

// Kind categorizes fingerprinting failures.
type Kind string

const (
	// KindConfig marks invalid or missing configuration, detected before
	// any dependency hashing: an absent Dockerfile, an unparseable pattern
	// or key expression.
	KindConfig Kind = "config"

	// KindDependency marks a dependency that matched a pattern but could
	// not be hashed: the file vanished, became unreadable, or a JSON
	// dependency is malformed.
	KindDependency Kind = "dependency"
)

// Error is a fatal fingerprinting failure. Once one is returned no tag may
// be published: a tag computed from partial data is worse than no tag.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit status for this failure: 2 for
// configuration errors, 1 for dependency read errors.
func (e *Error) ExitCode() int {
	if e.Kind == KindConfig {
		return 2
	}
	return 1
}

func newConfigError(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func newDependencyError(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindDependency, Message: fmt.Sprintf(format, args...), Cause: cause}
}
