package helpers

import "errors"

var (
	// ErrNilSequence is returned by helpers that require a sequence and got none.
	ErrNilSequence = errors.New("sequence is nil")

	// ErrNotSequence is returned by helpers that require a sequence and got another value.
	ErrNotSequence = errors.New("value is not a sequence")
)

// ValidationError reports an invalid argument passed to a helper by a template.
type ValidationError struct {
	Helper string
	Msg    string
}

func (e *ValidationError) Error() string {
	return e.Helper + ": " + e.Msg
}

func invalid(helper, msg string) error {
	return &ValidationError{Helper: helper, Msg: msg}
}
