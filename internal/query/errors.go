package query

import "errors"

// Kind classifies a failed query.
type Kind int

const (
	// KindIO covers open, stat, seek, read and directory listing failures.
	KindIO Kind = iota + 1
	// KindBadInput means a bound could not be parsed. No I/O was attempted.
	KindBadInput
	// KindNotFound means a directory holds no candidate log file.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindBadInput:
		return "bad input"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is returned by Engine for every failed query. Its message is meant
// for operators and includes the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or zero when err is not a query error.
func KindOf(err error) Kind {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr.Kind
	}
	return 0
}
