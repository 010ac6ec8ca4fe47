package utils

// AppError carries the failing operation alongside a human-facing message,
// so CLI output can say what step broke without losing the cause chain.
type AppError struct {
	Op  string
	Msg string
	Err error
}

func (e *AppError) Error() string {
	s := e.Op + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError constructs an AppError; err may be nil.
func NewAppError(op, msg string, err error) error {
	return &AppError{Op: op, Msg: msg, Err: err}
}
