package toposort

// Error is a constant error value, usable as a sentinel with errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrCycleDetected = Error("cycle detected")
)
