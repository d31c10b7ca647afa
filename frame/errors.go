package frame

import "fmt"

// MissingAxisError indicates a coordinate mapping lacks a registered axis.
type MissingAxisError struct {
	Axis string
}

func (e *MissingAxisError) Error() string {
	return fmt.Sprintf("coordinate missing axis %q", e.Axis)
}

// UnknownAxisError indicates a coordinate mapping carries a key that is not
// a registered axis. The key set must match the registry exactly.
type UnknownAxisError struct {
	Axis string
}

func (e *UnknownAxisError) Error() string {
	return fmt.Sprintf("coordinate has unknown axis %q", e.Axis)
}

// OutOfRangeError indicates a coordinate value outside [0, 1].
type OutOfRangeError struct {
	Axis  string
	Value float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("coordinate value %g on axis %q outside [0, 1]", e.Value, e.Axis)
}
