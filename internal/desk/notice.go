package desk

import (
	"errors"
	"fmt"
)

// ValidationError is a client-side precondition failure. It never reaches
// the network.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	case e.Value != "":
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	default:
		return fmt.Sprintf("%s is required", e.Field)
	}
}

// errNoSelection is reported by selection-dependent actions.
var errNoSelection = &ValidationError{Field: "selection", Reason: "no row selected"}

// IsValidation reports whether err is a client-side precondition failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient user-visible message.
type Notice struct {
	Level Level
	Text  string
	Err   error
}

// Health is the backend liveness indicator.
type Health struct {
	OK   bool
	Text string
}

// classify maps an error to the notice level it is shown with.
func classify(err error) Level {
	if IsValidation(err) {
		return LevelWarning
	}
	return LevelError
}
