package kernel

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrTransportRequired is returned when no transport is configured.
	ErrTransportRequired = errors.New("transport is required: use WithTransport or WithTransportClient")

	// ErrModelRequired is returned when WithModel is not specified.
	ErrModelRequired = errors.New("model is required: use WithModel")
)

// TransportError wraps a completion transport failure. The round is
// aborted; the user turn stays appended. Not retried.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// FunctionNotFoundError reports that the model requested a function
// absent from the registry. Recovered per round; no turn is appended.
type FunctionNotFoundError struct {
	Name string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function not found: %q", e.Name)
}

// InvocationError reports that a resolved function failed. Recovered
// per round; no turn is appended.
type InvocationError struct {
	Name  string
	Cause error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("function %q invocation failed: %v", e.Name, e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// MalformedArgumentsError reports that the model's argument payload is
// not a JSON object. Treated like an invocation failure: recovered,
// never fatal to the session.
type MalformedArgumentsError struct {
	Name      string
	Arguments string
	Cause     error
}

func (e *MalformedArgumentsError) Error() string {
	return fmt.Sprintf("function %q received malformed arguments: %v", e.Name, e.Cause)
}

func (e *MalformedArgumentsError) Unwrap() error {
	return e.Cause
}
