package domain

import "fmt"

// RetrievalError covers any failure to pull configuration from the
// remote management server: transport errors, timeouts and non-2xx
// responses. StatusCode is 0 when the request never got a response.
type RetrievalError struct {
	DeviceID   string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to retrieve config for device %q: server returned status %d", e.DeviceID, e.StatusCode)
	}

	return fmt.Sprintf("failed to retrieve config for device %q: %v", e.DeviceID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// MalformedInputError reports input that is not valid JSON or lacks the
// expected top-level structure.
type MalformedInputError struct {
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %v", e.Source, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ParseError reports malformed XML given to the schema translator.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse XML %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoSuchPathError reports a parameter path that is not part of the
// implemented data model.
type NoSuchPathError struct {
	Path string
}

func (e *NoSuchPathError) Error() string {
	return fmt.Sprintf("no such path %q in the implemented data model", e.Path)
}
