package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDatabaseLoad matches every DatabaseLoadError
	ErrDatabaseLoad = errors.New("timezone database could not be loaded")
	// ErrMalformedResult matches every MalformedResultError
	ErrMalformedResult = errors.New("malformed engine result")
)

// DatabaseLoadError reports a timezone database path that is unreadable
// or holds no zone definitions. Retrying without fixing the path is pointless.
type DatabaseLoadError struct {
	Path string
	Err  error
}

func (e *DatabaseLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load timezone database %q", e.Path)
	}
	return fmt.Sprintf("load timezone database %q: %v", e.Path, e.Err)
}

func (e *DatabaseLoadError) Unwrap() error {
	return e.Err
}

func (e *DatabaseLoadError) Is(target error) bool {
	return target == ErrDatabaseLoad
}

// MalformedResultError reports an engine result that violates the entity contract
type MalformedResultError struct {
	Reason string
	Raw    []byte
	Err    error
}

func (e *MalformedResultError) Error() string {
	if e.Err == nil {
		return "malformed engine result: " + e.Reason
	}
	return fmt.Sprintf("malformed engine result: %s: %v", e.Reason, e.Err)
}

func (e *MalformedResultError) Unwrap() error {
	return e.Err
}

func (e *MalformedResultError) Is(target error) bool {
	return target == ErrMalformedResult
}
