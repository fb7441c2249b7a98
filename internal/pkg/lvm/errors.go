// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"errors"
	"fmt"
)

var (
	// ErrCommand is matched by errors returned when lvm ran but exited with a
	// non-zero status other than "not found".
	ErrCommand = errors.New("lvm command failed")

	// ErrInternal is matched by errors returned when lvm could not be started.
	ErrInternal = errors.New("lvm command could not be run")

	// ErrMalformedOutput is matched by errors returned when the lvm report
	// could not be decoded.
	ErrMalformedOutput = errors.New("malformed lvm output")

	// ErrNotFound is returned when the lvm object is not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooMany is returned when multiple objects are found with the same
	// name, when only one is expected. This should never happen.
	ErrTooMany = errors.New("multiple objects with the same name")
)

// CommandError is returned when lvm exits with a non-zero status.
type CommandError struct {
	Command string
	// Args is the full argv after the lvm binary, subcommand included.
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("could not run `%s` with args `%q`: %s", e.Command, e.Args, e.Stderr)
}

func (e *CommandError) Is(target error) bool {
	return target == ErrCommand
}

// InternalError is returned when the lvm process could not be spawned.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("could not run lvm command: %v", e.Err)
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// MalformedOutputError is returned when lvm output can't be turned into
// records. Fragment holds the part of the output that was rejected.
type MalformedOutputError struct {
	Cause    string
	Fragment string
	Err      error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("output of lvm command is malformed: %s -> %s: %v", e.Cause, e.Fragment, e.Err)
	}
	return fmt.Sprintf("output of lvm command is malformed: %s -> %s", e.Cause, e.Fragment)
}

func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when the requested resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("requested resource not found: %s", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError is returned when a value object is constructed from a
// value that breaks its rule.
type ValidationError struct {
	Kind  string
	Value string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Rule)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IgnoreNotFound returns nil if the error is ErrNotFound.
func IgnoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// IsNotFound reports whether err is, or wraps, a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
