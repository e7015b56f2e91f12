package types

import (
	"errors"
	"fmt"
)

// UsageError is returned when the program is invoked incorrectly.
type UsageError struct {
	Message string
}

func (err *UsageError) Error() string { return err.Message }

func (wanted *UsageError) CompareErr(err error) error {
	var other *UsageError
	if !errors.As(err, &other) {
		return fmt.Errorf(
			"wanted `*types.UsageError`; found `%T`: %v",
			err,
			err,
		)
	}
	if wanted.Message != other.Message {
		return fmt.Errorf(
			"UsageError.Message: wanted `%s`; found `%s`",
			wanted.Message,
			other.Message,
		)
	}
	return nil
}

// MalformedInputError is returned when an input report violates the
// delimited-text grammar or lacks the required header.
type MalformedInputError struct {
	// Source names the input report.
	Source string

	// Line is the line of the source where the problem was found, or zero
	// if unknown.
	Line int

	// Reason describes the problem.
	Reason string

	// Err is the underlying parser error, if any.
	Err error
}

func (err *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed input `%s`", err.Source)
	if err.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, err.Line)
	}
	if err.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, err.Reason)
	}
	if err.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err.Err)
	}
	return msg
}

func (err *MalformedInputError) Unwrap() error { return err.Err }

func (wanted *MalformedInputError) CompareErr(err error) error {
	var other *MalformedInputError
	if !errors.As(err, &other) {
		return fmt.Errorf(
			"wanted `*types.MalformedInputError`; found `%T`: %v",
			err,
			err,
		)
	}
	if wanted.Source != other.Source {
		return fmt.Errorf(
			"MalformedInputError.Source: wanted `%s`; found `%s`",
			wanted.Source,
			other.Source,
		)
	}
	if wanted.Line != other.Line {
		return fmt.Errorf(
			"MalformedInputError.Line: wanted `%d`; found `%d`",
			wanted.Line,
			other.Line,
		)
	}
	return nil
}

// OutputWriteError is returned when an output report cannot be created or
// written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (err *OutputWriteError) Error() string {
	return fmt.Sprintf("writing report `%s`: %v", err.Path, err.Err)
}

func (err *OutputWriteError) Unwrap() error { return err.Err }

func (wanted *OutputWriteError) CompareErr(err error) error {
	var other *OutputWriteError
	if !errors.As(err, &other) {
		return fmt.Errorf(
			"wanted `*types.OutputWriteError`; found `%T`: %v",
			err,
			err,
		)
	}
	if wanted.Path != "" && wanted.Path != other.Path {
		return fmt.Errorf(
			"OutputWriteError.Path: wanted `%s`; found `%s`",
			wanted.Path,
			other.Path,
		)
	}
	return nil
}

// IOError is returned when an input report cannot be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (err *IOError) Error() string {
	return fmt.Sprintf("reading `%s`: %v", err.Path, err.Err)
}

func (err *IOError) Unwrap() error { return err.Err }

func (wanted *IOError) CompareErr(err error) error {
	var other *IOError
	if !errors.As(err, &other) {
		return fmt.Errorf(
			"wanted `*types.IOError`; found `%T`: %v",
			err,
			err,
		)
	}
	if wanted.Path != "" && wanted.Path != other.Path {
		return fmt.Errorf(
			"IOError.Path: wanted `%s`; found `%s`",
			wanted.Path,
			other.Path,
		)
	}
	return nil
}
