// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package is an *Error whose Kind
// is one of these, so errors.Is(err, E_operation_failed) works.
var (
	// libnorm returned its invalid sentinel, or the handle's Instance or
	// Session was already destroyed.
	E_invalid_handle = errors.New("invalid handle")

	// Caller contract violation, e.g. a stream call on a data Object.
	E_invalid_parameter = errors.New("invalid parameter")

	// libnorm rejected a request on a valid handle.
	E_operation_failed = errors.New("operation failed")

	// File enqueue or file object failure.
	E_file_error = errors.New("file error")

	// libnorm returned no data where data was expected.
	E_null_pointer = errors.New("null pointer")

	// A text argument contains a NUL byte and cannot be passed as a C string.
	E_string_encoding = errors.New("string contains NUL byte")
)

type Error struct {
	Kind   error
	Op     string
	Detail string
}

func (o *Error) Error() string {
	switch {
	case o.Detail != "":
		return fmt.Sprintf("norm: %v: %v: %v", o.Op, o.Kind, o.Detail)
	case o.Op != "":
		return fmt.Sprintf("norm: %v: %v", o.Op, o.Kind)
	}
	return "norm: " + o.Kind.Error()
}

func (o *Error) Unwrap() error {
	return o.Kind
}

func new_error(kind error, op, detail string) error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

func invalid_handle(op string) error {
	return new_error(E_invalid_handle, op, "")
}

func invalid_parameter(op, detail string) error {
	return new_error(E_invalid_parameter, op, detail)
}

func operation_failed(op, detail string) error {
	return new_error(E_operation_failed, op, detail)
}

func file_error(op, detail string) error {
	return new_error(E_file_error, op, detail)
}

func null_pointer(op string) error {
	return new_error(E_null_pointer, op, "")
}

// bool_result converts a libnorm boolean return into an error.
func bool_result(ok bool, op, detail string) error {
	if ok {
		return nil
	}
	return operation_failed(op, detail)
}

func check_string(op, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return new_error(E_string_encoding, op, fmt.Sprintf("%q", s))
	}
	return nil
}
