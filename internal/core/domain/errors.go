package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no normaliser handles a manuscript format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotImplemented indicates a service was built without the adapter it needs.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidSetting indicates an unknown settings key or a value of the wrong type.
	ErrInvalidSetting = errors.New("invalid setting")

	// No-data errors.
	// These are reported instead of dividing by zero or indexing past the end.

	// ErrNoData indicates an input produced nothing to work on.
	ErrNoData = errors.New("no data")

	// ErrEmptyFile indicates a CSV file contained no rows at all.
	ErrEmptyFile = fmt.Errorf("file is empty: %w", ErrNoData)

	// ErrNoSegments indicates segmentation produced zero segments.
	ErrNoSegments = fmt.Errorf("no segments found: %w", ErrNoData)
)
