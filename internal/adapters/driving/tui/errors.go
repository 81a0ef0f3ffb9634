package tui

import "errors"

// ErrMissingInspectService is returned when the inspect service is not provided.
var ErrMissingInspectService = errors.New("tui: inspect service is required")

// ErrMissingPath is returned when no file is given to browse.
var ErrMissingPath = errors.New("tui: file path is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
