// Package tui provides the interactive row browser of storycsv.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Inspect reads and exports the browsed file.
	Inspect driving.InspectService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(inspect driving.InspectService) *Ports {
	return &Ports{Inspect: inspect}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Inspect == nil {
		return ErrMissingInspectService
	}
	return nil
}
