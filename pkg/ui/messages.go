// Package ui provides the Bubble Tea TUI for the flip scanner.
package ui

import (
	"github.com/fliplab/bzflip/business/flip/domain"
)

// Message types for TUI updates

// ResultsMsg is sent when a flip scan completes.
type ResultsMsg struct {
	Strategy domain.Strategy
	Results  []domain.Result
}

// StatusMsg updates the progress line during the scan.
type StatusMsg struct {
	Message string
}

// ErrorMsg is sent when the scan fails.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartScanMsg signals that the scan should start.
type StartScanMsg struct{}
