package tui

import (
	"github.com/rgehrsitz/medloans/internal/compare"
)

// Pane selects what the lower half of the screen shows
type Pane int

const (
	PaneDetail Pane = iota
	PaneBreakdown
	PaneRecommendation
)

var paneNames = []string{"Strategy Detail", "Balance Breakdown", "Recommendation"}

// String returns the pane's display name
func (p Pane) String() string {
	if p < 0 || int(p) >= len(paneNames) {
		return "Unknown"
	}
	return paneNames[p]
}

// Next cycles to the following pane
func (p Pane) Next() Pane {
	return Pane((int(p) + 1) % len(paneNames))
}

// ComparisonLoadedMsg carries a finished comparison run
type ComparisonLoadedMsg struct {
	Comparison *compare.ComparisonSet
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
