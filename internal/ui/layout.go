package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the controls pane
	// stacks above the list instead of sitting beside it.
	LayoutCompactWidth = 90

	// ControlsPaneWidth is the width of the controls pane in wide layouts.
	ControlsPaneWidth = 34
)

// Modal sizes.
const (
	DetailModalWidth = 70
	LogModalWidth    = 100
	HelpModalWidth   = 44
)

// Log display limits.
const (
	// LogTailLines is the number of application log lines shown in the log modal.
	LogTailLines = 300
)

// Timing defaults used when Options leave them zero.
const (
	DefaultFilterDebounce  = 2000 * time.Millisecond
	DefaultRefreshThrottle = 2000 * time.Millisecond
)

// Field limits.
const (
	NumericCharLimit = 9
	FilterCharLimit  = 64
)
