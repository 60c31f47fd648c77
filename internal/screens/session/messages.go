package session

import "time"

// generateDoneMsg is sent when the generation request resolves.
type generateDoneMsg struct {
	Err error
}

// clockTickMsg refreshes the countdown display once per second.
type clockTickMsg time.Time

// finishedMsg is sent after grading so the screen can hand off to the
// summary view.
type finishedMsg struct{}
