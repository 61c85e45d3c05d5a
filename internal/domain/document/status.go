package document

import (
	"math"
	"time"
)

// Status is the externally visible state of a document.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusTranslating Status = "translating"
	StatusDone        Status = "done"
	StatusError       Status = "error"
)

// Timing holds the simulated phase durations of a session.
type Timing struct {
	QueueDelay     time.Duration
	TranslateDelay time.Duration
}

// DeriveStatus computes the status of a document of the given age. A
// document without output keeps reporting translating after the simulated
// delays, until its translation job records the output.
func DeriveStatus(age time.Duration, t Timing, hasOutput bool, errMessage string) (Status, int) {
	queuedUntil := t.QueueDelay
	translatingUntil := t.QueueDelay + t.TranslateDelay

	switch {
	case errMessage != "":
		return StatusError, 0
	case age < queuedUntil:
		return StatusQueued, 0
	case age < translatingUntil || !hasOutput:
		remaining := translatingUntil - age
		if remaining < 0 {
			remaining = 0
		}
		return StatusTranslating, int(math.Round(remaining.Seconds()))
	default:
		return StatusDone, 0
	}
}
