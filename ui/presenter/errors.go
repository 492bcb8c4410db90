package presenter

import "errors"

var (
	// ErrNoInputSelected is returned when an operation needs a frame or file that is not there.
	ErrNoInputSelected = errors.New("no input selected")
	// ErrRequestPending rejects a submission while another one is in flight.
	ErrRequestPending = errors.New("request already pending")
	// ErrEmptyText rejects an edit with no text.
	ErrEmptyText = errors.New("text is empty")
	// ErrNoMultipliers rejects edited text that contains no multiplier tokens.
	ErrNoMultipliers = errors.New("no multipliers in text")
)
