package domain

import (
	"errors"

	banners "storefront-banners/internal/features/banners/domain"
)

// State is the display state of the carousel.
type State string

const (
	// StateLoading means no banner list has been received yet.
	StateLoading State = "loading"
	// StateEmpty means the list was received and has no banners.
	StateEmpty State = "empty"
	// StateShowing means a banner is displayed.
	StateShowing State = "showing"
)

// ErrIndexOutOfRange is returned when selecting a slide that does not exist.
var ErrIndexOutOfRange = errors.New("slide index out of range")

// Trigger names what caused an index change.
type Trigger string

const (
	TriggerTimer  Trigger = "timer"
	TriggerNext   Trigger = "next"
	TriggerPrev   Trigger = "prev"
	TriggerSelect Trigger = "select"
)

// Snapshot is a consistent view of the carousel at one instant.
type Snapshot struct {
	State   State           `json:"state"`
	Index   int             `json:"index"`
	Total   int             `json:"total"`
	Current *banners.Banner `json:"current,omitempty"`
}

// NextIndex advances by one, wrapping. A zero length is treated as one.
func NextIndex(current, length int) int {
	if length <= 0 {
		length = 1
	}
	return (current + 1) % length
}

// PrevIndex steps back by one, wrapping. A zero length is treated as one.
func PrevIndex(current, length int) int {
	if length <= 0 {
		length = 1
	}
	return (current - 1 + length) % length
}
