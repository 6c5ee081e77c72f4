package model

import (
	"time"

	"github.com/google/uuid"
)

// SwapStatus is the lifecycle state of a swap transaction.
// The path is strictly linear; DECLINED is the only branch and is
// reachable from REQUESTED alone.
type SwapStatus string

const (
	SwapStatusRequested SwapStatus = "REQUESTED"
	SwapStatusAccepted  SwapStatus = "ACCEPTED"
	SwapStatusShipped   SwapStatus = "SHIPPED"
	SwapStatusCompleted SwapStatus = "COMPLETED"
	SwapStatusDeclined  SwapStatus = "DECLINED"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapStatusRequested, SwapStatusAccepted, SwapStatusShipped,
		SwapStatusCompleted, SwapStatusDeclined:
		return true
	}
	return false
}

func (s SwapStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition may succeed.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusCompleted || s == SwapStatusDeclined
}

// CanTransitionTo encodes the full transition table. A status only ever
// advances; nothing moves backward or skips a state.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	switch s {
	case SwapStatusRequested:
		return next == SwapStatusAccepted || next == SwapStatusDeclined
	case SwapStatusAccepted:
		return next == SwapStatusShipped
	case SwapStatusShipped:
		return next == SwapStatusCompleted
	}
	return false
}

// Swap is the transaction record governing one book acquisition.
//
// GiverID is the owner of the target book at request time and is frozen
// for the life of the swap. Exactly one funding path is active:
// OfferedBookID set (barter) or a one-point debit taken at request time.
type Swap struct {
	ID             uuid.UUID  `json:"id"`
	TargetBookID   uuid.UUID  `json:"target_book_id"`
	OfferedBookID  *uuid.UUID `json:"offered_book_id,omitempty"`
	GiverID        uuid.UUID  `json:"giver_id"`
	ReceiverID     uuid.UUID  `json:"receiver_id"`
	Status         SwapStatus `json:"status"`
	TrackingNumber *string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsBarter reports whether the swap is funded by an offered book rather
// than a point.
func (s *Swap) IsBarter() bool {
	return s.OfferedBookID != nil
}
