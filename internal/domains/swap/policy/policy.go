// Package policy centralizes the role checks for swap transitions so
// each transition's rule is declared once and tested independently of
// the state machine.
package policy

import (
	"github.com/google/uuid"

	"bookswap-backend/internal/domains/swap/model"
)

// Transition names an operation on a swap that requires authorization.
type Transition string

const (
	TransitionAccept  Transition = "accept"
	TransitionDecline Transition = "decline"
	TransitionShip    Transition = "ship"
	TransitionConfirm Transition = "confirm"
)

// Role of an actor relative to a swap.
type Role string

const (
	RoleGiver    Role = "giver"
	RoleReceiver Role = "receiver"
	RoleNone     Role = "none"
)

// transitionRoles is the authorization table: which role a transition
// requires. Only the giver accepts, declines or ships; only the
// receiver confirms receipt.
var transitionRoles = map[Transition]Role{
	TransitionAccept:  RoleGiver,
	TransitionDecline: RoleGiver,
	TransitionShip:    RoleGiver,
	TransitionConfirm: RoleReceiver,
}

// RoleOf returns the actor's role relative to the swap.
func RoleOf(actor uuid.UUID, s *model.Swap) Role {
	switch actor {
	case s.GiverID:
		return RoleGiver
	case s.ReceiverID:
		return RoleReceiver
	}
	return RoleNone
}

// CanPerform decides whether the actor may attempt the transition.
// State preconditions are the state machine's concern, not the guard's.
func CanPerform(actor uuid.UUID, s *model.Swap, t Transition) bool {
	required, ok := transitionRoles[t]
	if !ok {
		return false
	}
	return RoleOf(actor, s) == required
}
