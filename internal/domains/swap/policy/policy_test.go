package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bookswap-backend/internal/domains/swap/model"
)

func TestRoleOf(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()
	swap := &model.Swap{GiverID: giver, ReceiverID: receiver}

	assert.Equal(t, RoleGiver, RoleOf(giver, swap))
	assert.Equal(t, RoleReceiver, RoleOf(receiver, swap))
	assert.Equal(t, RoleNone, RoleOf(uuid.New(), swap))
}

func TestCanPerform(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()
	stranger := uuid.New()
	swap := &model.Swap{GiverID: giver, ReceiverID: receiver}

	tests := []struct {
		name       string
		actor      uuid.UUID
		transition Transition
		allowed    bool
	}{
		{"giver accepts", giver, TransitionAccept, true},
		{"giver declines", giver, TransitionDecline, true},
		{"giver ships", giver, TransitionShip, true},
		{"giver cannot confirm", giver, TransitionConfirm, false},
		{"receiver confirms", receiver, TransitionConfirm, true},
		{"receiver cannot accept", receiver, TransitionAccept, false},
		{"receiver cannot decline", receiver, TransitionDecline, false},
		{"receiver cannot ship", receiver, TransitionShip, false},
		{"stranger can do nothing", stranger, TransitionAccept, false},
		{"unknown transition", giver, Transition("cancel"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanPerform(tt.actor, swap, tt.transition))
		})
	}
}
