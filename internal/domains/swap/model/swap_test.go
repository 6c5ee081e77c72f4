package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSwapStatusTransitions(t *testing.T) {
	all := []SwapStatus{
		SwapStatusRequested, SwapStatusAccepted, SwapStatusShipped,
		SwapStatusCompleted, SwapStatusDeclined,
	}

	allowed := map[SwapStatus][]SwapStatus{
		SwapStatusRequested: {SwapStatusAccepted, SwapStatusDeclined},
		SwapStatusAccepted:  {SwapStatusShipped},
		SwapStatusShipped:   {SwapStatusCompleted},
		SwapStatusCompleted: {},
		SwapStatusDeclined:  {},
	}

	for from, nexts := range allowed {
		ok := make(map[SwapStatus]bool, len(nexts))
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestSwapStatusIsTerminal(t *testing.T) {
	assert.True(t, SwapStatusCompleted.IsTerminal())
	assert.True(t, SwapStatusDeclined.IsTerminal())
	assert.False(t, SwapStatusRequested.IsTerminal())
	assert.False(t, SwapStatusAccepted.IsTerminal())
	assert.False(t, SwapStatusShipped.IsTerminal())
}

func TestSwapStatusIsValid(t *testing.T) {
	assert.True(t, SwapStatusRequested.IsValid())
	assert.False(t, SwapStatus("CANCELLED").IsValid())
	assert.False(t, SwapStatus("").IsValid())
}

func TestIsBarter(t *testing.T) {
	offered := uuid.New()

	barter := &Swap{OfferedBookID: &offered}
	assert.True(t, barter.IsBarter())

	point := &Swap{}
	assert.False(t, point.IsBarter())
}

func TestRequestSwapRequestValidate(t *testing.T) {
	target := uuid.New()
	offered := uuid.New()

	assert.NoError(t, RequestSwapRequest{TargetBookID: target}.Validate())
	assert.NoError(t, RequestSwapRequest{TargetBookID: target, OfferedBookID: &offered}.Validate())

	assert.Error(t, RequestSwapRequest{}.Validate(), "target is required")
	assert.Error(t, RequestSwapRequest{TargetBookID: target, OfferedBookID: &target}.Validate(),
		"offering the target itself is rejected")
}
