package service

import (
	"context"

	"github.com/google/uuid"

	"bookswap-backend/internal/domains/swap/model"
)

// ServiceInterface is the swap state machine. Each method is a single
// atomic transition; the actor is the authenticated caller.
type ServiceInterface interface {
	// Request opens a swap: reserves the target (and offered) book or
	// debits one point, then creates the swap in REQUESTED.
	Request(ctx context.Context, actor uuid.UUID, req model.RequestSwapRequest) (*model.SwapResponse, error)

	// Accept moves REQUESTED -> ACCEPTED (giver only, no ledger change).
	Accept(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error)

	// Decline moves REQUESTED -> DECLINED (giver only), releasing
	// reserved books and refunding a point-path debit.
	Decline(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error)

	// Ship moves ACCEPTED -> SHIPPED (giver only) and stores the
	// tracking number.
	Ship(ctx context.Context, actor, swapID uuid.UUID, trackingNumber string) (*model.SwapResponse, error)

	// Confirm moves SHIPPED -> COMPLETED (receiver only): transfers the
	// target book to the receiver, the offered book (if any) to the
	// giver, and credits the giver one point.
	Confirm(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error)

	// ListMine returns the actor's swaps as giver or receiver, newest
	// first.
	ListMine(ctx context.Context, actor uuid.UUID) ([]model.SwapResponse, error)
}
