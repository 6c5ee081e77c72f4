package repository

import (
	"context"

	"github.com/google/uuid"

	bookModel "bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/swap/model"
)

// Store is the unit of work a single swap transition runs against. All
// reads that inform a decision and all writes that apply it go through
// one Store instance inside one isolated transaction; a half-applied
// reservation must be impossible.
type Store interface {
	// BookForUpdate reads a book row with a row lock held for the rest
	// of the transaction. Returns bookModel.ErrBookNotFound.
	BookForUpdate(ctx context.Context, id uuid.UUID) (*bookModel.Book, error)

	// ReserveBook moves AVAILABLE -> RESERVED via compare-and-swap on
	// status. Returns bookModel.ErrBookNotAvailable when the row is in
	// any other state, so racing requesters get exactly one winner.
	ReserveBook(ctx context.Context, id uuid.UUID) error

	// FinalizeBook moves RESERVED -> TRANSFERRED and reassigns
	// ownership to newOwner.
	FinalizeBook(ctx context.Context, id, newOwner uuid.UUID) error

	// ReleaseBook reverts RESERVED -> AVAILABLE (declined swaps only).
	ReleaseBook(ctx context.Context, id uuid.UUID) error

	// DebitPoints subtracts n from the user's balance, failing with
	// model.ErrInsufficientPoints if the balance would go negative.
	DebitPoints(ctx context.Context, userID uuid.UUID, n int) error

	CreditPoints(ctx context.Context, userID uuid.UUID, n int) error

	CreateSwap(ctx context.Context, swap *model.Swap) error

	// SwapForUpdate reads a swap row with a row lock held. Returns
	// model.ErrSwapNotFound.
	SwapForUpdate(ctx context.Context, id uuid.UUID) (*model.Swap, error)

	// UpdateSwap persists status and tracking number changes.
	UpdateSwap(ctx context.Context, swap *model.Swap) error
}

// Repository owns swap persistence. InTx is the only write path; the
// remaining methods are read-only projections.
type Repository interface {
	// InTx runs fn inside a serializable transaction. A serialization
	// failure surfaces as model.ErrConflict.
	InTx(ctx context.Context, fn func(Store) error) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Swap, error)

	// ListByUser returns swaps where the user is giver or receiver,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Swap, error)

	// CountCompletedByReceiver backs the books_received profile counter.
	CountCompletedByReceiver(ctx context.Context, userID uuid.UUID) (int, error)
}
