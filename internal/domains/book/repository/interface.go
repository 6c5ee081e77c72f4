package repository

import (
	"context"

	"github.com/google/uuid"

	"bookswap-backend/internal/domains/book/model"
)

// Repository is the read/create side of the book ledger. Status
// transitions (reserve/finalize/release) are owned by the swap engine and
// happen inside its transaction boundary, never here.
type Repository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// ListAvailable returns AVAILABLE copies, newest first, optionally
	// excluding one owner's listings. Also returns the total count for
	// pagination metadata.
	ListAvailable(ctx context.Context, excludeOwner *uuid.UUID, limit, offset int) ([]model.Book, int, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error)

	// CountByOwner backs the books_listed profile counter; always computed
	// live, never stored.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
