package service

import (
	"context"

	"github.com/google/uuid"

	"bookswap-backend/internal/domains/book/gateway/googlebooks"
	"bookswap-backend/internal/domains/book/model"
)

// MetadataGateway resolves an ISBN against the external catalog.
// Satisfied by the googlebooks client; faked in tests.
type MetadataGateway interface {
	Lookup(ctx context.Context, isbn string) (*googlebooks.Metadata, error)
}

type ServiceInterface interface {
	// Create lists a copy for the owner, enriching it from the catalog.
	Create(ctx context.Context, ownerID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error)

	// ListAvailable returns the browsable catalog of AVAILABLE copies.
	// viewer is used when the query excludes the caller's own listings.
	ListAvailable(ctx context.Context, viewer uuid.UUID, query model.ListBooksQuery) ([]model.BookResponse, int, error)

	// ListMine returns all of the caller's copies regardless of status.
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]model.BookResponse, error)
}
