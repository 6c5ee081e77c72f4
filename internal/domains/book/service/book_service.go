package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookswap-backend/internal/domains/book/gateway/googlebooks"
	"bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/book/repository"
	"bookswap-backend/pkg/cache"
	"bookswap-backend/pkg/logger"
)

type bookService struct {
	repo     repository.Repository
	gateway  MetadataGateway
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewBookService(repo repository.Repository, gateway MetadataGateway, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &bookService{
		repo:     repo,
		gateway:  gateway,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func catalogCacheKey(isbn string) string {
	return "catalog:isbn:" + isbn
}

// lookupMetadata consults the Redis cache before the catalog. Cache
// failures are logged and ignored; the catalog stays authoritative.
func (s *bookService) lookupMetadata(ctx context.Context, isbn string) (*googlebooks.Metadata, error) {
	key := catalogCacheKey(isbn)

	var cached googlebooks.Metadata
	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("catalog cache read failed", map[string]interface{}{
				"isbn": isbn, "error": err.Error(),
			})
		} else if found {
			return &cached, nil
		}
	}

	meta, err := s.gateway.Lookup(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, meta, s.cacheTTL); err != nil {
			logger.Warn("catalog cache write failed", map[string]interface{}{
				"isbn": isbn, "error": err.Error(),
			})
		}
	}

	return meta, nil
}

func (s *bookService) Create(ctx context.Context, ownerID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	meta, err := s.lookupMetadata(ctx, req.ISBN)
	if err != nil {
		if errors.Is(err, googlebooks.ErrVolumeNotFound) {
			return nil, model.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	now := time.Now()
	book := &model.Book{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      meta.Title,
		Author:     meta.Author,
		ISBN:       req.ISBN,
		Condition:  model.BookCondition(req.Condition),
		CoverURL:   meta.CoverURL,
		Categories: pq.StringArray(meta.Categories),
		Status:     model.BookStatusAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	logger.Info("book listed", map[string]interface{}{
		"book_id": book.ID,
		"owner":   ownerID,
		"isbn":    book.ISBN,
	})

	resp := book.ToResponse()
	return &resp, nil
}

func (s *bookService) ListAvailable(ctx context.Context, viewer uuid.UUID, query model.ListBooksQuery) ([]model.BookResponse, int, error) {
	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}

	var excludeOwner *uuid.UUID
	if query.ExcludeMine && viewer != uuid.Nil {
		excludeOwner = &viewer
	}

	offset := (query.Page - 1) * query.Limit
	books, total, err := s.repo.ListAvailable(ctx, excludeOwner, query.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list available books: %w", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, books[i].ToResponse())
	}

	return responses, total, nil
}

func (s *bookService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]model.BookResponse, error) {
	books, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list own books: %w", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, books[i].ToResponse())
	}

	return responses, nil
}
