package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	bookModel "bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/swap/model"
	"bookswap-backend/internal/domains/swap/repository"
)

// memRepository is an in-memory Repository used to exercise the state
// machine without a database. InTx serializes callers with a mutex and
// rolls the whole state back when fn fails, mirroring the transaction
// semantics the service relies on.
type memRepository struct {
	mu     sync.Mutex
	books  map[uuid.UUID]*bookModel.Book
	points map[uuid.UUID]int
	swaps  map[uuid.UUID]*model.Swap
}

func newMemRepository() *memRepository {
	return &memRepository{
		books:  make(map[uuid.UUID]*bookModel.Book),
		points: make(map[uuid.UUID]int),
		swaps:  make(map[uuid.UUID]*model.Swap),
	}
}

func (r *memRepository) addUser(points int) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.points[id] = points
	return id
}

func (r *memRepository) addBook(owner uuid.UUID, status bookModel.BookStatus) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.books[id] = &bookModel.Book{
		ID:        id,
		OwnerID:   owner,
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		ISBN:      "9780134190440",
		Condition: bookModel.ConditionGood,
		Status:    status,
		CreatedAt: time.Now(),
	}
	return id
}

func (r *memRepository) book(id uuid.UUID) bookModel.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.books[id]
}

func (r *memRepository) balance(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[id]
}

func (r *memRepository) swap(id uuid.UUID) model.Swap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.swaps[id]
}

func (r *memRepository) snapshot() (map[uuid.UUID]*bookModel.Book, map[uuid.UUID]int, map[uuid.UUID]*model.Swap) {
	books := make(map[uuid.UUID]*bookModel.Book, len(r.books))
	for id, b := range r.books {
		copied := *b
		books[id] = &copied
	}
	points := make(map[uuid.UUID]int, len(r.points))
	for id, n := range r.points {
		points[id] = n
	}
	swaps := make(map[uuid.UUID]*model.Swap, len(r.swaps))
	for id, s := range r.swaps {
		copied := *s
		swaps[id] = &copied
	}
	return books, points, swaps
}

func (r *memRepository) InTx(_ context.Context, fn func(repository.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	books, points, swaps := r.snapshot()

	if err := fn(&memStore{repo: r}); err != nil {
		r.books, r.points, r.swaps = books, points, swaps
		return err
	}
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Swap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.swaps[id]
	if !ok {
		return nil, model.ErrSwapNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Swap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Swap
	for _, s := range r.swaps {
		if s.GiverID == userID || s.ReceiverID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memRepository) CountCompletedByReceiver(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range r.swaps {
		if s.ReceiverID == userID && s.Status == model.SwapStatusCompleted {
			n++
		}
	}
	return n, nil
}

// memStore applies the same compare-and-swap rules as the SQL store.
// The repository mutex is already held when it runs.
type memStore struct {
	repo *memRepository
}

func (s *memStore) BookForUpdate(_ context.Context, id uuid.UUID) (*bookModel.Book, error) {
	b, ok := s.repo.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *memStore) ReserveBook(_ context.Context, id uuid.UUID) error {
	b, ok := s.repo.books[id]
	if !ok || b.Status != bookModel.BookStatusAvailable {
		return bookModel.ErrBookNotAvailable
	}
	b.Status = bookModel.BookStatusReserved
	return nil
}

func (s *memStore) FinalizeBook(_ context.Context, id, newOwner uuid.UUID) error {
	b, ok := s.repo.books[id]
	if !ok || b.Status != bookModel.BookStatusReserved {
		return model.ErrConflict
	}
	b.Status = bookModel.BookStatusTransferred
	b.OwnerID = newOwner
	return nil
}

func (s *memStore) ReleaseBook(_ context.Context, id uuid.UUID) error {
	b, ok := s.repo.books[id]
	if !ok || b.Status != bookModel.BookStatusReserved {
		return model.ErrConflict
	}
	b.Status = bookModel.BookStatusAvailable
	return nil
}

func (s *memStore) DebitPoints(_ context.Context, userID uuid.UUID, n int) error {
	balance, ok := s.repo.points[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	if balance < n {
		return model.ErrInsufficientPoints
	}
	s.repo.points[userID] = balance - n
	return nil
}

func (s *memStore) CreditPoints(_ context.Context, userID uuid.UUID, n int) error {
	if _, ok := s.repo.points[userID]; !ok {
		return model.ErrUserNotFound
	}
	s.repo.points[userID] += n
	return nil
}

func (s *memStore) CreateSwap(_ context.Context, swap *model.Swap) error {
	now := time.Now()
	swap.CreatedAt = now
	swap.UpdatedAt = now
	copied := *swap
	s.repo.swaps[swap.ID] = &copied
	return nil
}

func (s *memStore) SwapForUpdate(_ context.Context, id uuid.UUID) (*model.Swap, error) {
	sw, ok := s.repo.swaps[id]
	if !ok {
		return nil, model.ErrSwapNotFound
	}
	copied := *sw
	return &copied, nil
}

func (s *memStore) UpdateSwap(_ context.Context, swap *model.Swap) error {
	if _, ok := s.repo.swaps[swap.ID]; !ok {
		return model.ErrSwapNotFound
	}
	swap.UpdatedAt = time.Now()
	copied := *swap
	s.repo.swaps[swap.ID] = &copied
	return nil
}
