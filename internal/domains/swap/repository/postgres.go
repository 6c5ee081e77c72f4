package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	bookModel "bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/swap/model"
	"bookswap-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
	}
}

// isSerializationFailure matches the PostgreSQL error codes raised when
// concurrent serializable transactions touch the same rows.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func (r *postgresRepository) InTx(ctx context.Context, fn func(Store) error) error {
	err := database.WithSerializableTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&txStore{tx: tx})
	})

	if err != nil && isSerializationFailure(err) {
		return model.ErrConflict
	}
	return err
}

const swapColumns = `
	id, target_book_id, offered_book_id, giver_id, receiver_id,
	status, tracking_number, created_at, updated_at
`

func scanSwap(row pgx.Row) (*model.Swap, error) {
	var s model.Swap
	err := row.Scan(
		&s.ID,
		&s.TargetBookID,
		&s.OfferedBookID,
		&s.GiverID,
		&s.ReceiverID,
		&s.Status,
		&s.TrackingNumber,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Swap, error) {
	query := `SELECT ` + swapColumns + ` FROM swaps WHERE id = $1`

	swap, err := scanSwap(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSwapNotFound
		}
		return nil, fmt.Errorf("failed to get swap by id: %w", err)
	}

	return swap, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Swap, error) {
	query := `
		SELECT ` + swapColumns + `
		FROM swaps
		WHERE giver_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swaps by user: %w", err)
	}
	defer rows.Close()

	var swaps []model.Swap
	for rows.Next() {
		swap, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap row: %w", err)
		}
		swaps = append(swaps, *swap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate swap rows: %w", err)
	}

	return swaps, nil
}

func (r *postgresRepository) CountCompletedByReceiver(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM swaps WHERE receiver_id = $1 AND status = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, model.SwapStatusCompleted).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed swaps: %w", err)
	}

	return count, nil
}

// txStore implements Store on one pgx transaction.
type txStore struct {
	tx pgx.Tx
}

func (s *txStore) BookForUpdate(ctx context.Context, id uuid.UUID) (*bookModel.Book, error) {
	query := `
		SELECT id, owner_id, title, author, isbn, condition,
		       cover_url, categories, status, created_at, updated_at
		FROM books
		WHERE id = $1
		FOR UPDATE
	`

	var b bookModel.Book
	err := s.tx.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.OwnerID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Condition,
		&b.CoverURL,
		&b.Categories,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bookModel.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to lock book row: %w", err)
	}

	return &b, nil
}

func (s *txStore) ReserveBook(ctx context.Context, id uuid.UUID) error {
	// Compare-and-swap on status: only one of two racing transactions
	// can see AVAILABLE here.
	tag, err := s.tx.Exec(ctx, `
		UPDATE books
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, bookModel.BookStatusReserved, id, bookModel.BookStatusAvailable)
	if err != nil {
		return fmt.Errorf("failed to reserve book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return bookModel.ErrBookNotAvailable
	}

	return nil
}

func (s *txStore) FinalizeBook(ctx context.Context, id, newOwner uuid.UUID) error {
	tag, err := s.tx.Exec(ctx, `
		UPDATE books
		SET status = $1, owner_id = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, bookModel.BookStatusTransferred, newOwner, id, bookModel.BookStatusReserved)
	if err != nil {
		return fmt.Errorf("failed to finalize book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// A RESERVED book referenced by an open swap can only leave that
		// state through its own swap, so this indicates lost consistency.
		return fmt.Errorf("book %s not in RESERVED state: %w", id, model.ErrConflict)
	}

	return nil
}

func (s *txStore) ReleaseBook(ctx context.Context, id uuid.UUID) error {
	tag, err := s.tx.Exec(ctx, `
		UPDATE books
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, bookModel.BookStatusAvailable, id, bookModel.BookStatusReserved)
	if err != nil {
		return fmt.Errorf("failed to release book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s not in RESERVED state: %w", id, model.ErrConflict)
	}

	return nil
}

func (s *txStore) DebitPoints(ctx context.Context, userID uuid.UUID, n int) error {
	// The balance guard in the WHERE clause keeps points non-negative
	// even under concurrent debits.
	tag, err := s.tx.Exec(ctx, `
		UPDATE users
		SET points = points - $2
		WHERE id = $1 AND points >= $2
	`, userID, n)
	if err != nil {
		return fmt.Errorf("failed to debit points: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return model.ErrUserNotFound
		}
		return model.ErrInsufficientPoints
	}

	return nil
}

func (s *txStore) CreditPoints(ctx context.Context, userID uuid.UUID, n int) error {
	tag, err := s.tx.Exec(ctx, `
		UPDATE users
		SET points = points + $2
		WHERE id = $1
	`, userID, n)
	if err != nil {
		return fmt.Errorf("failed to credit points: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (s *txStore) CreateSwap(ctx context.Context, swap *model.Swap) error {
	query := `
		INSERT INTO swaps (
			id, target_book_id, offered_book_id, giver_id, receiver_id,
			status, tracking_number
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at, updated_at
	`

	err := s.tx.QueryRow(ctx, query,
		swap.ID,
		swap.TargetBookID,
		swap.OfferedBookID,
		swap.GiverID,
		swap.ReceiverID,
		swap.Status,
		swap.TrackingNumber,
	).Scan(&swap.CreatedAt, &swap.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create swap: %w", err)
	}

	return nil
}

func (s *txStore) SwapForUpdate(ctx context.Context, id uuid.UUID) (*model.Swap, error) {
	query := `SELECT ` + swapColumns + ` FROM swaps WHERE id = $1 FOR UPDATE`

	swap, err := scanSwap(s.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSwapNotFound
		}
		return nil, fmt.Errorf("failed to lock swap row: %w", err)
	}

	return swap, nil
}

func (s *txStore) UpdateSwap(ctx context.Context, swap *model.Swap) error {
	tag, err := s.tx.Exec(ctx, `
		UPDATE swaps
		SET status = $1, tracking_number = $2, updated_at = NOW()
		WHERE id = $3
	`, swap.Status, swap.TrackingNumber, swap.ID)
	if err != nil {
		return fmt.Errorf("failed to update swap: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrSwapNotFound
	}

	return nil
}
