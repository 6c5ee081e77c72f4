package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookswap-backend/internal/domains/book/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
	}
}

const bookColumns = `
	id, owner_id, title, author, isbn, condition,
	cover_url, categories, status, created_at, updated_at
`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
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
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, owner_id, title, author, isbn, condition,
			cover_url, categories, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.OwnerID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Condition,
		book.CoverURL,
		book.Categories,
		book.Status,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("owner does not exist: %w", err)
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return book, nil
}

func (r *postgresRepository) ListAvailable(ctx context.Context, excludeOwner *uuid.UUID, limit, offset int) ([]model.Book, int, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE status = $1
		  AND ($2::uuid IS NULL OR owner_id <> $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, model.BookStatusAvailable, excludeOwner, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list available books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate book rows: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM books
		WHERE status = $1
		  AND ($2::uuid IS NULL OR owner_id <> $2)
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, model.BookStatusAvailable, excludeOwner).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count available books: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by owner: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book rows: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by owner: %w", err)
	}

	return count, nil
}
