package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user data access contract. Point mutations are
// excluded on purpose: only the swap engine writes the balance, inside
// its own transaction boundary.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *User) error
}
