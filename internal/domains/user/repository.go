package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access contract cho users
type Repository interface {
	// Create fails with ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)
	// SearchByNamePrefix is case-insensitive and ordered by name.
	SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]*User, error)
}
