package user

import (
	"context"

	"github.com/google/uuid"
)

// UpdateParams carries the mutable fields of a user. Only username is
// mutable by design.
type UpdateParams struct {
	Username string
}

type Repo interface {
	CreateUser(ctx context.Context, u User) (User, error)

	GetUserByEmail(ctx context.Context, email string) (User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)

	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateParams) (User, error)

	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context, offset, limit int) ([]User, error)
}
