package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/halitkalayci/gyk-backend/internal/adapters/transport/http/dto"
	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/domain/user"
)

const defaultListLimit = 100

// Service exposes the user CRUD operations. Update and Delete are
// owner-only: the caller passes the authenticated user and the service
// rejects cross-account mutation.
type Service interface {
	List(ctx context.Context, offset, limit int) ([]user.User, error)
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	Update(ctx context.Context, current user.User, id uuid.UUID, in dto.UpdateUserDTO) (user.User, error)
	Delete(ctx context.Context, current user.User, id uuid.UUID) error
}

type userService struct {
	repo user.Repo
	v    *validator.Validate
}

func New(repo user.Repo, v *validator.Validate) Service {
	return &userService{repo: repo, v: v}
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]user.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	users, err := s.repo.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "List")
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, current user.User, id uuid.UUID, in dto.UpdateUserDTO) (user.User, error) {
	if current.ID != id {
		return user.User{}, apperrors.ErrForbidden
	}
	if err := s.v.Struct(in); err != nil {
		return user.User{}, apperrors.NewInvalidArgument(err.Error())
	}
	return s.repo.UpdateUser(ctx, id, user.UpdateParams{Username: in.Username})
}

func (s *userService) Delete(ctx context.Context, current user.User, id uuid.UUID) error {
	if current.ID != id {
		return apperrors.ErrForbidden
	}
	return s.repo.DeleteUser(ctx, id)
}
