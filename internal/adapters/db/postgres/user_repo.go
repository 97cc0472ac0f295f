package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/domain/user"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (p *UserRepo) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	res := p.db.WithContext(ctx).Create(&u)
	if err := res.Error; err != nil {
		if isDuplicateKey(err) {
			return user.User{}, apperrors.ErrAlreadyExists
		}
		return user.User{}, apperrors.WrapInternal(err, "CreateUser")
	}
	return u, nil
}

// isDuplicateKey recognizes a unique-constraint violation both as the raw
// pgx error (code 23505) and as gorm's translated sentinel.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (p *UserRepo) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return user.User{}, apperrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return user.User{}, apperrors.WrapInternal(err, "GetUserByEmail")
	}

	return u, nil
}

func (p *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return user.User{}, apperrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return user.User{}, apperrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *UserRepo) UpdateUser(ctx context.Context, id uuid.UUID, params user.UpdateParams) (user.User, error) {
	res := p.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Update("username", params.Username)
	if err := res.Error; err != nil {
		return user.User{}, apperrors.WrapInternal(err, "UpdateUser")
	}
	if res.RowsAffected == 0 {
		return user.User{}, apperrors.ErrNotFound
	}

	return p.GetUserByID(ctx, id)
}

func (p *UserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&user.User{}, "id = ?", id)
	if err := res.Error; err != nil {
		return apperrors.WrapInternal(err, "DeleteUser")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (p *UserRepo) ListUsers(ctx context.Context, offset, limit int) ([]user.User, error) {
	var users []user.User
	res := p.db.WithContext(ctx).
		Order("created_at").
		Offset(offset).
		Limit(limit).
		Find(&users)
	if err := res.Error; err != nil {
		return nil, apperrors.WrapInternal(err, "ListUsers")
	}

	return users, nil
}
