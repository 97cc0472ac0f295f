package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/halitkalayci/gyk-backend/internal/adapters/transport/http/dto"
	"github.com/halitkalayci/gyk-backend/internal/app/auth/hash"
	"github.com/halitkalayci/gyk-backend/internal/app/auth/jwt"
	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/domain/user"
	"github.com/halitkalayci/gyk-backend/internal/infra/config"
)

// Token is an issued session credential plus its type marker.
type Token struct {
	AccessToken string
	TokenType   string
}

// Service is the auth gateway: registration, login and the current-user
// resolution step every protected operation goes through.
type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (user.User, error)
	Login(ctx context.Context, in dto.LoginDTO) (Token, error)
	CurrentUser(ctx context.Context, rawToken string) (user.User, error)
}

type authService struct {
	userRepo user.Repo
	jwtUtil  *jwt.Util
	cfg      *config.Config
	v        *validator.Validate
}

func New(ur user.Repo, jm *jwt.Util, cfg *config.Config, v *validator.Validate) Service {
	return &authService{userRepo: ur, jwtUtil: jm, cfg: cfg, v: v}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (user.User, error) {
	if err := a.v.Struct(in); err != nil {
		return user.User{}, apperrors.NewInvalidArgument(err.Error())
	}

	_, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return user.User{}, apperrors.ErrAlreadyExists
	case !errors.Is(err, apperrors.ErrNotFound):
		return user.User{}, apperrors.WrapInternal(err, "Register")
	}

	passwordHash, err := hash.Password(in.Password)
	if err != nil {
		return user.User{}, apperrors.WrapInternal(err, "Register")
	}

	created, err := a.userRepo.CreateUser(ctx, user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// Concurrent registration with the same email loses the race in
		// the unique index, not here.
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return user.User{}, apperrors.ErrAlreadyExists
		}
		return user.User{}, apperrors.WrapInternal(err, "Register")
	}

	return created, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (Token, error) {
	if err := a.v.Struct(in); err != nil {
		return Token{}, apperrors.NewInvalidArgument(err.Error())
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller.
	u, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return Token{}, apperrors.ErrInvalidCredentials
	case err != nil:
		return Token{}, apperrors.WrapInternal(err, "Login")
	}

	if !hash.Verify(in.Password, u.PasswordHash) {
		return Token{}, apperrors.ErrInvalidCredentials
	}

	signed, err := a.jwtUtil.Issue(u.Email, a.cfg.AccessTokenTTL)
	if err != nil {
		return Token{}, apperrors.WrapInternal(err, "Login")
	}

	return Token{AccessToken: signed, TokenType: "bearer"}, nil
}

func (a *authService) CurrentUser(ctx context.Context, rawToken string) (user.User, error) {
	subject, err := a.jwtUtil.Verify(rawToken)
	if err != nil {
		return user.User{}, err
	}

	// A signature-valid token for a deleted account must not grant access.
	u, err := a.userRepo.GetUserByEmail(ctx, subject)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return user.User{}, apperrors.ErrUnauthorized
	case err != nil:
		return user.User{}, apperrors.WrapInternal(err, "CurrentUser")
	}

	return u, nil
}
