package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/halitkalayci/gyk-backend/internal/adapters/transport/http/dto"
	"github.com/halitkalayci/gyk-backend/internal/app/auth/jwt"
	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/domain/user"
	"github.com/halitkalayci/gyk-backend/internal/infra/config"
)

type userRepoStub struct{ users map[string]user.User }

func (u *userRepoStub) CreateUser(ctx context.Context, m user.User) (user.User, error) {
	for _, v := range u.users {
		if v.Email == m.Email {
			return user.User{}, apperrors.ErrAlreadyExists
		}
	}
	u.users[m.ID.String()] = m
	return m, nil
}
func (u *userRepoStub) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return user.User{}, apperrors.ErrNotFound
}
func (u *userRepoStub) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	v, ok := u.users[id.String()]
	if !ok {
		return user.User{}, apperrors.ErrNotFound
	}
	return v, nil
}
func (u *userRepoStub) UpdateUser(ctx context.Context, id uuid.UUID, params user.UpdateParams) (user.User, error) {
	v, ok := u.users[id.String()]
	if !ok {
		return user.User{}, apperrors.ErrNotFound
	}
	v.Username = params.Username
	u.users[id.String()] = v
	return v, nil
}
func (u *userRepoStub) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, ok := u.users[id.String()]; !ok {
		return apperrors.ErrNotFound
	}
	delete(u.users, id.String())
	return nil
}
func (u *userRepoStub) ListUsers(ctx context.Context, offset, limit int) ([]user.User, error) {
	var out []user.User
	for _, v := range u.users {
		out = append(out, v)
	}
	return out, nil
}

func newSvc() (Service, *userRepoStub) {
	ur := &userRepoStub{users: make(map[string]user.User)}
	cfg := &config.Config{JWTSecret: "test-secret", AccessTokenTTL: 30 * time.Minute}
	util := jwt.NewUtil(cfg)
	return New(ur, util, cfg, validator.New()), ur
}

func TestAuthService_RegisterLogin(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.Register(ctx, dto.RegisterDTO{Email: "a@x.com", Username: "alice", Password: "pw1pw1pw1"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.True(t, created.IsActive)

	token, err := svc.Login(ctx, dto.LoginDTO{Email: "a@x.com", Password: "pw1pw1pw1"})
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)

	me, err := svc.CurrentUser(ctx, token.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.ID, me.ID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, ur := newSvc()
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.RegisterDTO{Email: "a@x.com", Username: "alice", Password: "pw1pw1pw1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterDTO{Email: "a@x.com", Username: "mallory", Password: "pw2pw2pw2"})
	require.True(t, apperrors.IsAlreadyExists(err))

	// existing record untouched
	got, err := ur.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, first.Username, got.Username)
}

func TestAuthService_RegisterInvalid(t *testing.T) {
	svc, _ := newSvc()
	_, err := svc.Register(context.Background(), dto.RegisterDTO{})
	require.Error(t, err)
	require.True(t, apperrors.IsInvalidArgument(err))
}

func TestAuthService_LoginNonEnumerable(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterDTO{Email: "a@x.com", Username: "alice", Password: "pw1pw1pw1"})
	require.NoError(t, err)

	_, errWrongPwd := svc.Login(ctx, dto.LoginDTO{Email: "a@x.com", Password: "wrong"})
	_, errUnknown := svc.Login(ctx, dto.LoginDTO{Email: "nobody@x.com", Password: "pw1pw1pw1"})

	require.ErrorIs(t, errWrongPwd, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	require.Equal(t, errWrongPwd, errUnknown)
}

func TestAuthService_CurrentUserInvalidToken(t *testing.T) {
	svc, _ := newSvc()
	_, err := svc.CurrentUser(context.Background(), "bad")
	require.Error(t, err)
	require.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_CurrentUserDeletedAccount(t *testing.T) {
	svc, ur := newSvc()
	ctx := context.Background()

	created, err := svc.Register(ctx, dto.RegisterDTO{Email: "a@x.com", Username: "alice", Password: "pw1pw1pw1"})
	require.NoError(t, err)
	token, err := svc.Login(ctx, dto.LoginDTO{Email: "a@x.com", Password: "pw1pw1pw1"})
	require.NoError(t, err)

	require.NoError(t, ur.DeleteUser(ctx, created.ID))

	_, err = svc.CurrentUser(ctx, token.AccessToken)
	require.True(t, apperrors.IsUnauthorized(err))
}
