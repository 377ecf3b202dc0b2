package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gmscreen/internal/domain"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	byID       map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*domain.User{},
		byID:       map[string]*domain.User{},
	}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (string, error) {
	if _, exists := f.byUsername[user.Username]; exists {
		return "", errors.New("user already exists")
	}
	user.ID = "u-" + user.Username
	stored := *user
	f.byUsername[user.Username] = &stored
	f.byID[user.ID] = &stored
	return user.ID, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	copied := *user
	return &copied, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), "join-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, " gm ", "gm@example.com", "hunter2hunter2", "join-secret")
	require.NoError(t, err)
	require.Equal(t, "gm", user.Username)
	require.Empty(t, user.PasswordHash, "password hash must never leave the service")

	authed, err := svc.Authenticate(ctx, "gm", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)
	require.Empty(t, authed.PasswordHash)
}

func TestRegisterRejectsWrongSecret(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), "join-secret")

	_, err := svc.Register(context.Background(), "gm", "gm@example.com", "hunter2hunter2", "wrong")
	require.ErrorIs(t, err, ErrInvalidRegistrationPassword)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), "join-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "gm", "gm@example.com", "hunter2hunter2", "join-secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "gm", "other@example.com", "hunter2hunter2", "join-secret")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), "join-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "gm", "gm@example.com", "hunter2hunter2", "join-secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "gm", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
