package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/domains/user/model"
	"bookcatalog-backend/pkg/jwt"
)

type fakeUserRepository struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserRepository) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepository) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func newTestService() (user.Service, *fakeUserRepository, *jwt.Manager) {
	repo := newFakeUserRepository()
	manager := jwt.NewManager("test-secret", time.Hour)
	return NewUserService(repo, manager), repo, manager
}

func TestUserService_Signup(t *testing.T) {
	svc, _, manager := newTestService()

	resp, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:    "Reader@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("correct horse")))

	claims, err := manager.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestUserService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "other password"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestUserService_Signup_WeakPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "short"})
	assert.Error(t, err)
}

func TestUserService_Login(t *testing.T) {
	svc, _, _ := newTestService()

	signup, err := svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "reader@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	// Unknown email and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "whatever!"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_SetRole(t *testing.T) {
	svc, _, _ := newTestService()

	signup, err := svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	promoted, err := svc.SetRole(context.Background(), signup.User.ID, model.SetRoleRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", promoted.Role)
}

func TestUserService_SetRole_InvalidRole(t *testing.T) {
	svc, _, _ := newTestService()

	signup, err := svc.Signup(context.Background(), model.SignupRequest{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.SetRole(context.Background(), signup.User.ID, model.SetRoleRequest{Role: "superuser"})
	assert.Error(t, err)
}
