package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
)

type stubUserRepo struct {
	created []*model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = uint(len(s.created) + 1)
	s.created = append(s.created, user)
	return nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.created {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	for _, u := range s.created {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestCreateUser(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), "user@example.com", "testpass123", Options{Name: "Test User"})
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
	require.Len(t, repo.created, 1)

	// Password is stored hashed, never verbatim
	assert.NotEqual(t, "testpass123", user.Password)
	assert.True(t, CheckPassword(user, "testpass123"))
	assert.False(t, CheckPassword(user, "wrongpass"))
}

func TestCreateUserNormalizesEmailDomain(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo)

	tests := []struct {
		input string
		want  string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
	}

	for _, tt := range tests {
		user, err := svc.CreateUser(context.Background(), tt.input, "testpass123", Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, user.Email)
	}
}

func TestCreateUserWithoutEmailFails(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo)

	_, err := svc.CreateUser(context.Background(), "", "testpass123", Options{})
	require.ErrorIs(t, err, ErrEmailRequired)

	// No row persisted
	assert.Empty(t, repo.created)
}

func TestCreateSuperuser(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo)

	user, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "testpass123", Options{})
	require.NoError(t, err)

	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsActive)
}

func TestCreateSuperuserRejectsFalseFlags(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo)

	f := false
	_, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "testpass123", Options{IsStaff: &f})
	require.ErrorIs(t, err, ErrSuperuserFlags)

	_, err = svc.CreateSuperuser(context.Background(), "admin@example.com", "testpass123", Options{IsSuperuser: &f})
	require.ErrorIs(t, err, ErrSuperuserFlags)

	assert.Empty(t, repo.created)
}

func TestPrivilegeChecks(t *testing.T) {
	assert.False(t, IsAuthenticated(nil))
	assert.False(t, IsAuthenticated(&model.User{IsActive: false}))
	assert.True(t, IsAuthenticated(&model.User{IsActive: true}))

	assert.False(t, HasStaffPerm(&model.User{IsActive: true}))
	assert.True(t, HasStaffPerm(&model.User{IsActive: true, IsStaff: true}))
	// Superuser implies staff access
	assert.True(t, HasStaffPerm(&model.User{IsActive: true, IsSuperuser: true}))
	assert.False(t, HasStaffPerm(&model.User{IsActive: false, IsSuperuser: true}))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "", NormalizeEmail("  "))
	assert.Equal(t, "noat", NormalizeEmail("noat"))
	assert.Equal(t, "a@b.com", NormalizeEmail(" a@B.COM "))
}
