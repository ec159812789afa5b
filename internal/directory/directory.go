// Package directory implements the user directory: account creation,
// credential verification and privilege checks. The behavior lives in
// plain functions over the User struct rather than on the model itself.
package directory

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
)

var (
	// ErrEmailRequired is returned when an account is created without an email
	ErrEmailRequired = errors.New("users must have an email address")

	// ErrSuperuserFlags is returned when a superuser is created with
	// is_staff or is_superuser explicitly set to false
	ErrSuperuserFlags = errors.New("superuser must have is_staff=true and is_superuser=true")
)

// Options carries the optional fields for account creation. Pointer
// fields distinguish "not supplied" from an explicit false.
type Options struct {
	Name        string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// Service creates and looks up accounts through a UserRepository
type Service struct {
	users repository.UserRepository
}

// NewService creates a directory service backed by the given repository
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// NormalizeEmail trims whitespace and lowercases the domain part of the
// address. The local part is preserved as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// HashPassword returns the bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the user's hash
func CheckPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// IsAuthenticated reports whether the user represents a live account
func IsAuthenticated(user *model.User) bool {
	return user != nil && user.IsActive
}

// HasStaffPerm reports whether the user may access staff-only surfaces.
// Superuser implies staff.
func HasStaffPerm(user *model.User) bool {
	return user != nil && user.IsActive && (user.IsStaff || user.IsSuperuser)
}

// CreateUser creates, persists and returns a new account. The email is
// required and normalized; the password is stored hashed; accounts are
// active unless the options say otherwise.
func (s *Service) CreateUser(ctx context.Context, email, password string, opts Options) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hash,
		Name:     opts.Name,
		IsActive: true,
	}
	if opts.IsActive != nil {
		user.IsActive = *opts.IsActive
	}
	if opts.IsStaff != nil {
		user.IsStaff = *opts.IsStaff
	}
	if opts.IsSuperuser != nil {
		user.IsSuperuser = *opts.IsSuperuser
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSuperuser creates an account with staff and superuser privileges.
// An explicit attempt to switch either flag off is an error rather than a
// silently downgraded account.
func (s *Service) CreateSuperuser(ctx context.Context, email, password string, opts Options) (*model.User, error) {
	if opts.IsStaff != nil && !*opts.IsStaff {
		return nil, ErrSuperuserFlags
	}
	if opts.IsSuperuser != nil && !*opts.IsSuperuser {
		return nil, ErrSuperuserFlags
	}

	t := true
	opts.IsStaff = &t
	opts.IsSuperuser = &t
	opts.IsActive = &t

	return s.CreateUser(ctx, email, password, opts)
}
