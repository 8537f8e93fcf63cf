// Package services implements the business logic for user records.
//
// UserService enforces the domain rules on top of a storage-agnostic
// repository: lookups of missing users fail with a NotFound failure,
// writes that would reuse an email fail with a Conflict failure, and
// plaintext passwords are hashed before they reach the store. Failures are
// constructed here as typed apperr values and propagate unchanged to the
// HTTP error translator; this package never decides status codes.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-user-backend/internal/apperr"
	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/repo"
)

// tracer instruments service-level operations; HTTP and DB spans come from
// otelgin and the GORM plugin respectively.
var tracer = otel.Tracer("github.com/tbourn/go-user-backend/internal/services")

// UserRepo defines the repository contract required by UserService.
// Both repo.Gorm and repo.Memory satisfy it. Implementations return
// repo.ErrNotFound for missing records and must be safe for concurrent use.
type UserRepo interface {
	// FindAll returns every user.
	FindAll(ctx context.Context) ([]domain.User, error)
	// Count returns the total number of users, for pagination.
	Count(ctx context.Context) (int64, error)
	// FindPage returns a slice of the user listing.
	FindPage(ctx context.Context, offset, limit int) ([]domain.User, error)
	// FindByID fetches a user by ID, or repo.ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail fetches a user by email, or repo.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create stores a new user.
	Create(ctx context.Context, u *domain.User) error
	// Update persists changes to an existing user.
	Update(ctx context.Context, u *domain.User) error
	// Delete removes a user by ID.
	Delete(ctx context.Context, id string) error
}

// PasswordHasher is the hashing primitive consumed by the service.
// Satisfied by auth.Hasher.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// CreateUserInput carries the validated payload for user creation. The
// schema gate guarantees all three fields are present and well-formed by
// the time the service sees them.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateUserInput carries a partial update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService provides CRUD operations over user records.
type UserService struct {
	Repo   UserRepo
	Hasher PasswordHasher
}

// NewUserService constructs a UserService.
func NewUserService(r UserRepo, h PasswordHasher) *UserService {
	return &UserService{Repo: r, Hasher: h}
}

// GetAll returns every user.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.Repo.FindAll(ctx)
}

// ListPage returns a page of users plus the total count. Invalid page or
// pageSize values fall back to defaults.
func (s *UserService) ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.User{}, 0, nil
	}

	items, err := s.Repo.FindPage(ctx, offset, pageSize)
	return items, total, err
}

// GetByID fetches a user or fails with NotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return u, nil
}

// Create stores a new user. The email must be unused; the password is
// hashed before it reaches the repository.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserService.Create",
		trace.WithAttributes(attribute.String("user.repo_op", "create")))
	defer span.End()

	if _, err := s.Repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	digest, err := s.Hasher.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		Name:     in.Name,
		Password: digest,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The email check above races with concurrent creates; the unique
		// index is the backstop.
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", u.ID))
	return u, nil
}

// Update applies a partial update to an existing user. Changing the email
// onto one already in use by another user fails with Conflict; a new
// password is hashed before storage. Empty-string fields count as absent,
// the same way the validation gate sees them, so `{"password":""}` means
// "no password change" rather than an attempt to hash nothing.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	in.Email = presentString(in.Email)
	in.Name = presentString(in.Name)
	in.Password = presentString(in.Password)

	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	if in.Email != nil && *in.Email != u.Email {
		if _, err := s.Repo.FindByEmail(ctx, *in.Email); err == nil {
			return nil, apperr.Conflict("Email already exists")
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		u.Email = *in.Email
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Password != nil {
		digest, err := s.Hasher.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = digest
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, err
	}
	return u, nil
}

// presentString returns nil for pointers at the empty string, collapsing
// the two spellings of "field not provided" into one.
func presentString(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

// Delete removes a user or fails with NotFound.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	return nil
}
