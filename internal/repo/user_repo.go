// Package repo implements the data persistence layer for user records.
// This file provides the GORM-backed repository.
//
// Error semantics:
//   - When a user is not found, methods return ErrNotFound.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// The repository is thin: no business logic, only CRUD persistence and
// query composition. Business rules (duplicate email detection, password
// hashing) live in services.UserService.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-user-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across both repository implementations and the service layer.
var ErrNotFound = gorm.ErrRecordNotFound

// Gorm is the SQLite/GORM implementation of the user repository.
// All methods honor the provided context and are safe for concurrent use.
type Gorm struct {
	DB *gorm.DB
}

// NewGorm returns a Gorm repository bound to db.
func NewGorm(db *gorm.DB) *Gorm { return &Gorm{DB: db} }

// FindAll returns every user ordered by creation time ascending.
func (r *Gorm) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.DB.WithContext(ctx).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// Count returns the total number of users.
func (r *Gorm) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&domain.User{}).
		Count(&total).Error
	return total, err
}

// FindPage returns a slice of users ordered by creation time ascending.
// The caller computes offset and limit (e.g., (page-1)*pageSize).
func (r *Gorm) FindPage(ctx context.Context, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := r.DB.WithContext(ctx).
		Order("created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// FindByID fetches a single user by primary key, or ErrNotFound.
func (r *Gorm) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a single user by email, or ErrNotFound. Used by the
// service layer to enforce email uniqueness ahead of writes.
func (r *Gorm) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row. The caller provides the ID and the
// already-hashed password; CreatedAt defaults to now (UTC) when unset.
func (r *Gorm) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return r.DB.WithContext(ctx).Create(u).Error
}

// Update persists changed fields of an existing user and bumps UpdatedAt.
// It returns ErrNotFound if the row no longer exists.
func (r *Gorm) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	res := r.DB.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"email":      u.Email,
			"name":       u.Name,
			"password":   u.Password,
			"updated_at": u.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user by ID (soft delete via gorm.DeletedAt).
// It returns ErrNotFound when no row was affected.
func (r *Gorm) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsDuplicate reports whether err looks like a unique-constraint violation.
// Kept alongside the repository so callers do not inspect driver errors.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
