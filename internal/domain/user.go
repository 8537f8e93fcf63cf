// Package domain defines the persistence model for user records. The type
// is mapped with GORM for the SQLite-backed store and reused as-is by the
// in-memory store.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents a managed user account.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identifier; uniqueness backs the Conflict rule.
//   - Name: display name.
//   - Password: bcrypt digest. Never serialized to JSON; responses carry
//     the user without it.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type User struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Name      string         `json:"name"       gorm:"type:varchar(100);not null"`
	Password  string         `json:"-"          gorm:"type:varchar(100);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
