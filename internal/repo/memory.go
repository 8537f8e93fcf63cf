// Package repo implements the data persistence layer for user records.
// This file provides Memory, the in-memory repository used as the default
// backing store and in tests. It satisfies the same contract (including the
// ErrNotFound sentinel) as the GORM repository so the service layer is
// indifferent to the backing store.
package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tbourn/go-user-backend/internal/domain"
)

// Memory is a mutex-guarded in-memory user store. Listings are returned
// ordered by name using locale-aware collation so output is deterministic
// regardless of insertion order. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	users map[string]domain.User
	coll  *collate.Collator
}

// NewMemory returns an empty in-memory repository. Listings collate with
// the given locale; language.Und falls back to English ordering.
func NewMemory(locale language.Tag) *Memory {
	if locale == language.Und {
		locale = language.English
	}
	return &Memory{
		users: make(map[string]domain.User),
		coll:  collate.New(locale, collate.IgnoreCase),
	}
}

// Seed replaces the store contents with the given users. Intended for
// startup fixtures and tests.
func (m *Memory) Seed(users []domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[string]domain.User, len(users))
	for _, u := range users {
		m.users[u.ID] = u
	}
}

// Len returns the number of stored users.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// sorted returns a name-collated snapshot of all users. Callers receive
// copies; mutations never alias store state.
func (m *Memory) sorted() []domain.User {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := m.coll.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FindAll returns every user ordered by collated name.
func (m *Memory) FindAll(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(), nil
}

// Count returns the total number of users.
func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// FindPage returns a slice of the collated listing.
func (m *Memory) FindPage(ctx context.Context, offset, limit int) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.sorted()
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// FindByID fetches a user by ID, or ErrNotFound.
func (m *Memory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// FindByEmail fetches a user by email, or ErrNotFound.
func (m *Memory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Create stores a new user. CreatedAt defaults to now (UTC) when unset.
func (m *Memory) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

// Update replaces the stored user and bumps UpdatedAt.
// Returns ErrNotFound when the user does not exist.
func (m *Memory) Update(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}

// Delete removes a user by ID, or returns ErrNotFound.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}
