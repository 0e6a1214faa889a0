package users

import (
	"context"
	"strings"
	"sync"
)

// Store owns the durable user list. There is no per-record API on purpose:
// every handler loads the full list, mutates its copy and saves it back,
// accepting last-writer-wins under concurrent requests.
type Store interface {
	// Load returns the current user list. It fails soft: read or decode
	// errors are logged by the implementation and an empty list returned.
	Load(ctx context.Context) []User
	// Save replaces the stored list with a full rewrite.
	Save(ctx context.Context, users []User) error
}

// MemoryStore keeps users in process memory, the earlier variant of the
// service. Useful for tests and for running without a data file.
type MemoryStore struct {
	mu    sync.RWMutex
	users []User
}

func NewMemoryStore(seed []User) *MemoryStore {
	s := &MemoryStore{}
	s.users = append(s.users, seed...)
	return s
}

func (s *MemoryStore) Load(ctx context.Context) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *MemoryStore) Save(ctx context.Context, users []User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]User, len(users))
	copy(s.users, users)
	return nil
}

// NextID assigns ids monotonically: max existing id + 1, or 1 when empty.
func NextID(users []User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func FindByID(users []User, id int) (int, bool) {
	for i, u := range users {
		if u.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindByEmail compares case-insensitively; email uniqueness is
// case-insensitive across the store.
func FindByEmail(users []User, email string) (int, bool) {
	for i, u := range users {
		if strings.EqualFold(u.Email, email) {
			return i, true
		}
	}
	return -1, false
}

// EmailTaken reports whether another record (excluding exceptID) already
// uses the email.
func EmailTaken(users []User, email string, exceptID int) bool {
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
