package store

import (
	"context"
	"sync"
	"time"

	"github.com/moodlens/emotion-service/internal/models"
)

// Memory is an in-process UserStore backed by a map. Registration is
// serialized by the mutex so concurrent inserts of the same username
// cannot both succeed.
type Memory struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemory initializes an empty in-memory store
func NewMemory() *Memory {
	return &Memory{users: make(map[string]models.User)}
}

// Create inserts a new user, failing if the username is taken
func (m *Memory) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Username]; ok {
		return ErrAlreadyExists
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.users[user.Username] = *user
	return nil
}

// FindByUsername retrieves a user by username
func (m *Memory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
