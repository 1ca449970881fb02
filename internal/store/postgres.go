package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/moodlens/emotion-service/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// Postgres is a UserStore backed by a users table. Uniqueness is enforced
// by the primary key on username.
type Postgres struct {
	db *sql.DB
}

// NewPostgres initializes a Postgres-backed store
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create inserts a new user in the database
func (p *Postgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := p.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		return mapInsertError(err)
	}
	return nil
}

// FindByUsername retrieves a user by username
func (p *Postgres) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT username, email, password_hash, created_at
		FROM users
		WHERE username = $1`
	err := p.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// mapInsertError translates driver errors into store sentinels.
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrAlreadyExists
	}
	return fmt.Errorf("failed to create user: %w", err)
}
