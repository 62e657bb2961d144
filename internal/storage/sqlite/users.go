package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ragnerd/Kontrib/internal/models"
)

const userColumns = `id, username, password_hash, full_name, phone_number, role, created_at`

// CreateUser inserts a new user into the database.
func (s queries) CreateUser(ctx context.Context, user *models.User) error {
	if user.Username == "" {
		return models.Invalid("username", "is required")
	}
	if user.FullName == "" {
		return models.Invalid("full_name", "is required")
	}
	if user.PasswordHash == "" {
		return models.Invalid("password", "is required")
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if !user.Role.Valid() {
		return models.Invalid("role", "%q is not admin or member", user.Role)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.PhoneNumber,
		string(user.Role),
		user.CreatedAt,
	)
	if err != nil {
		return translateError(err, "user")
	}

	return nil
}

// GetUser retrieves a user by ID. Returns nil, nil if not found.
func (s queries) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username. Returns nil, nil if not found.
func (s queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? LIMIT 1`, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.PhoneNumber,
		&role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}
