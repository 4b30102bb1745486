package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/storage"
)

// CreateUser persists a new user.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, boolToInt(user.IsActive), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by key, including the joined-groups list in
// join order.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.scanUser(ctx,
		"SELECT id, name, email, password_hash, is_active, created_at FROM users WHERE id = ?",
		userID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.loadJoinedGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.scanUser(ctx,
		"SELECT id, name, email, password_hash, is_active, created_at FROM users WHERE email = ?",
		email,
	)
	if err != nil {
		return nil, err
	}

	if err := s.loadJoinedGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SQLiteStore) scanUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var isActive int
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &isActive, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.IsActive = isActive != 0
	return user, nil
}

// loadJoinedGroups fills user.JoinedGroups in append order. Duplicate
// joins of the same group appear as duplicate entries.
func (s *SQLiteStore) loadJoinedGroups(ctx context.Context, user *models.User) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id FROM user_groups WHERE user_id = ? ORDER BY seq",
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get joined groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return fmt.Errorf("failed to scan joined group: %w", err)
		}
		user.JoinedGroups = append(user.JoinedGroups, groupID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate joined groups: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
