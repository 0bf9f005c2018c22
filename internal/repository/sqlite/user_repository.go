package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (name, email, phone, address, username, password)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.Username,
		user.PasswordHash,
	)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "unique") {
			if strings.Contains(msg, "users.email") {
				return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicateEmail)
			}
			return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicateUsername)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, phone, address, username, password
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) ListByUsernameFold(ctx context.Context, username string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, phone, address, username, password
FROM users
WHERE LOWER(username) = LOWER(?)
ORDER BY id ASC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("delete user %q: %w", username, repository.ErrNotFound)
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Address,
		&user.Username,
		&user.PasswordHash,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
