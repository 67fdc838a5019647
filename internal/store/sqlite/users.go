package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/shelfwiseapp/shelfwise-server/internal/domain"
	"github.com/shelfwiseapp/shelfwise-server/internal/store"
)

// CreateUser inserts a new user row. Uniqueness of username and email is
// case-insensitive, enforced by the *_lower columns.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, username, username_lower, email, email_lower, password_hash, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Username,
		strings.ToLower(user.Username),
		user.Email,
		strings.ToLower(user.Email),
		user.PasswordHash,
		formatTime(user.LastLoginAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return store.ErrInvalidInput.WithCause(fmt.Errorf("insert user: %w", err))
	}
	return nil
}

// GetUser retrieves a user by ID with their shelf loaded.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, username, email, password_hash, last_login_at
		FROM users WHERE id = ?`, id)
	return s.scanUser(ctx, row)
}

// GetUserByEmail retrieves a user by email, compared case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, username, email, password_hash, last_login_at
		FROM users WHERE email_lower = ?`, strings.ToLower(email))
	return s.scanUser(ctx, row)
}

// TouchLastLogin records a successful login time.
func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		formatTime(at), formatTime(time.Now()), id)
	if err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("touch last login: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.ErrInvalidInput.WithCause(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) scanUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	var u domain.User
	var createdAt, updatedAt, lastLoginAt string
	err := row.Scan(&u.ID, &createdAt, &updatedAt, &u.Username, &u.Email, &u.PasswordHash, &lastLoginAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("scan user: %w", err))
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("parse created_at: %w", err))
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("parse updated_at: %w", err))
	}
	if u.LastLoginAt, err = parseTime(lastLoginAt); err != nil {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("parse last_login_at: %w", err))
	}

	books, err := s.savedBooks(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.SavedBooks = books
	return &u, nil
}

func (s *Store) savedBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, title, authors, description, image, link
		FROM saved_books WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("query saved books: %w", err))
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		var authorsJSON string
		if err := rows.Scan(&b.BookID, &b.Title, &authorsJSON, &b.Description, &b.Image, &b.Link); err != nil {
			return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("scan saved book: %w", err))
		}
		if err := json.Unmarshal([]byte(authorsJSON), &b.Authors); err != nil {
			return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("parse authors: %w", err))
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInvalidInput.WithCause(err)
	}
	return books, nil
}
