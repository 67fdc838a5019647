package sqlite

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"time"

	"github.com/shelfwiseapp/shelfwise-server/internal/domain"
	"github.com/shelfwiseapp/shelfwise-server/internal/store"
)

// AddSavedBook appends a book to the user's shelf. With dedupe set and the
// bookId already shelved, the call is a successful no-op.
func (s *Store) AddSavedBook(ctx context.Context, userID string, book domain.Book, dedupe bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, userID).Scan(&exists); err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("check user: %w", err))
	}
	if exists == 0 {
		return store.ErrNotFound
	}

	if dedupe {
		var n int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM saved_books WHERE user_id = ? AND book_id = ?`,
			userID, book.BookID).Scan(&n)
		if err != nil {
			return store.ErrInvalidInput.WithCause(fmt.Errorf("check duplicate: %w", err))
		}
		if n > 0 {
			return tx.Commit()
		}
	}

	authors := book.Authors
	if authors == nil {
		authors = []string{}
	}
	authorsJSON, err := json.Marshal(authors)
	if err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("encode authors: %w", err))
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO saved_books (user_id, book_id, title, authors, description, image, link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, book.BookID, book.Title, string(authorsJSON),
		book.Description, book.Image, book.Link, formatTime(time.Now()))
	if err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("insert saved book: %w", err))
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET updated_at = ? WHERE id = ?`,
		formatTime(time.Now()), userID); err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("touch user: %w", err))
	}

	return tx.Commit()
}

// RemoveSavedBook removes every shelf entry matching bookID. Removing a
// bookID that is not shelved is a successful no-op.
func (s *Store) RemoveSavedBook(ctx context.Context, userID, bookID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, userID).Scan(&exists); err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("check user: %w", err))
	}
	if exists == 0 {
		return store.ErrNotFound
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM saved_books WHERE user_id = ? AND book_id = ?`, userID, bookID)
	if err != nil {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("delete saved book: %w", err))
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET updated_at = ? WHERE id = ?`,
			formatTime(time.Now()), userID); err != nil {
			return store.ErrInvalidInput.WithCause(fmt.Errorf("touch user: %w", err))
		}
	}

	return tx.Commit()
}
