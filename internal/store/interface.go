// Package store defines the persistence contract for the Shelfwise server.
// The SQLite implementation lives in store/sqlite.
package store

import (
	"context"
	"time"

	"github.com/shelfwiseapp/shelfwise-server/internal/domain"
)

// Store is the persistence interface consumed by the service layer.
// Implementations are constructed explicitly and injected; there is no
// ambient global handle.
type Store interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists if the
	// username or email is already taken (case-insensitive).
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUser retrieves a user by ID with their shelf loaded in insertion
	// order. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email (case-insensitive) with
	// their shelf loaded. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error

	// AddSavedBook appends a book to the user's shelf. With dedupe set, a
	// book whose bookId is already on the shelf is not appended again; the
	// call still succeeds. Returns ErrNotFound if the user does not exist.
	AddSavedBook(ctx context.Context, userID string, book domain.Book, dedupe bool) error

	// RemoveSavedBook removes every shelf entry matching bookID. Removing
	// a bookID that is not on the shelf is a successful no-op.
	RemoveSavedBook(ctx context.Context, userID, bookID string) error

	// Close releases the underlying database handle.
	Close() error
}
