package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfwiseapp/shelfwise-server/internal/domain"
	domainerrors "github.com/shelfwiseapp/shelfwise-server/internal/errors"
	"github.com/shelfwiseapp/shelfwise-server/internal/store"
)

// SaveBookRequest contains the book data captured from the search results.
type SaveBookRequest struct {
	BookID      string   `json:"bookId" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
}

// ShelfService manages the books saved to a user's shelf.
type ShelfService struct {
	store       store.Store
	dedupeSaves bool
	logger      *slog.Logger
}

// NewShelfService creates a new shelf service. With dedupeSaves set, saving
// a bookId that is already shelved is a no-op instead of an append.
func NewShelfService(store store.Store, dedupeSaves bool, logger *slog.Logger) *ShelfService {
	return &ShelfService{
		store:       store,
		dedupeSaves: dedupeSaves,
		logger:      logger,
	}
}

// SaveBook appends a book to the user's shelf and returns the updated user.
func (s *ShelfService) SaveBook(ctx context.Context, userID string, req SaveBookRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	book := domain.Book{
		BookID:      req.BookID,
		Title:       req.Title,
		Authors:     req.Authors,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
	}

	if err := s.store.AddSavedBook(ctx, userID, book, s.dedupeSaves); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("add saved book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book saved",
			"user_id", userID,
			"book_id", req.BookID,
		)
	}

	return s.Me(ctx, userID)
}

// RemoveBook removes every shelf entry matching bookID and returns the
// updated user. Removing an absent bookId leaves the shelf unchanged.
func (s *ShelfService) RemoveBook(ctx context.Context, userID, bookID string) (*domain.User, error) {
	if bookID == "" {
		return nil, domainerrors.Validation("bookId is required")
	}

	if err := s.store.RemoveSavedBook(ctx, userID, bookID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("remove saved book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book removed",
			"user_id", userID,
			"book_id", bookID,
		)
	}

	return s.Me(ctx, userID)
}

// Me returns the user's account with their shelf loaded.
func (s *ShelfService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
