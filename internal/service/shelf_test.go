package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shelfwiseapp/shelfwise-server/internal/errors"
	"github.com/shelfwiseapp/shelfwise-server/internal/store/sqlite"
)

// setupShelfTest creates a shelf service and a registered user to act on.
func setupShelfTest(t *testing.T, dedupe bool) (*ShelfService, string) {
	t.Helper()

	svc, s := setupAuthTest(t)
	registered := registerTestUser(t, svc)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewShelfService(s, dedupe, logger), registered.User.ID
}

func duneBook() SaveBookRequest {
	return SaveBookRequest{
		BookID:      "dune-1965",
		Title:       "Dune",
		Authors:     []string{"Frank Herbert"},
		Description: "Desert planet, giant worms.",
		Image:       "https://books.example.com/dune.jpg",
		Link:        "https://books.example.com/dune",
	}
}

func TestSaveBook(t *testing.T) {
	shelf, userID := setupShelfTest(t, false)

	user, err := shelf.SaveBook(context.Background(), userID, duneBook())
	require.NoError(t, err)
	require.Len(t, user.SavedBooks, 1)
	assert.Equal(t, "dune-1965", user.SavedBooks[0].BookID)
	assert.Equal(t, "Dune", user.SavedBooks[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, user.SavedBooks[0].Authors)
	assert.Equal(t, 1, user.BookCount())
}

func TestSaveBookValidation(t *testing.T) {
	shelf, userID := setupShelfTest(t, false)
	ctx := context.Background()

	_, err := shelf.SaveBook(ctx, userID, SaveBookRequest{Title: "No ID"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = shelf.SaveBook(ctx, userID, SaveBookRequest{BookID: "no-title"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSaveBookTwiceAppends(t *testing.T) {
	shelf, userID := setupShelfTest(t, false)
	ctx := context.Background()

	_, err := shelf.SaveBook(ctx, userID, duneBook())
	require.NoError(t, err)
	user, err := shelf.SaveBook(ctx, userID, duneBook())
	require.NoError(t, err)

	assert.Len(t, user.SavedBooks, 2)
}

func TestSaveBookDedupe(t *testing.T) {
	shelf, userID := setupShelfTest(t, true)
	ctx := context.Background()

	_, err := shelf.SaveBook(ctx, userID, duneBook())
	require.NoError(t, err)
	user, err := shelf.SaveBook(ctx, userID, duneBook())
	require.NoError(t, err)

	assert.Len(t, user.SavedBooks, 1)
}

func TestSaveBookUnknownUser(t *testing.T) {
	shelf, _ := setupShelfTest(t, false)

	_, err := shelf.SaveBook(context.Background(), "user-nope", duneBook())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRemoveBook(t *testing.T) {
	shelf, userID := setupShelfTest(t, false)
	ctx := context.Background()

	_, err := shelf.SaveBook(ctx, userID, duneBook())
	require.NoError(t, err)

	hyperion := duneBook()
	hyperion.BookID = "hyperion-1989"
	hyperion.Title = "Hyperion"
	_, err = shelf.SaveBook(ctx, userID, hyperion)
	require.NoError(t, err)

	user, err := shelf.RemoveBook(ctx, userID, "dune-1965")
	require.NoError(t, err)
	require.Len(t, user.SavedBooks, 1)
	assert.Equal(t, "hyperion-1989", user.SavedBooks[0].BookID)
}

func TestRemoveBookAbsentIsNoop(t *testing.T) {
	shelf, userID := setupShelfTest(t, false)
	ctx := context.Background()

	_, err := shelf.SaveBook(ctx, userID, duneBook())
	require.NoError(t, err)

	user, err := shelf.RemoveBook(ctx, userID, "book-nope")
	require.NoError(t, err)
	assert.Len(t, user.SavedBooks, 1)
}

func TestMe(t *testing.T) {
	shelf, userID := setupShelfTest(t, false)
	ctx := context.Background()

	user, err := shelf.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.SavedBooks)

	_, err = shelf.Me(ctx, "user-nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestShelfOrderSurvivesReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	dbPath := filepath.Join(dir, "test.db")

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)

	shelf := NewShelfService(s, false, logger)
	userID := func() string {
		svc := NewAuthService(s, mustTokenService(t, dir), nil, logger)
		return registerTestUser(t, svc).User.ID
	}()

	ctx := context.Background()
	for _, title := range []string{"First", "Second", "Third"} {
		req := duneBook()
		req.BookID = "book-" + title
		req.Title = title
		_, err := shelf.SaveBook(ctx, userID, req)
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	// Reopen the database and confirm insertion order held.
	s2, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s2.Close() })

	user, err := NewShelfService(s2, false, logger).Me(ctx, userID)
	require.NoError(t, err)
	require.Len(t, user.SavedBooks, 3)
	assert.Equal(t, "First", user.SavedBooks[0].Title)
	assert.Equal(t, "Second", user.SavedBooks[1].Title)
	assert.Equal(t, "Third", user.SavedBooks[2].Title)
}
