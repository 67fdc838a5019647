package graph

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwiseapp/shelfwise-server/internal/auth"
	"github.com/shelfwiseapp/shelfwise-server/internal/service"
	"github.com/shelfwiseapp/shelfwise-server/internal/store/sqlite"
)

// gqlResponse is the standard GraphQL response envelope.
type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// newTestServer builds the full GraphQL handler over a temp sqlite store,
// wrapped with a bearer-token middleware mirroring the API server's.
func newTestServer(t *testing.T, dedupe bool) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	authKey, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokenService, err := auth.NewTokenService(hex.EncodeToString(authKey), 2*time.Hour)
	require.NoError(t, err)

	authService := service.NewAuthService(s, tokenService, nil, logger)
	shelfService := service.NewShelfService(s, dedupe, logger)

	handler := NewResolver(authService, shelfService, logger).Handler()

	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			if claims, err := authService.VerifyAccessToken(token); err == nil {
				r = r.WithContext(auth.WithUserID(r.Context(), claims.UserID))
			}
		}
		handler.ServeHTTP(w, r)
	})

	srv := httptest.NewServer(wrapped)
	t.Cleanup(srv.Close)
	return srv
}

// doQuery posts a GraphQL query and decodes the response envelope.
func doQuery(t *testing.T, srv *httptest.Server, token, query string, variables map[string]any) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out gqlResponse
	require.NoError(t, json.UnmarshalRead(resp.Body, &out))
	return out
}

const addUserMutation = `
mutation AddUser($username: String!, $email: String!, $password: String!) {
  addUser(username: $username, email: $email, password: $password) {
    token
    user { _id username email bookCount }
  }
}`

const loginMutation = `
mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    token
    user { _id username }
  }
}`

const meQuery = `
{ me { _id username email bookCount savedBooks { bookId title authors } } }`

const saveBookMutation = `
mutation SaveBook($bookData: BookInput!) {
  saveBook(bookData: $bookData) {
    bookCount
    savedBooks { bookId title }
  }
}`

const removeBookMutation = `
mutation RemoveBook($bookId: String!) {
  removeBook(bookId: $bookId) {
    bookCount
    savedBooks { bookId }
  }
}`

// addTestUser registers alice and returns her token.
func addTestUser(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := doQuery(t, srv, "", addUserMutation, map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Empty(t, resp.Errors)
	authData := resp.Data["addUser"].(map[string]any)
	token := authData["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func duneInput() map[string]any {
	return map[string]any{
		"bookId":      "dune-1965",
		"title":       "Dune",
		"authors":     []string{"Frank Herbert"},
		"description": "Desert planet, giant worms.",
		"image":       "https://books.example.com/dune.jpg",
		"link":        "https://books.example.com/dune",
	}
}

func TestHello(t *testing.T) {
	srv := newTestServer(t, false)

	resp := doQuery(t, srv, "", `{ hello }`, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "Hello, World!", resp.Data["hello"])
}

func TestAddUserAndMe(t *testing.T) {
	srv := newTestServer(t, false)
	token := addTestUser(t, srv)

	resp := doQuery(t, srv, token, meQuery, nil)
	require.Empty(t, resp.Errors)
	me := resp.Data["me"].(map[string]any)
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "alice@example.com", me["email"])
	assert.NotEmpty(t, me["_id"])
	assert.EqualValues(t, 0, me["bookCount"])
}

func TestLoginAfterAddUser(t *testing.T) {
	srv := newTestServer(t, false)
	addTestUser(t, srv)

	resp := doQuery(t, srv, "", loginMutation, map[string]any{
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Empty(t, resp.Errors)
	authData := resp.Data["login"].(map[string]any)
	assert.NotEmpty(t, authData["token"])
	user := authData["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	srv := newTestServer(t, false)
	addTestUser(t, srv)

	unknown := doQuery(t, srv, "", loginMutation, map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever password",
	})
	wrongPass := doQuery(t, srv, "", loginMutation, map[string]any{
		"email":    "alice@example.com",
		"password": "wrong password",
	})

	require.NotEmpty(t, unknown.Errors)
	require.NotEmpty(t, wrongPass.Errors)
	assert.Equal(t, unknown.Errors[0].Message, wrongPass.Errors[0].Message)
	assert.Contains(t, unknown.Errors[0].Message, "invalid email or password")
}

func TestSaveBookAndMe(t *testing.T) {
	srv := newTestServer(t, false)
	token := addTestUser(t, srv)

	resp := doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})
	require.Empty(t, resp.Errors)
	saved := resp.Data["saveBook"].(map[string]any)
	assert.EqualValues(t, 1, saved["bookCount"])

	me := doQuery(t, srv, token, meQuery, nil)
	require.Empty(t, me.Errors)
	books := me.Data["me"].(map[string]any)["savedBooks"].([]any)
	require.Len(t, books, 1)
	book := books[0].(map[string]any)
	assert.Equal(t, "dune-1965", book["bookId"])
	assert.Equal(t, "Dune", book["title"])
}

func TestSaveBookTwiceAppends(t *testing.T) {
	srv := newTestServer(t, false)
	token := addTestUser(t, srv)

	doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})
	resp := doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})
	require.Empty(t, resp.Errors)
	saved := resp.Data["saveBook"].(map[string]any)
	assert.EqualValues(t, 2, saved["bookCount"])
}

func TestSaveBookDedupeEnabled(t *testing.T) {
	srv := newTestServer(t, true)
	token := addTestUser(t, srv)

	doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})
	resp := doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})
	require.Empty(t, resp.Errors)
	saved := resp.Data["saveBook"].(map[string]any)
	assert.EqualValues(t, 1, saved["bookCount"])
}

func TestRemoveBook(t *testing.T) {
	srv := newTestServer(t, false)
	token := addTestUser(t, srv)

	doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})

	hyperion := duneInput()
	hyperion["bookId"] = "hyperion-1989"
	hyperion["title"] = "Hyperion"
	doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": hyperion})

	resp := doQuery(t, srv, token, removeBookMutation, map[string]any{"bookId": "dune-1965"})
	require.Empty(t, resp.Errors)
	removed := resp.Data["removeBook"].(map[string]any)
	assert.EqualValues(t, 1, removed["bookCount"])
	books := removed["savedBooks"].([]any)
	require.Len(t, books, 1)
	assert.Equal(t, "hyperion-1989", books[0].(map[string]any)["bookId"])
}

func TestRemoveAbsentBookIsNoop(t *testing.T) {
	srv := newTestServer(t, false)
	token := addTestUser(t, srv)

	doQuery(t, srv, token, saveBookMutation, map[string]any{"bookData": duneInput()})

	resp := doQuery(t, srv, token, removeBookMutation, map[string]any{"bookId": "book-nope"})
	require.Empty(t, resp.Errors)
	removed := resp.Data["removeBook"].(map[string]any)
	assert.EqualValues(t, 1, removed["bookCount"])
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, false)

	queries := map[string]struct {
		query     string
		variables map[string]any
	}{
		"me":         {meQuery, nil},
		"saveBook":   {saveBookMutation, map[string]any{"bookData": duneInput()}},
		"removeBook": {removeBookMutation, map[string]any{"bookId": "dune-1965"}},
	}
	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			resp := doQuery(t, srv, "", q.query, q.variables)
			require.NotEmpty(t, resp.Errors)
			assert.Contains(t, resp.Errors[0].Message, "You need to be logged in to perform this action")
		})
	}
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	srv := newTestServer(t, false)
	addTestUser(t, srv)

	resp := doQuery(t, srv, "not-a-real-token", meQuery, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "You need to be logged in to perform this action")
}

func TestDuplicateAddUser(t *testing.T) {
	srv := newTestServer(t, false)
	addTestUser(t, srv)

	resp := doQuery(t, srv, "", addUserMutation, map[string]any{
		"username": "alice",
		"email":    "alice2@example.com",
		"password": "another password",
	})
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "already in use")
}

func TestMeErrorNullsWholeData(t *testing.T) {
	srv := newTestServer(t, false)

	resp := doQuery(t, srv, "", meQuery, nil)
	require.NotEmpty(t, resp.Errors)

	// me is non-nullable, so a resolver error propagates to the root and
	// the response carries no {"me": null} placeholder.
	_, present := resp.Data["me"]
	assert.False(t, present)
	assert.Empty(t, resp.Data)
}
