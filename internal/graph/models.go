// Package graph exposes the GraphQL API. The schema is derived from the
// structs in this file; resolver functions are wired in handler.go.
package graph

// Book mirrors a saved search result on a user's shelf.
type Book struct {
	BookID      string `egg:"bookId"`
	Title       string
	Authors     []string
	Description string
	Image       string
	Link        string
}

// User is the account shape returned by me, addUser, saveBook, and
// removeBook. The password hash never crosses this boundary.
type User struct {
	ID         string `egg:"_id"`
	Username   string
	Email      string
	BookCount  int
	SavedBooks []Book
}

// Auth is returned by login and addUser: a signed bearer token plus the
// authenticated user.
type Auth struct {
	Token string
	User  User
}

// BookInput carries the book fields captured client-side from the search
// results when saving. Input fields are matched back to Go fields by
// upper-casing the first rune of the GraphQL name, so this field must be
// spelled BookId, not BookID.
type BookInput struct {
	BookId      string `egg:"bookId"`
	Title       string
	Authors     []string
	Description string
	Image       string
	Link        string
}
