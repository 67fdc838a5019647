package domain

import "time"

// User represents an authenticated user account and the books saved to
// their shelf. SavedBooks is ordered by insertion; duplicates are allowed
// unless save-time deduplication is enabled in config.
type User struct {
	Record
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	LastLoginAt  time.Time `json:"last_login_at"`
	SavedBooks   []Book    `json:"saved_books"`
}

// BookCount returns the number of books on the user's shelf.
func (u *User) BookCount() int {
	return len(u.SavedBooks)
}

// HasSavedBook reports whether any saved book matches the given external
// book ID.
func (u *User) HasSavedBook(bookID string) bool {
	for _, b := range u.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}
