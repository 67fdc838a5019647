package domain

// Book is a value object embedded in a user's shelf. It has no identity of
// its own outside the owning user; BookID is the external books-API
// identifier used as the dedup/removal key.
type Book struct {
	BookID      string   `json:"book_id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
}
