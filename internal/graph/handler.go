package graph

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/andrewwphillips/eggql"

	"github.com/shelfwiseapp/shelfwise-server/internal/auth"
	"github.com/shelfwiseapp/shelfwise-server/internal/domain"
	domainerrors "github.com/shelfwiseapp/shelfwise-server/internal/errors"
	"github.com/shelfwiseapp/shelfwise-server/internal/service"
)

// msgLoginRequired is returned by every resolver that needs an
// authenticated caller.
const msgLoginRequired = "You need to be logged in to perform this action"

// Query is the GraphQL query root. Me returns a value, not a pointer, so
// the derived schema type is the non-nullable User!.
type Query struct {
	Me    func(ctx context.Context) (User, error) `egg:"me"`
	Hello func() string                           `egg:"hello"`
}

// Mutation is the GraphQL mutation root.
type Mutation struct {
	Login      func(ctx context.Context, email, password string) (*Auth, error)           `egg:"login(email,password)"`
	AddUser    func(ctx context.Context, username, email, password string) (*Auth, error) `egg:"addUser(username,email,password)"`
	SaveBook   func(ctx context.Context, bookData BookInput) (*User, error)               `egg:"saveBook(bookData)"`
	RemoveBook func(ctx context.Context, bookID string) (*User, error)                    `egg:"removeBook(bookId)"`
}

// Resolver binds the GraphQL roots to the application services.
type Resolver struct {
	authService  *service.AuthService
	shelfService *service.ShelfService
	logger       *slog.Logger
}

// NewResolver creates a resolver backed by the given services.
func NewResolver(authService *service.AuthService, shelfService *service.ShelfService, logger *slog.Logger) *Resolver {
	return &Resolver{
		authService:  authService,
		shelfService: shelfService,
		logger:       logger,
	}
}

// Handler builds the GraphQL http.Handler. The schema is derived from the
// Query and Mutation structs, so it cannot drift from the resolvers.
func (r *Resolver) Handler() http.Handler {
	query := Query{
		Me:    r.me,
		Hello: func() string { return "Hello, World!" },
	}
	mutation := Mutation{
		Login:      r.login,
		AddUser:    r.addUser,
		SaveBook:   r.saveBook,
		RemoveBook: r.removeBook,
	}
	return eggql.MustRun(query, mutation)
}

func (r *Resolver) me(ctx context.Context) (User, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return User{}, domainerrors.Unauthorized(msgLoginRequired)
	}

	user, err := r.shelfService.Me(ctx, userID)
	if err != nil {
		return User{}, err
	}
	return *toUser(user), nil
}

func (r *Resolver) login(ctx context.Context, email, password string) (*Auth, error) {
	resp, err := r.authService.Login(ctx, service.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return toAuth(resp), nil
}

func (r *Resolver) addUser(ctx context.Context, username, email, password string) (*Auth, error) {
	resp, err := r.authService.Register(ctx, service.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return toAuth(resp), nil
}

func (r *Resolver) saveBook(ctx context.Context, bookData BookInput) (*User, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, domainerrors.Unauthorized(msgLoginRequired)
	}

	user, err := r.shelfService.SaveBook(ctx, userID, service.SaveBookRequest{
		BookID:      bookData.BookId,
		Title:       bookData.Title,
		Authors:     bookData.Authors,
		Description: bookData.Description,
		Image:       bookData.Image,
		Link:        bookData.Link,
	})
	if err != nil {
		return nil, err
	}
	return toUser(user), nil
}

func (r *Resolver) removeBook(ctx context.Context, bookID string) (*User, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, domainerrors.Unauthorized(msgLoginRequired)
	}

	user, err := r.shelfService.RemoveBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return toUser(user), nil
}

// toUser converts a domain user to its API shape, dropping credentials.
func toUser(u *domain.User) *User {
	books := make([]Book, len(u.SavedBooks))
	for i, b := range u.SavedBooks {
		books[i] = Book{
			BookID:      b.BookID,
			Title:       b.Title,
			Authors:     b.Authors,
			Description: b.Description,
			Image:       b.Image,
			Link:        b.Link,
		}
	}
	return &User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		BookCount:  u.BookCount(),
		SavedBooks: books,
	}
}

func toAuth(resp *service.AuthResponse) *Auth {
	return &Auth{
		Token: resp.Token,
		User:  *toUser(resp.User),
	}
}
