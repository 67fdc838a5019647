// Package main seeds the database with a demo user and a few saved books.
// Useful for local client development against realistic data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfwiseapp/shelfwise-server/internal/auth"
	"github.com/shelfwiseapp/shelfwise-server/internal/domain"
	"github.com/shelfwiseapp/shelfwise-server/internal/id"
	"github.com/shelfwiseapp/shelfwise-server/internal/store/sqlite"
)

func main() {
	dataPath := flag.String("data-path", "", "Base path for data storage (required)")
	email := flag.String("email", "demo@example.com", "Demo user email")
	username := flag.String("username", "demo", "Demo user username")
	password := flag.String("password", "demo-password", "Demo user password")
	flag.Parse()

	if *dataPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -data-path <dir> [-email ...] [-username ...] [-password ...]")
		os.Exit(1)
	}

	if err := run(*dataPath, *username, *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(dataPath, username, email, password string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := sqlite.Open(filepath.Join(dataPath, "shelfwise.db"), logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Record: domain.Record{
			ID: userID,
		},
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		LastLoginAt:  time.Now(),
	}
	user.InitTimestamps()

	ctx := context.Background()
	if err := s.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	books := []domain.Book{
		{
			BookID:      "zyTCAlFPjgYC",
			Title:       "The Google Story",
			Authors:     []string{"David A. Vise", "Mark Malseed"},
			Description: "The definitive account of one of the most remarkable organizations of our time.",
			Image:       "https://books.google.com/books/content?id=zyTCAlFPjgYC&printsec=frontcover&img=1",
			Link:        "https://books.google.com/books?id=zyTCAlFPjgYC",
		},
		{
			BookID:      "B1hSG45JCX4C",
			Title:       "Dune",
			Authors:     []string{"Frank Herbert"},
			Description: "Science fiction's supreme masterpiece.",
			Image:       "https://books.google.com/books/content?id=B1hSG45JCX4C&printsec=frontcover&img=1",
			Link:        "https://books.google.com/books?id=B1hSG45JCX4C",
		},
		{
			BookID:      "PXa2bby0oQ0C",
			Title:       "The Name of the Wind",
			Authors:     []string{"Patrick Rothfuss"},
			Description: "The tale of the magically gifted young man who grows to be the most notorious wizard his world has ever seen.",
			Image:       "https://books.google.com/books/content?id=PXa2bby0oQ0C&printsec=frontcover&img=1",
			Link:        "https://books.google.com/books?id=PXa2bby0oQ0C",
		},
	}
	for _, b := range books {
		if err := s.AddSavedBook(ctx, userID, b, false); err != nil {
			return fmt.Errorf("save book %s: %w", b.BookID, err)
		}
	}

	fmt.Printf("Seeded user %s (%s) with %d saved books\n", username, email, len(books))
	return nil
}
