package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"bookmarkapi/internal/auth"
	"bookmarkapi/internal/config"
	"bookmarkapi/internal/db"
	apperrors "bookmarkapi/internal/errors"
	"bookmarkapi/internal/model"
	"bookmarkapi/internal/repository"
	"bookmarkapi/internal/service"
)

// SeedUser is one entry of the seed fixture.
type SeedUser struct {
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	Bookmarks []SeedBookmark `json:"bookmarks"`
}

// SeedBookmark is a bookmark owned by a SeedUser.
type SeedBookmark struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Usage: seed <file.json | https://...>
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if len(os.Args) != 2 {
		logger.Error("usage: seed <fixture.json | url>")
		os.Exit(2)
	}
	source := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, false, &model.User{}, &model.Bookmark{}); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	users, err := loadFixture(source)
	if err != nil {
		logger.Error("load fixture", "source", source, "error", err)
		os.Exit(1)
	}
	logger.Info("fixture loaded", "users", len(users))

	hasher := auth.NewPasswordHasher(auth.HashParams{
		MemoryKiB:  cfg.Argon2MemoryKiB,
		Iterations: cfg.Argon2Iterations,
		Threads:    cfg.Argon2Threads,
	}, cfg.HashConcurrency)
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), hasher, auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL))
	bookmarkService := service.NewBookmarkService(repository.NewBookmarkRepository(gormDB), nil, 0)

	created, skipped, err := seed(context.Background(), authService, bookmarkService, users)
	if err != nil {
		logger.Error("seed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed", "users_created", created, "users_skipped", skipped)
}

// seed signs up every fixture user and creates their bookmarks. Users whose
// email already exists are skipped along with their bookmarks.
func seed(ctx context.Context, authService service.AuthService, bookmarkService service.BookmarkService, users []SeedUser) (created, skipped int, err error) {
	for _, u := range users {
		result, err := authService.SignUp(ctx, u.Email, u.Password)
		if errors.Is(err, apperrors.ErrCredentialsTaken) {
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("sign up %s: %w", u.Email, err)
		}
		for _, b := range u.Bookmarks {
			if _, err := bookmarkService.Create(ctx, result.User.ID, service.CreateBookmarkInput{
				Title:       b.Title,
				Description: b.Description,
				Link:        b.Link,
			}); err != nil {
				return created, skipped, fmt.Errorf("create bookmark %q for %s: %w", b.Title, u.Email, err)
			}
		}
		created++
	}
	return created, skipped, nil
}

func loadFixture(source string) ([]SeedUser, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch fixture: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fixture returned status code: %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		r = f
	}
	defer r.Close()

	var users []SeedUser
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return users, nil
}
