package cli

import (
	"context"
	"testing"

	"github.com/thenoetrevino/cafe/internal/app"
	"github.com/thenoetrevino/cafe/internal/database"
)

// SetupCLITest creates an App over a fresh in-memory database.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) *app.App {
	t.Helper()

	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	appInstance := app.New(db)
	t.Cleanup(func() {
		if err := appInstance.Close(); err != nil {
			t.Logf("Failed to close test app: %v", err)
		}
	})
	return appInstance
}

// Repo returns the concrete repository behind a test App for fixtures
func Repo(t *testing.T, a *app.App) *database.Repository {
	t.Helper()
	repo, ok := a.Repo().(*database.Repository)
	if !ok {
		t.Fatalf("unexpected repository type %T", a.Repo())
	}
	return repo
}
