package models

import (
	"path/filepath"
	"testing"

	"github.com/taskboard-dev/taskboard/db"
)

// openTestDB points the global connection at a throwaway database so tests
// exercise the real schema, including its CHECK and foreign key constraints.
func openTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	if err := db.ConnectDatabase(path); err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("MigrateDatabase: %v", err)
	}
}

func createTestUser(t *testing.T, username string) int64 {
	t.Helper()

	user, err := CreateUser(username, username+"@example.com", "not-a-real-hash")

	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}

	return user.ID
}
