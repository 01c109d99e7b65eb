package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.db")

	conn, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"readings", "session_events", "api_users"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// second open must be a no-op on an existing schema
	again, err := InitDB(path)
	if err != nil {
		t.Fatalf("re-open: %v", err)
	}
	_ = again.Close()
}
