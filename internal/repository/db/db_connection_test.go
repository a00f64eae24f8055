package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchemaAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remo.db")

	conn, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO config (key, value) VALUES ('token', 'abc')`); err != nil {
		t.Fatalf("insert into config: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening an existing file must keep the data.
	conn, err = InitDB(path)
	if err != nil {
		t.Fatalf("InitDB (reopen): %v", err)
	}
	defer func() { _ = conn.Close() }()

	var v string
	if err := conn.QueryRow(`SELECT value FROM config WHERE key = 'token'`).Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "abc" {
		t.Fatalf("value = %q; want %q", v, "abc")
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM control_events`).Scan(&n); err != nil {
		t.Fatalf("control_events missing: %v", err)
	}
}
