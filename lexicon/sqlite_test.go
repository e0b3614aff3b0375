package lexicon

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	_ "modernc.org/sqlite"
)

func newWordDB(t *testing.T, words []string) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "words.db")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE words (word TEXT NOT NULL)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, w := range words {
		if _, err := db.Exec("INSERT INTO words (word) VALUES (?)", w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return dsn
}

func TestLoadSQLite(t *testing.T) {
	is := is.New(t)
	dsn := newWordDB(t, []string{"cat", "dog", "Cat", "ace"})

	p, err := LoadSQLite(context.Background(), dsn, "words")
	is.NoErr(err)
	is.Equal(p.Words(), []string{"ACE", "CAT", "DOG"})
}

func TestLoadSQLiteBadTable(t *testing.T) {
	is := is.New(t)
	dsn := newWordDB(t, []string{"cat"})

	_, err := LoadSQLite(context.Background(), dsn, "words; DROP TABLE words")
	is.True(err != nil)

	_, err = LoadSQLite(context.Background(), dsn, "missing_table")
	is.True(err != nil)
}
