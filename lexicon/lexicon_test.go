package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestNewPoolNormalizes(t *testing.T) {
	is := is.New(t)
	p := NewPool([]string{"cat", "DOG", "Cat", " ace ", "dog", ""})
	is.Equal(p.Words(), []string{"ACE", "CAT", "DOG"})
	is.Equal(p.Len(), 3)
}

func TestByLength(t *testing.T) {
	is := is.New(t)
	p := NewPool([]string{"CAT", "HOUSE", "DOG", "ACE", "WORDS"})
	is.Equal(p.ByLength(3), []string{"ACE", "CAT", "DOG"})
	is.Equal(p.ByLength(5), []string{"HOUSE", "WORDS"})
	is.Equal(len(p.ByLength(7)), 0)
}

func TestHas(t *testing.T) {
	is := is.New(t)
	p := NewPool([]string{"CAT", "DOG"})
	is.True(p.Has("CAT"))
	is.True(p.Has("dog"))
	is.True(!p.Has("ACE"))
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	err := os.WriteFile(path, []byte("cat dog\nace\nCAT\n"), 0o644)
	is.NoErr(err)

	p, err := LoadFile(path)
	is.NoErr(err)
	is.Equal(p.Words(), []string{"ACE", "CAT", "DOG"})
}

func TestLoadFileMissing(t *testing.T) {
	is := is.New(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	is.True(err != nil)
}

func TestLoadCaches(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	err := os.WriteFile(path, []byte("cat dog"), 0o644)
	is.NoErr(err)

	p1, err := Load(path)
	is.NoErr(err)

	// Even after the file disappears, the cached pool is returned.
	is.NoErr(os.Remove(path))
	p2, err := Load(path)
	is.NoErr(err)
	is.Equal(p1, p2)
}
