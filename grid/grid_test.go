package grid

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestNew(t *testing.T) {
	is := is.New(t)
	g, err := New([]string{
		`#_#`,
		`___`,
		`#_#`,
	})
	is.NoErr(err)
	is.Equal(g.Height(), 3)
	is.Equal(g.Width(), 3)
	is.True(g.Open(1, 0))
	is.True(g.Open(0, 1))
	is.True(!g.Open(0, 0))
	is.True(!g.Open(2, 2))
}

func TestNewEmpty(t *testing.T) {
	is := is.New(t)
	g, err := New(nil)
	is.NoErr(err)
	is.Equal(g.Height(), 0)
	is.Equal(g.Width(), 0)
}

func TestNewRagged(t *testing.T) {
	is := is.New(t)
	_, err := New([]string{
		`#__#`,
		`#__`,
	})
	is.True(errors.Is(err, ErrMalformedGrid))
}

func TestNewBadAlphabet(t *testing.T) {
	is := is.New(t)
	_, err := New([]string{
		`#_x`,
		`___`,
	})
	is.True(errors.Is(err, ErrMalformedGrid))
}

func TestString(t *testing.T) {
	is := is.New(t)
	rows := []string{
		`#_#`,
		`___`,
	}
	g, err := New(rows)
	is.NoErr(err)
	is.Equal(g.String(), "#_#\n___\n")
}
