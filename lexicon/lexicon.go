// Package lexicon holds the candidate word pool for a puzzle. Words
// are upper-cased and deduplicated on the way in; the pool is
// read-only after construction.
package lexicon

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cruzado/cruzado/cache"
)

// A Pool is a normalized set of candidate words, bucketed by length.
type Pool struct {
	words []string
	byLen map[int][]string
}

// NewPool normalizes (upper-case), dedupes, and sorts the given words.
func NewPool(words []string) *Pool {
	seen := make(map[string]bool, len(words))
	unique := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		unique = append(unique, w)
	}
	sort.Strings(unique)

	byLen := make(map[int][]string)
	for _, w := range unique {
		byLen[len(w)] = append(byLen[len(w)], w)
	}
	return &Pool{words: unique, byLen: byLen}
}

// Words returns every word in the pool, sorted. The returned slice
// must not be modified.
func (p *Pool) Words() []string {
	return p.words
}

// ByLength returns the words of exactly length n, sorted.
func (p *Pool) ByLength(n int) []string {
	return p.byLen[n]
}

// Len is the number of distinct words in the pool.
func (p *Pool) Len() int {
	return len(p.words)
}

// Has reports whether the (case-insensitive) word is in the pool.
func (p *Pool) Has(word string) bool {
	word = strings.ToUpper(word)
	i := sort.SearchStrings(p.words, word)
	return i < len(p.words) && p.words[i] == word
}

// LoadFile reads a whitespace-delimited word list from a text file.
func LoadFile(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	pool := NewPool(words)
	log.Debug().Str("path", path).Int("words", pool.Len()).Msg("loaded word list")
	return pool, nil
}

// Load is like LoadFile, but caches the pool globally by path, so big
// word lists are only read once per process.
func Load(path string) (*Pool, error) {
	obj, err := cache.Load("wordfile:"+path, func(key string) (interface{}, error) {
		return LoadFile(strings.TrimPrefix(key, "wordfile:"))
	})
	if err != nil {
		return nil, err
	}
	return obj.(*Pool), nil
}
