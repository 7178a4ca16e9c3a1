package chain

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrasechain/go-server/internal/fallback"
)

// stubLexicon serves a fixed follower graph keyed by lowercase word.
type stubLexicon struct {
	graph map[string][]string
	calls int
}

func (s *stubLexicon) Follows(ctx context.Context, word string) []string {
	s.calls++
	return s.graph[strings.ToLower(word)]
}

// firstPick always selects index 0, making walks deterministic.
type firstPick struct{}

func (firstPick) Intn(n int) int { return 0 }

var wordShape = regexp.MustCompile(`^[A-Z][a-z]+$`)

func assertValidChain(t *testing.T, words []string) {
	t.Helper()
	require.Len(t, words, 6)
	seen := map[string]struct{}{}
	for _, w := range words {
		assert.Regexp(t, wordShape, w)
		key := strings.ToLower(w)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate word %q", w)
		seen[key] = struct{}{}
	}
}

func loadTable(t *testing.T) *fallback.Table {
	t.Helper()
	t.Setenv("CHAINS_FILE", "")
	table, err := fallback.Load()
	require.NoError(t, err)
	return table
}

func TestBuildDeadEndOnFirstLookup(t *testing.T) {
	lex := &stubLexicon{graph: map[string][]string{}}
	b := NewBuilder(lex, loadTable(t), firstPick{})

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 1, lex.calls, "dead end on the first extension must stop immediately")
	assert.Equal(t, "Fire", res.Seed, "seed of the abandoned walk is still reported")
	assertValidChain(t, res.Words)
}

func TestBuildDeterministicPath(t *testing.T) {
	lex := &stubLexicon{graph: map[string][]string{
		"fire":  {"ball"},
		"ball":  {"park"},
		"park":  {"bench"},
		"bench": {"press"},
		"press": {"release"},
	}}
	b := NewBuilder(lex, loadTable(t), firstPick{})

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, res.Source)
	assert.Equal(t, []string{"Fire", "Ball", "Park", "Bench", "Press", "Release"}, res.Words)
	assert.Equal(t, "Fire", res.Seed)
	assert.Equal(t, 5, lex.calls)
}

func TestBuildDeadEndMidWalk(t *testing.T) {
	lex := &stubLexicon{graph: map[string][]string{
		"fire": {"ball"},
		"ball": {},
	}}
	b := NewBuilder(lex, loadTable(t), firstPick{})

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 2, lex.calls)
	assertValidChain(t, res.Words)
}

func TestBuildSkipsWordsAlreadyInChain(t *testing.T) {
	// Every lookup offers the chain's own words first; the filter must
	// reject them so the walk keeps making progress without duplicates.
	lex := &stubLexicon{graph: map[string][]string{
		"fire":  {"fire", "ball"},
		"ball":  {"ball", "fire", "park"},
		"park":  {"fire", "bench"},
		"bench": {"park", "press"},
		"press": {"press", "release"},
	}}
	b := NewBuilder(lex, loadTable(t), firstPick{})

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, res.Source)
	assertValidChain(t, res.Words)
}

func TestBuildCatastrophicWhenFallbackEmpty(t *testing.T) {
	lex := &stubLexicon{graph: map[string][]string{}}
	b := NewBuilder(lex, fallback.New(nil), firstPick{})

	_, err := b.Build(context.Background())
	assert.Error(t, err)
}

func TestBuildGeneratedChainsAreWellFormed(t *testing.T) {
	// A richly connected graph built with a real (seeded) random source
	// must still only ever produce well-formed chains, each reporting the
	// seed it actually started from.
	graph := map[string][]string{}
	followers := []string{"ball", "park", "bench", "press", "release", "note", "book", "case", "work", "shop"}
	for _, seed := range seedWords {
		graph[strings.ToLower(seed)] = followers
	}
	for _, w := range followers {
		graph[w] = followers
	}
	lex := &stubLexicon{graph: graph}
	b := NewBuilder(lex, loadTable(t), NewLockedRand(1))

	for i := 0; i < 50; i++ {
		res, err := b.Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceGenerated, res.Source)
		assert.Contains(t, seedWords, res.Seed)
		assert.Equal(t, res.Seed, res.Words[0])
		assertValidChain(t, res.Words)
	}
}
