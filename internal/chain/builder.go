// internal/chain/builder.go
//
// Core chain builder: a random walk over the lexicon's "follows" relation.
// Responsibilities:
//   - Pick a random seed word from a fixed high-connectivity set.
//   - Repeatedly look up followers of the chain's last word, filter them,
//     and append one at random until the chain reaches six words.
//   - Bound the walk with an attempts budget; on any dead end, discard the
//     partial chain and return a curated fallback chain instead.
//
// Notes:
//   - No backtracking. A dead end abandons the whole walk rather than
//     retrying earlier words, which keeps latency bounded by a single
//     lookup sequence.
//   - Build only errors when the fallback table itself is unusable.

package chain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phrasechain/go-server/internal/fallback"
)

const (
	chainLen    = 6
	maxAttempts = 20
)

// seedWords are common first words of two-word phrases, so a walk starting
// from any of them has plenty of outgoing edges.
var seedWords = []string{
	"Fire", "Water", "Sun", "Snow", "Black",
	"Gold", "Night", "Rain", "Sea", "Light",
	"Moon", "Star",
}

// Lexicon supplies ranked follower words for a given word.
// The production implementation degrades to an empty result on any
// failure, so callers only ever see candidates or nothing.
type Lexicon interface {
	Follows(ctx context.Context, word string) []string
}

// Source reports where a built chain came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Result is one completed build: the chain, the seed the walk started
// from, and where the chain came from.
type Result struct {
	Words  []string
	Seed   string
	Source Source
}

// Builder assembles word chains from a lexicon, with a fallback table for
// dead ends. Safe for concurrent use: per-build state is local and the
// injected Rand is expected to be concurrency-safe.
type Builder struct {
	lex   Lexicon
	table *fallback.Table
	rng   Rand
}

// NewBuilder wires a Builder from its dependencies.
func NewBuilder(lex Lexicon, table *fallback.Table, rng Rand) *Builder {
	return &Builder{lex: lex, table: table, rng: rng}
}

// Build returns a six-word chain, the seed it started from, and its source.
//
// The walk extends the chain while attempts remain; the first lookup that
// yields zero usable candidates ends it immediately. A complete chain is
// returned as-is; anything shorter is discarded in favor of a fallback
// chain (Seed then still names the abandoned walk's seed). The returned
// error is non-nil only when the fallback table is empty, which is a
// configuration error rather than a runtime condition.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	seed := seedWords[b.rng.Intn(len(seedWords))]
	words := []string{seed}

	for attempts := maxAttempts; len(words) < chainLen && attempts > 0; attempts-- {
		raw := b.lex.Follows(ctx, words[len(words)-1])
		cands := FilterCandidates(raw, words)
		if len(cands) == 0 {
			break
		}
		words = append(words, cands[b.rng.Intn(len(cands))])
	}

	if len(words) == chainLen {
		return Result{Words: words, Seed: seed, Source: SourceGenerated}, nil
	}

	log.Debug().Str("seed", seed).Int("reached", len(words)).Msg("dead end, using fallback chain")
	fb, err := b.table.Random(b.rng)
	if err != nil {
		return Result{}, fmt.Errorf("fallback chain: %w", err)
	}
	return Result{Words: fb, Seed: seed, Source: SourceFallback}, nil
}
