// internal/fallback/table.go
//
// Curated fallback chains for when dynamic generation dead-ends or the
// lexicon service is unreachable.
//
// Responsibilities:
//   - Load chains from a CHAINS_FILE env-provided file or fall back to the
//     embedded default table.
//   - Validate every line (six words, alphabetic, length bounds, no
//     duplicates); bad lines are skipped with a warning.
//   - Supply a uniformly-random chain on demand.
//
// Chain file format: one chain per line, six space-separated words, each
// adjacent pair a hand-verified two-word phrase. Blank lines and lines
// starting with "#" are ignored.
//
// The table is immutable after Load; Random hands out copies.

package fallback

import (
	"bufio"
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed default_chains.txt
var embeddedChains string

const (
	chainLen   = 6
	minWordLen = 3
	maxWordLen = 12
)

// Rand is the randomness source for chain selection.
type Rand interface {
	Intn(n int) int
}

// Table holds the validated fallback chains.
type Table struct {
	chains [][]string
}

// New builds a Table directly from pre-parsed chains. Load is the normal
// entry point; New exists for wiring small tables in tests.
func New(chains [][]string) *Table {
	return &Table{chains: chains}
}

// Load reads the fallback table once at startup.
// If CHAINS_FILE is set, chains are loaded from that file; otherwise the
// embedded defaults are used. Returns an error if no valid chains remain.
func Load() (*Table, error) {
	var lines []string
	if path := os.Getenv("CHAINS_FILE"); path != "" {
		fileLines, err := readLines(path)
		if err != nil {
			return nil, err
		}
		lines = fileLines
	} else {
		lines = strings.Split(embeddedChains, "\n")
	}

	t := &Table{}
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		ch, ok := parseChain(s)
		if !ok {
			log.Warn().Str("line", s).Msg("skipping invalid fallback chain")
			continue
		}
		t.chains = append(t.chains, ch)
	}
	if len(t.chains) == 0 {
		return nil, errors.New("fallback: chain table is empty")
	}
	return t, nil
}

// Random returns a copy of a uniformly-random chain from the table.
func (t *Table) Random(rng Rand) ([]string, error) {
	if len(t.chains) == 0 {
		return nil, errors.New("fallback: chain table is empty")
	}
	src := t.chains[rng.Intn(len(t.chains))]
	out := make([]string, chainLen)
	copy(out, src)
	return out, nil
}

// Len reports how many chains are loaded.
func (t *Table) Len() int { return len(t.chains) }

// parseChain validates one line and returns it as a capitalized chain.
// Rejects lines that are not exactly six alphabetic words within length
// bounds, or that repeat a word (case-insensitive).
func parseChain(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) != chainLen {
		return nil, false
	}
	seen := make(map[string]struct{}, chainLen)
	out := make([]string, 0, chainLen)
	for _, f := range fields {
		if len(f) < minWordLen || len(f) > maxWordLen || !isAlpha(f) {
			return nil, false
		}
		w := strings.ToLower(f)
		if _, dup := seen[w]; dup {
			return nil, false
		}
		seen[w] = struct{}{}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return out, true
}

// readLines loads raw lines from a chains file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// isAlpha checks that a string consists only of ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return len(s) > 0
}
