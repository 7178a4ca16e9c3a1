// internal/chain/filter.go
//
// Candidate filtering for chain extension.
// Responsibilities:
//   - Normalize raw lexicon results (trim, Title-case single word).
//   - Drop anything non-alphabetic, too short/long, or already in the chain.
//   - Preserve the lexicon's rank order and cap the batch size.
//
// Filtering is pure: same raw input + same used set → same output.

package chain

import "strings"

const (
	minWordLen    = 3
	maxWordLen    = 12
	maxCandidates = 15
)

// FilterCandidates normalizes raw lexicon results and returns the usable
// candidates in original rank order, truncated to maxCandidates.
//
// A candidate is dropped when it:
//   - is not purely alphabetic (hyphenated/multi-word results),
//   - falls outside [minWordLen, maxWordLen],
//   - already appears in used (case-insensitive), or
//   - duplicates an earlier candidate in the same batch.
func FilterCandidates(raw []string, used []string) []string {
	seen := make(map[string]struct{}, len(used)+len(raw))
	for _, w := range used {
		seen[strings.ToLower(w)] = struct{}{}
	}

	out := make([]string, 0, maxCandidates)
	for _, r := range raw {
		w := strings.TrimSpace(r)
		if len(w) < minWordLen || len(w) > maxWordLen || !isAlpha(w) {
			continue
		}
		w = capitalize(w)
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
		if len(out) == maxCandidates {
			break
		}
	}
	return out
}

// capitalize lowercases s and uppercases the first letter only.
func capitalize(s string) string {
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
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
