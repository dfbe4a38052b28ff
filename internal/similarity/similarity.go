// Package similarity ranks candidate strings by how closely they resemble a
// query. It backs typo correction for metric names and REPL verbs.
package similarity

import (
	"errors"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// ErrNoCandidates is returned by ClosestMatch when there is nothing to match against.
var ErrNoCandidates = errors.New("similarity: no candidates")

// Match is a candidate together with its similarity score.
type Match struct {
	Candidate string
	Score     float64
}

// Ratio returns a normalized similarity score in [0, 1] derived from the
// Levenshtein distance between a and b. Identical strings score 1.0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// Rank scores every candidate against query and returns them ordered by
// descending score. Candidates with equal scores keep their input order.
func Rank(query string, candidates []string) []Match {
	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		matches[i] = Match{Candidate: c, Score: Ratio(query, c)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// ClosestMatches returns up to k candidates most similar to query.
func ClosestMatches(query string, candidates []string, k int) []string {
	if k <= 0 {
		return nil
	}
	ranked := Rank(query, candidates)
	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := range k {
		out[i] = ranked[i].Candidate
	}
	return out
}

// ClosestMatch returns the single candidate most similar to query.
func ClosestMatch(query string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	return ClosestMatches(query, candidates, 1)[0], nil
}
