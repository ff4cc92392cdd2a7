package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"
)

// Match is one ranked candidate. Score is only comparable within a single
// Rank call; higher is better.
type Match struct {
	Index int
	Score int
}

// Scorer ranks candidates against a query, best first. Matching ignores case
// and is Unicode aware.
type Scorer interface {
	Rank(query string, candidates []string) []Match
}

const (
	MatcherFuzzysearch = "fuzzysearch"
	MatcherSahilm      = "sahilm"
)

// Matchers lists the accepted --matcher values.
func Matchers() []string {
	return []string{MatcherFuzzysearch, MatcherSahilm}
}

// NewScorer returns the scorer registered under name. The empty name selects
// the default.
func NewScorer(name string) (Scorer, error) {
	switch strings.TrimSpace(name) {
	case "", MatcherFuzzysearch:
		return Fuzzysearch{}, nil
	case MatcherSahilm:
		return Sahilm{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q (want one of %s)", name, strings.Join(Matchers(), ", "))
	}
}

// Fuzzysearch ranks subsequence matches by edit distance after case folding
// and Unicode normalisation.
type Fuzzysearch struct{}

func (Fuzzysearch) Rank(query string, candidates []string) []Match {
	if query == "" {
		return all(candidates)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, candidates)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]Match, len(ranks))
	for i, r := range ranks {
		out[i] = Match{Index: r.OriginalIndex, Score: -r.Distance}
	}
	return out
}

// Sahilm ranks with the sublime-style scorer from github.com/sahilm/fuzzy,
// which rewards consecutive runs and word starts.
type Sahilm struct{}

func (Sahilm) Rank(query string, candidates []string) []Match {
	if query == "" {
		return all(candidates)
	}
	found := sahilm.Find(query, candidates)
	out := make([]Match, len(found))
	for i, m := range found {
		out[i] = Match{Index: m.Index, Score: m.Score}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	return out
}

func all(candidates []string) []Match {
	out := make([]Match, len(candidates))
	for i := range candidates {
		out[i] = Match{Index: i}
	}
	return out
}
