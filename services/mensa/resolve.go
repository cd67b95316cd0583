package mensa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// NotFoundError means a query matched no canonical entry. Suggestion
// carries the closest known short name when one is similar enough to
// be worth mentioning.
type NotFoundError struct {
	Kind       string
	Query      string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", e.Kind, e.Query, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Query)
}

// AmbiguousError means a query matched more than one entry; the caller
// must report the candidates, never guess.
type AmbiguousError struct {
	Kind    string
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf(
		"ambiguous %s %q, matches: %s",
		e.Kind, e.Query, strings.Join(e.Matches, ", "),
	)
}

const suggestionThreshold = 0.75

func closestShortName(query string) string {
	best := ""
	var bestSimilarity float64
	for short := range ShortNames {
		sim := matchr.JaroWinkler(query, short, false)
		if sim > bestSimilarity {
			bestSimilarity = sim
			best = short
		}
	}
	if bestSimilarity < suggestionThreshold {
		return ""
	}
	return best
}

// ResolveCanteen resolves a short query against the static short-name
// table by case-sensitive prefix match, then looks the canonical name
// up in the given snapshot. The snapshot must come from a single
// Cache.Read so one request never mixes two refresh generations.
func ResolveCanteen(snapshot Snapshot, query string) (string, Canteen, error) {
	var matches []string
	for short := range ShortNames {
		if strings.HasPrefix(short, query) {
			matches = append(matches, short)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", Canteen{}, &NotFoundError{
			Kind:       "canteen",
			Query:      query,
			Suggestion: closestShortName(query),
		}
	case 1:
		canonical := ShortNames[matches[0]]
		canteen, ok := snapshot[canonical]
		if !ok {
			return "", Canteen{}, &NotFoundError{Kind: "canteen", Query: query}
		}
		return canonical, canteen, nil
	default:
		return "", Canteen{}, &AmbiguousError{
			Kind:    "canteen",
			Query:   query,
			Matches: matches,
		}
	}
}

// ResolveLine resolves a canteen query and then a line query within
// it; line names match by suffix, so "3" finds "Linie 3".
func ResolveLine(snapshot Snapshot, canteenQuery, lineQuery string) (string, Line, error) {
	_, canteen, err := ResolveCanteen(snapshot, canteenQuery)
	if err != nil {
		return "", nil, err
	}

	var matches []string
	for _, name := range canteen.Order {
		if strings.HasSuffix(name, lineQuery) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return "", nil, &NotFoundError{Kind: "line", Query: lineQuery}
	case 1:
		return matches[0], canteen.Lines[matches[0]], nil
	default:
		return "", nil, &AmbiguousError{
			Kind:    "line",
			Query:   lineQuery,
			Matches: matches,
		}
	}
}
