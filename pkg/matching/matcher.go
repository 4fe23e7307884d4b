package matching

import (
	"strings"
	"unicode"
)

const (
	scoreExact     = 30
	scoreSubstring = 20
	scoreToken     = 4

	// AcceptThreshold is the minimum total score a catalog item must reach
	// before it is accepted as the match for a recipe line.
	AcceptThreshold = 12
)

// Candidate is one catalog entry offered to the matcher.
type Candidate struct {
	ID   string
	Name string
}

// Match is the accepted result of a lookup.
type Match struct {
	ID    string
	Name  string
	Score int
}

// Normalize lowercases the input, collapses every run of non-alphanumeric
// characters to a single space, and trims the ends.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Score totals the fragment scores for one item name. Contributions are
// cumulative: an exact fragment match also earns the substring and token
// points for that fragment.
func Score(itemName string, fragments []string) int {
	name := Normalize(itemName)
	total := 0
	for _, fragment := range fragments {
		frag := Normalize(fragment)
		if frag == "" {
			continue
		}
		if frag == name {
			total += scoreExact
		}
		if strings.Contains(name, frag) {
			total += scoreSubstring
		}
		for _, token := range strings.Fields(frag) {
			if strings.Contains(name, token) {
				total += scoreToken
			}
		}
	}
	return total
}

// Best selects the highest-scoring candidate for the given name fragments.
// Ties are broken by iteration order, first seen wins. A best score below
// AcceptThreshold reports no match instead of guessing.
func Best(candidates []Candidate, fragments []string) (Match, bool) {
	best := Match{}
	found := false
	for _, candidate := range candidates {
		score := Score(candidate.Name, fragments)
		if score < AcceptThreshold {
			continue
		}
		if !found || score > best.Score {
			best = Match{ID: candidate.ID, Name: candidate.Name, Score: score}
			found = true
		}
	}
	return best, found
}
