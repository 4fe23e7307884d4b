package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "oat milk", Normalize("Oat  Milk"))
	assert.Equal(t, "oat milk 2", Normalize("  Oat--Milk (2)  "))
	assert.Equal(t, "whole milk", Normalize("WHOLE/MILK!"))
	assert.Equal(t, "", Normalize("---"))
}

func TestScoreExactMatch(t *testing.T) {
	// Exact match earns exact + substring + per-token points.
	score := Score("Oat Milk", []string{"oat milk"})
	assert.Equal(t, 30+20+4+4, score)
}

func TestScoreSubstringMatch(t *testing.T) {
	// "milk" inside "Whole Milk": substring + one token.
	score := Score("Whole Milk", []string{"milk"})
	assert.Equal(t, 20+4, score)
}

func TestScoreAccumulatesAcrossFragments(t *testing.T) {
	score := Score("Whole Milk", []string{"whole milk", "milk"})
	assert.Equal(t, (30+20+4+4)+(20+4), score)
}

func TestScoreTokenOnly(t *testing.T) {
	// "vanilla syrup" against "Vanilla Bean Sauce": the fragment is not a
	// substring but one of its tokens is.
	score := Score("Vanilla Bean Sauce", []string{"vanilla syrup"})
	assert.Equal(t, 4, score)
}

func TestBestThreshold(t *testing.T) {
	catalog := []Candidate{
		{ID: "1", Name: "Vanilla Bean Sauce"},
	}

	// Token-only match (4) falls below the threshold.
	_, ok := Best(catalog, []string{"vanilla syrup"})
	assert.False(t, ok)

	// Three token hits across fragments: 4 + 4 + 4 = 12, exactly at the
	// acceptance floor.
	match, ok := Best(catalog, []string{"vanilla syrup", "bean syrup", "sauce base"})
	require.True(t, ok)
	assert.Equal(t, AcceptThreshold, match.Score)
}

func TestBestPicksHighestScore(t *testing.T) {
	catalog := []Candidate{
		{ID: "1", Name: "Chocolate Sauce"},
		{ID: "2", Name: "Oat Milk"},
		{ID: "3", Name: "Whole Milk"},
	}

	match, ok := Best(catalog, []string{"oat milk"})
	require.True(t, ok)
	assert.Equal(t, "2", match.ID)
}

func TestBestTieKeepsFirstSeen(t *testing.T) {
	catalog := []Candidate{
		{ID: "a", Name: "House Blend Beans"},
		{ID: "b", Name: "House Blend Beans"},
	}

	match, ok := Best(catalog, []string{"house blend beans"})
	require.True(t, ok)
	assert.Equal(t, "a", match.ID)
}

func TestBestNoCandidates(t *testing.T) {
	_, ok := Best(nil, []string{"milk"})
	assert.False(t, ok)
}

func TestRuleTableEvaluate(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Pattern: "milk", Outcome: "dairy", Priority: 10},
		{Pattern: "oat", Outcome: "alt-milk", Priority: 20},
	})

	// Higher priority wins even though both patterns occur.
	assert.Equal(t, "alt-milk", table.Evaluate("Oat Milk", "uncategorized"))
	assert.Equal(t, "dairy", table.Evaluate("Whole Milk (Gallon)", "uncategorized"))
	assert.Equal(t, "uncategorized", table.Evaluate("Napkins", "uncategorized"))
}

func TestRuleTableStableOrderOnEqualPriority(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Pattern: "blend", Outcome: "first", Priority: 5},
		{Pattern: "house", Outcome: "second", Priority: 5},
	})
	assert.Equal(t, "first", table.Evaluate("House Blend", ""))
}

func TestDefaultCategoryRules(t *testing.T) {
	table := NewRuleTable(DefaultCategoryRules)
	assert.Equal(t, "alt-milk", table.Evaluate("Oat Milk", "other"))
	assert.Equal(t, "coffee", table.Evaluate("Espresso Roast", "other"))
	assert.Equal(t, "supplies", table.Evaluate("12oz Cup", "other"))
}
