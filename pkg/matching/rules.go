package matching

import (
	"sort"
	"strings"
)

// Rule maps a keyword pattern to an outcome. Rule tables replace the ad hoc
// keyword maps that tend to grow inside sync code: the domain knowledge stays
// declarative and each table is testable on its own.
type Rule struct {
	Pattern  string
	Outcome  string
	Priority int
}

// RuleTable is an ordered set of rules evaluated against a normalized name.
// Higher priority wins; equal priorities keep insertion order.
type RuleTable struct {
	rules []Rule
}

func NewRuleTable(rules []Rule) *RuleTable {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &RuleTable{rules: sorted}
}

// Evaluate returns the outcome of the first rule whose pattern occurs in the
// normalized name, or fallback when none applies.
func (t *RuleTable) Evaluate(name, fallback string) string {
	normalized := Normalize(name)
	for _, rule := range t.rules {
		if pattern := Normalize(rule.Pattern); pattern != "" && strings.Contains(normalized, pattern) {
			return rule.Outcome
		}
	}
	return fallback
}

// DefaultCategoryRules assigns an inventory category from the item name.
var DefaultCategoryRules = []Rule{
	{Pattern: "milk", Outcome: "dairy", Priority: 10},
	{Pattern: "cream", Outcome: "dairy", Priority: 10},
	{Pattern: "oat", Outcome: "alt-milk", Priority: 20},
	{Pattern: "almond", Outcome: "alt-milk", Priority: 20},
	{Pattern: "soy", Outcome: "alt-milk", Priority: 20},
	{Pattern: "espresso", Outcome: "coffee", Priority: 10},
	{Pattern: "coffee", Outcome: "coffee", Priority: 10},
	{Pattern: "bean", Outcome: "coffee", Priority: 5},
	{Pattern: "syrup", Outcome: "flavoring", Priority: 10},
	{Pattern: "sauce", Outcome: "flavoring", Priority: 10},
	{Pattern: "cup", Outcome: "supplies", Priority: 10},
	{Pattern: "lid", Outcome: "supplies", Priority: 10},
	{Pattern: "sleeve", Outcome: "supplies", Priority: 10},
	{Pattern: "tea", Outcome: "tea", Priority: 10},
}

// DefaultSupplierRules assigns a default supplier from the item name.
var DefaultSupplierRules = []Rule{
	{Pattern: "milk", Outcome: "Dairy Direct", Priority: 10},
	{Pattern: "cream", Outcome: "Dairy Direct", Priority: 10},
	{Pattern: "bean", Outcome: "Roastery Partners", Priority: 10},
	{Pattern: "espresso", Outcome: "Roastery Partners", Priority: 10},
	{Pattern: "syrup", Outcome: "Flavor House", Priority: 10},
	{Pattern: "cup", Outcome: "Cafe Supply Co", Priority: 10},
	{Pattern: "lid", Outcome: "Cafe Supply Co", Priority: 10},
}
