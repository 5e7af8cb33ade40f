// Package categorizer maps free-text category labels and notes onto the
// closed category taxonomy. Classification is stateless and recomputed on
// every read, so rule changes retroactively reclassify historical data
// without mutating anything stored.
package categorizer

import (
	"strings"

	"fjacquet/finanza/internal/models"
)

// keywordGroup associates a set of substrings with a canonical category.
type keywordGroup struct {
	category models.Category
	keywords []string
}

// keywordGroups is the ordered rule list for free-text classification.
// Groups are tested in this exact order and the first match wins, so a
// note like "grocery shopping" resolves to FOOD, not SHOPPING.
var keywordGroups = []keywordGroup{
	{models.CategoryFood, []string{"food", "eat", "rest", "grocery"}},
	{models.CategoryFuel, []string{"fuel", "petrol", "diesel", "gas"}},
	{models.CategoryBills, []string{"bill", "recharge", "electricity", "water"}},
	{models.CategoryShopping, []string{"shop", "buy", "amazon", "flipkart"}},
	{models.CategoryLoan, []string{"loan", "emi"}},
	{models.CategorySavings, []string{"save", "invest", "fd", "rd"}},
	{models.CategoryEntertainment, []string{"movie", "play", "game", "netflix"}},
}

// Classify resolves a stored category label to a canonical category.
// It matches the canonical tag exactly (case-sensitive), then the display
// label case-insensitively, and falls back to OTHER. It is a total
// function: every input, including the empty string, yields a category.
func Classify(label string) models.Category {
	for _, c := range models.Categories {
		if label == string(c) {
			return c
		}
		if strings.EqualFold(label, c.Display()) {
			return c
		}
	}
	return models.CategoryOther
}

// ClassifyFreeText maps arbitrary free text plus a note onto the taxonomy
// using the ordered keyword groups. It exists to retroactively classify
// historical entries that predate the canonical taxonomy; normal entry
// always stores a canonical tag and never goes through this path.
func ClassifyFreeText(text, note string) models.Category {
	combined := strings.ToLower(text + " " + note)
	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(combined, keyword) {
				return group.category
			}
		}
	}
	return models.CategoryOther
}
