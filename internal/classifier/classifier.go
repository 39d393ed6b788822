// Package classifier maps a raw user utterance to the knowledge categories
// relevant to it. Matching is a literal case-insensitive substring test over
// a small curated keyword list per category: no tokenization, no stemming.
// Over-matching (a keyword inside an unrelated word) only broadens the
// injected context and is accepted.
package classifier

import (
	"strings"

	"github.com/Reon1917/AU-GURU/internal/core"
)

// keywords holds the ordered lowercase trigger list per category.
var keywords = map[core.Category][]string{
	core.CategoryContacts: {
		"contact", "phone", "email", "address", "location", "where is",
		"call", "reach", "office", "telephone", "website", "visit",
	},
	core.CategoryFaculties: {
		"faculty", "faculties", "program", "course", "major", "degree",
		"school of", "bachelor", "master", "engineering", "business",
		"nursing", "law", "science", "study", "admission", "apply",
	},
	core.CategoryHistory: {
		"history", "founded", "established", "background", "origin",
		"campus", "abac", "gabriel", "motto", "since when",
	},
	core.CategoryTuitions: {
		"tuition", "fee", "fees", "cost", "price", "expensive",
		"cheap", "pay", "payment", "scholarship", "installment",
	},
}

// DefaultCategories is returned when no keyword matches. Never empty by
// construction.
var DefaultCategories = []core.Category{core.CategoryContacts, core.CategoryFaculties}

// Classify returns the categories whose keyword lists match the query, in
// canonical order. Falls back to DefaultCategories when nothing matches.
func Classify(query string) []core.Category {
	q := strings.ToLower(query)

	var matched []core.Category
	for _, cat := range core.CategoryOrder {
		for _, kw := range keywords[cat] {
			if strings.Contains(q, kw) {
				matched = append(matched, cat)
				break
			}
		}
	}

	if len(matched) == 0 {
		return append([]core.Category(nil), DefaultCategories...)
	}
	return matched
}

// Score reports, per category, the fraction of its keywords found in the
// query. Observability only; inclusion in Classify is not gated on it.
func Score(query string) map[core.Category]float64 {
	q := strings.ToLower(query)

	scores := make(map[core.Category]float64, len(core.CategoryOrder))
	for _, cat := range core.CategoryOrder {
		hits := 0
		for _, kw := range keywords[cat] {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		scores[cat] = float64(hits) / float64(len(keywords[cat]))
	}
	return scores
}

// Keywords exposes the trigger list of a category. The returned slice is a
// copy; the tables are immutable after process start.
func Keywords(cat core.Category) []string {
	return append([]string(nil), keywords[cat]...)
}
