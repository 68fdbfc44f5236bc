package domain

import "strings"

// NormalizeText folds a search term or email for comparison: lower case,
// outer whitespace trimmed, inner whitespace runs collapsed to one space.
// Punctuation and diacritics are kept, so "O'Brien" and "Zoë" stay distinct
// from "OBrien" and "Zoe".
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
