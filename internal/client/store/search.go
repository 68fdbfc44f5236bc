package store

import (
	"strings"

	"github.com/agnivade/levenshtein"

	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// maxFuzzyDistance is the largest edit distance accepted by the name fallback.
const maxFuzzyDistance = 2

// minFuzzyQuery keeps very short queries from matching everything.
const minFuzzyQuery = 4

// DonorFilter is the table view's search state.
type DonorFilter struct {
	Query        string
	Gender       string
	PriorityOnly bool
}

// MatchDonor reports whether d passes f. The query matches a substring of
// the name or unique donor id, case-insensitively, or is within a small edit
// distance of the name or one of its words.
func MatchDonor(d dto.Donor, f DonorFilter) bool {
	if f.Gender != "" && !strings.EqualFold(d.Gender, f.Gender) {
		return false
	}
	if f.PriorityOnly && !d.IsPriority {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}

	name := strings.ToLower(d.Name)
	if strings.Contains(name, q) || strings.Contains(strings.ToLower(d.UniqueDonorID), q) {
		return true
	}
	if len([]rune(q)) < minFuzzyQuery {
		return false
	}

	if levenshtein.ComputeDistance(name, q) <= maxFuzzyDistance {
		return true
	}
	for _, word := range strings.Fields(name) {
		if levenshtein.ComputeDistance(word, q) <= maxFuzzyDistance {
			return true
		}
	}
	return false
}

// FilterDonors applies MatchDonor to the local donor list.
func FilterDonors(s *Donors, f DonorFilter) []dto.Donor {
	return s.Filter(func(d dto.Donor) bool { return MatchDonor(d, f) })
}
