package domain

// DonorFilter contains filtering/pagination parameters for donor listing.
type DonorFilter struct {
	// Search matches name or unique donor id, case-insensitively.
	Search   *string
	Gender   *Gender
	Priority *bool
	Limit    int
	Offset   int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Normalize applies defaults and clamps the limit.
func (f *DonorFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Search != nil {
		s := NormalizeText(*f.Search)
		if s == "" {
			f.Search = nil
		} else {
			f.Search = &s
		}
	}
}
