package donor

import (
	"strings"
	"time"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// CreateInput holds the fields of a new donor record.
type CreateInput struct {
	UniqueDonorID string
	Name          string
	Gender        domain.Gender
	Age           *int
	DateOfBirth   *time.Time
	Ethnicity     *string
	IsPriority    bool
	Notes         *string
}

// Validate applies the donor intake rules.
func (i CreateInput) Validate(now time.Time) error {
	errs := domain.ValidateDonor(domain.DonorFields{
		UniqueDonorID: i.UniqueDonorID,
		Name:          i.Name,
		Gender:        i.Gender,
		Age:           i.Age,
		DateOfBirth:   i.DateOfBirth,
	}, now)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i CreateInput) toDonor(now time.Time) domain.Donor {
	return domain.Donor{
		UniqueDonorID: strings.TrimSpace(i.UniqueDonorID),
		Name:          strings.TrimSpace(i.Name),
		Gender:        i.Gender,
		Age:           i.Age,
		DateOfBirth:   i.DateOfBirth,
		Ethnicity:     trimOptional(i.Ethnicity),
		IsPriority:    i.IsPriority,
		Notes:         trimOptional(i.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// trimOptional trims s and turns a blank value into nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
