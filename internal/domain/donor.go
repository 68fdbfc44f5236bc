package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Donor field names, shared by validation errors, forms and the wire format.
const (
	FieldUniqueDonorID = "unique_donor_id"
	FieldName          = "name"
	FieldGender        = "gender"
	FieldAge           = "age"
	FieldDateOfBirth   = "date_of_birth"
)

const (
	MinDonorAge = 0
	MaxDonorAge = 120

	minUniqueDonorIDLen = 3
	minDonorNameLen     = 2

	// DateLayout is the wire and form format of a date of birth.
	DateLayout = "2006-01-02"
)

// Validation messages for donor fields.
const (
	MsgRequired         = "required"
	MsgAgeOrDOBRequired = "age or date of birth is required"
	MsgAgeRange         = "must be between 0 and 120"
	MsgDOBInvalid       = "must be a valid date (YYYY-MM-DD)"
	MsgDOBFuture        = "cannot be in the future"
)

// Donor is a single donor record.
type Donor struct {
	ID            uuid.UUID
	UniqueDonorID string
	Name          string
	Gender        Gender
	Age           *int
	DateOfBirth   *time.Time
	Ethnicity     *string
	IsPriority    bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveAge returns the stored age or, when it is absent, the age
// derived from the date of birth at now. ok is false when neither is known.
func (d *Donor) EffectiveAge(now time.Time) (age int, ok bool) {
	if d.Age != nil {
		return *d.Age, true
	}
	if d.DateOfBirth != nil {
		return AgeAt(*d.DateOfBirth, now), true
	}
	return 0, false
}

// AgeAt returns the number of full years between dob and now.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// DonorFields is the subset of donor attributes checked by ValidateDonor.
type DonorFields struct {
	UniqueDonorID string
	Name          string
	Gender        Gender
	Age           *int
	DateOfBirth   *time.Time
}

// ValidateDonor applies the donor intake rules and returns every violation.
// At least one of Age and DateOfBirth must be set; when both are missing
// both fields carry MsgAgeOrDOBRequired. Age is checked independently of
// DateOfBirth.
func ValidateDonor(f DonorFields, now time.Time) []FieldError {
	var errs []FieldError

	errs = append(errs, validateUniqueDonorID(f.UniqueDonorID)...)
	errs = append(errs, validateDonorName(f.Name)...)
	errs = append(errs, validateGender(f.Gender)...)

	if f.Age == nil && f.DateOfBirth == nil {
		errs = append(errs,
			FieldError{Field: FieldAge, Message: MsgAgeOrDOBRequired},
			FieldError{Field: FieldDateOfBirth, Message: MsgAgeOrDOBRequired},
		)
		return errs
	}
	if f.Age != nil {
		errs = append(errs, validateAge(*f.Age)...)
	}
	if f.DateOfBirth != nil {
		errs = append(errs, validateDateOfBirth(*f.DateOfBirth, now)...)
	}

	return errs
}

// DonorPatch holds optional donor changes. nil means "leave unchanged".
type DonorPatch struct {
	UniqueDonorID *string
	Name          *string
	Gender        *Gender
	Age           *int
	DateOfBirth   *time.Time
	Ethnicity     *string
	IsPriority    *bool
	Notes         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p DonorPatch) IsEmpty() bool {
	return p.UniqueDonorID == nil && p.Name == nil && p.Gender == nil && p.Age == nil &&
		p.DateOfBirth == nil && p.Ethnicity == nil && p.IsPriority == nil && p.Notes == nil
}

// ValidateDonorPatch validates only the fields present in the patch.
func ValidateDonorPatch(p DonorPatch, now time.Time) []FieldError {
	var errs []FieldError
	if p.UniqueDonorID != nil {
		errs = append(errs, validateUniqueDonorID(*p.UniqueDonorID)...)
	}
	if p.Name != nil {
		errs = append(errs, validateDonorName(*p.Name)...)
	}
	if p.Gender != nil {
		errs = append(errs, validateGender(*p.Gender)...)
	}
	if p.Age != nil {
		errs = append(errs, validateAge(*p.Age)...)
	}
	if p.DateOfBirth != nil {
		errs = append(errs, validateDateOfBirth(*p.DateOfBirth, now)...)
	}
	return errs
}

// Apply returns a copy of d with the patch applied.
func (p DonorPatch) Apply(d Donor) Donor {
	if p.UniqueDonorID != nil {
		d.UniqueDonorID = strings.TrimSpace(*p.UniqueDonorID)
	}
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Gender != nil {
		d.Gender = *p.Gender
	}
	if p.Age != nil {
		d.Age = p.Age
	}
	if p.DateOfBirth != nil {
		d.DateOfBirth = p.DateOfBirth
	}
	if p.Ethnicity != nil {
		d.Ethnicity = p.Ethnicity
	}
	if p.IsPriority != nil {
		d.IsPriority = *p.IsPriority
	}
	if p.Notes != nil {
		d.Notes = p.Notes
	}
	return d
}

// ParseDateOfBirth parses a YYYY-MM-DD date.
func ParseDateOfBirth(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date of birth %q: %w", s, err)
	}
	return t, nil
}

func validateUniqueDonorID(s string) []FieldError {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return []FieldError{{Field: FieldUniqueDonorID, Message: MsgRequired}}
	case utf8.RuneCountInString(s) < minUniqueDonorIDLen:
		return []FieldError{{Field: FieldUniqueDonorID, Message: fmt.Sprintf("must be at least %d characters", minUniqueDonorIDLen)}}
	}
	return nil
}

func validateDonorName(s string) []FieldError {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return []FieldError{{Field: FieldName, Message: MsgRequired}}
	case utf8.RuneCountInString(s) < minDonorNameLen:
		return []FieldError{{Field: FieldName, Message: fmt.Sprintf("must be at least %d characters", minDonorNameLen)}}
	}
	return nil
}

func validateGender(g Gender) []FieldError {
	if g == "" {
		return []FieldError{{Field: FieldGender, Message: MsgRequired}}
	}
	if !g.IsValid() {
		return []FieldError{{Field: FieldGender, Message: "must be one of male, female, other"}}
	}
	return nil
}

func validateAge(age int) []FieldError {
	if age < MinDonorAge || age > MaxDonorAge {
		return []FieldError{{Field: FieldAge, Message: MsgAgeRange}}
	}
	return nil
}

func validateDateOfBirth(dob, now time.Time) []FieldError {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return []FieldError{{Field: FieldDateOfBirth, Message: MsgDOBFuture}}
	}
	return nil
}
