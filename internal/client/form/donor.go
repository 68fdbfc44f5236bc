package form

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/donorbase/internal/client/api"
	"github.com/heartmarshall/donorbase/internal/domain"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// Donor form fields beyond the validated ones in domain.
const (
	FieldEthnicity  = "ethnicity"
	FieldIsPriority = "is_priority"
	FieldNotes      = "notes"
)

// MsgAgeNotNumber is reported when the age field is not a whole number.
const MsgAgeNotNumber = "must be a whole number"

// ErrInvalid is returned by SubmitDonor when the draft fails validation.
var ErrInvalid = errors.New("form has errors")

// DonorFields lists the donor form fields in display order.
var DonorFields = []string{
	domain.FieldUniqueDonorID,
	domain.FieldName,
	domain.FieldGender,
	domain.FieldAge,
	domain.FieldDateOfBirth,
	FieldEthnicity,
	FieldIsPriority,
	FieldNotes,
}

// ValidateDonor checks the draft with the same rules the server applies on
// create and returns the request body. errs is empty when the draft is valid.
func ValidateDonor(d *Draft, now time.Time) (dto.DonorInput, map[string]string) {
	errs := map[string]string{}
	in := dto.DonorInput{
		UniqueDonorID: strings.TrimSpace(d.Value(domain.FieldUniqueDonorID)),
		Name:          strings.TrimSpace(d.Value(domain.FieldName)),
		Gender:        strings.ToLower(strings.TrimSpace(d.Value(domain.FieldGender))),
		Ethnicity:     optional(d.Value(FieldEthnicity)),
		IsPriority:    d.Bool(FieldIsPriority),
		Notes:         optional(d.Value(FieldNotes)),
	}
	fields := domain.DonorFields{
		UniqueDonorID: in.UniqueDonorID,
		Name:          in.Name,
		Gender:        domain.Gender(in.Gender),
	}

	rawAge := strings.TrimSpace(d.Value(domain.FieldAge))
	rawDOB := strings.TrimSpace(d.Value(domain.FieldDateOfBirth))

	if rawAge != "" {
		age, err := strconv.Atoi(rawAge)
		if err != nil {
			errs[domain.FieldAge] = MsgAgeNotNumber
		} else {
			fields.Age = &age
			in.Age = &age
		}
	}
	if rawDOB != "" {
		dob, err := domain.ParseDateOfBirth(rawDOB)
		if err != nil {
			errs[domain.FieldDateOfBirth] = domain.MsgDOBInvalid
		} else {
			fields.DateOfBirth = &dob
			s := dob.Format(domain.DateLayout)
			in.DateOfBirth = &s
		}
	}

	supplied := rawAge != "" || rawDOB != ""
	for _, fe := range domain.ValidateDonor(fields, now) {
		if _, ok := errs[fe.Field]; ok {
			continue
		}
		// A supplied but unparseable value is not "missing".
		if supplied && fe.Message == domain.MsgAgeOrDOBRequired {
			continue
		}
		errs[fe.Field] = fe.Message
	}

	return in, errs
}

type donorCreator interface {
	Create(ctx context.Context, input dto.DonorInput) (dto.Donor, error)
}

// SubmitDonor validates the draft and, when it is valid, creates the donor.
// Field errors from the server are copied into the draft. The draft is
// cleared only after a successful create.
func SubmitDonor(ctx context.Context, d *Draft, donors donorCreator, now time.Time) (dto.Donor, error) {
	in, errs := ValidateDonor(d, now)
	if len(errs) > 0 {
		d.SetErrors(errs)
		return dto.Donor{}, ErrInvalid
	}

	rec, err := donors.Create(ctx, in)
	if err != nil {
		copyFieldErrors(d, err)
		return dto.Donor{}, err
	}

	d.Reset()
	return rec, nil
}

// copyFieldErrors moves per-field errors reported by the server into d.
func copyFieldErrors(d *Draft, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		d.SetErrors(apiErr.Fields)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// DonorAge returns the donor's age at now. A stored age wins; otherwise it
// is derived from the date of birth. ok is false when neither is usable.
func DonorAge(d dto.Donor, now time.Time) (age int, ok bool) {
	if d.Age != nil {
		return *d.Age, true
	}
	if d.DateOfBirth == nil {
		return 0, false
	}
	dob, err := domain.ParseDateOfBirth(*d.DateOfBirth)
	if err != nil {
		return 0, false
	}
	return domain.AgeAt(dob, now), true
}
