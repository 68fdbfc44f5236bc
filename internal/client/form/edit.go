package form

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/donorbase/internal/domain"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// ErrNoChanges is returned by SubmitDonorUpdate when the draft matches the
// stored donor.
var ErrNoChanges = errors.New("nothing to update")

// LoadDonor fills d with the fields of an existing donor.
func LoadDonor(d *Draft, donor dto.Donor) {
	values := map[string]string{
		domain.FieldUniqueDonorID: donor.UniqueDonorID,
		domain.FieldName:          donor.Name,
		domain.FieldGender:        donor.Gender,
		domain.FieldDateOfBirth:   deref(donor.DateOfBirth),
		FieldEthnicity:            deref(donor.Ethnicity),
		FieldNotes:                deref(donor.Notes),
	}
	if donor.Age != nil {
		values[domain.FieldAge] = strconv.Itoa(*donor.Age)
	}
	d.Load(values, map[string]bool{FieldIsPriority: donor.IsPriority})
}

// DonorPatch validates the draft with the create rules and returns the
// fields that differ from orig. Optional fields emptied in the draft keep
// their stored value: the wire patch cannot clear them.
func DonorPatch(d *Draft, orig dto.Donor, now time.Time) (dto.DonorPatch, map[string]string) {
	in, errs := ValidateDonor(d, now)
	if len(errs) > 0 {
		return dto.DonorPatch{}, errs
	}

	var p dto.DonorPatch
	if in.UniqueDonorID != orig.UniqueDonorID {
		p.UniqueDonorID = &in.UniqueDonorID
	}
	if in.Name != orig.Name {
		p.Name = &in.Name
	}
	if in.Gender != orig.Gender {
		p.Gender = &in.Gender
	}
	if in.IsPriority != orig.IsPriority {
		p.IsPriority = &in.IsPriority
	}
	p.Age = changed(in.Age, orig.Age)
	p.DateOfBirth = changed(in.DateOfBirth, orig.DateOfBirth)
	p.Ethnicity = changed(in.Ethnicity, orig.Ethnicity)
	p.Notes = changed(in.Notes, orig.Notes)
	return p, nil
}

// ValidateDonorPatch checks only the fields present in p.
func ValidateDonorPatch(p dto.DonorPatch, now time.Time) map[string]string {
	errs := map[string]string{}
	dp := domain.DonorPatch{
		UniqueDonorID: p.UniqueDonorID,
		Name:          p.Name,
		Age:           p.Age,
	}
	if p.Gender != nil {
		g := domain.Gender(strings.ToLower(strings.TrimSpace(*p.Gender)))
		dp.Gender = &g
	}
	if p.DateOfBirth != nil {
		dob, err := domain.ParseDateOfBirth(*p.DateOfBirth)
		if err != nil {
			errs[domain.FieldDateOfBirth] = domain.MsgDOBInvalid
		} else {
			dp.DateOfBirth = &dob
		}
	}
	for _, fe := range domain.ValidateDonorPatch(dp, now) {
		if _, ok := errs[fe.Field]; !ok {
			errs[fe.Field] = fe.Message
		}
	}
	return errs
}

type donorUpdater interface {
	Update(ctx context.Context, id string, patch dto.DonorPatch) (dto.Donor, error)
}

// SubmitDonorUpdate validates the draft and sends the fields that changed
// since orig. Server field errors are copied into the draft, which is
// cleared only after a successful update.
func SubmitDonorUpdate(ctx context.Context, d *Draft, orig dto.Donor, donors donorUpdater, now time.Time) (dto.Donor, error) {
	patch, errs := DonorPatch(d, orig, now)
	if len(errs) > 0 {
		d.SetErrors(errs)
		return dto.Donor{}, ErrInvalid
	}
	if patch == (dto.DonorPatch{}) {
		return orig, ErrNoChanges
	}

	rec, err := donors.Update(ctx, orig.ID, patch)
	if err != nil {
		copyFieldErrors(d, err)
		return dto.Donor{}, err
	}

	d.Reset()
	return rec, nil
}

func changed[T comparable](next, prev *T) *T {
	if next == nil || (prev != nil && *next == *prev) {
		return nil
	}
	return next
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
