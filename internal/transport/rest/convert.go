package rest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/donor"
	"github.com/heartmarshall/donorbase/internal/service/finding"
	"github.com/heartmarshall/donorbase/pkg/api"
)

func toAPIDonor(d *domain.Donor) api.Donor {
	out := api.Donor{
		ID:            d.ID.String(),
		UniqueDonorID: d.UniqueDonorID,
		Name:          d.Name,
		Gender:        d.Gender.String(),
		Age:           d.Age,
		Ethnicity:     d.Ethnicity,
		IsPriority:    d.IsPriority,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.DateOfBirth != nil {
		s := d.DateOfBirth.Format(domain.DateLayout)
		out.DateOfBirth = &s
	}
	return out
}

func toAPIDonors(ds []domain.Donor) []api.Donor {
	out := make([]api.Donor, len(ds))
	for i := range ds {
		out[i] = toAPIDonor(&ds[i])
	}
	return out
}

// toCreateDonorInput converts the wire body. A malformed date of birth is
// reported alongside the remaining field rules.
func toCreateDonorInput(in api.DonorInput) (donor.CreateInput, error) {
	out := donor.CreateInput{
		UniqueDonorID: in.UniqueDonorID,
		Name:          in.Name,
		Gender:        domain.Gender(in.Gender),
		Age:           in.Age,
		Ethnicity:     in.Ethnicity,
		IsPriority:    in.IsPriority,
		Notes:         in.Notes,
	}
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob, err := domain.ParseDateOfBirth(*in.DateOfBirth)
		if err != nil {
			return out, domain.NewValidationError(domain.FieldDateOfBirth, domain.MsgDOBInvalid)
		}
		out.DateOfBirth = &dob
	}
	return out, nil
}

func toDonorPatch(in api.DonorPatch) (domain.DonorPatch, error) {
	out := domain.DonorPatch{
		UniqueDonorID: in.UniqueDonorID,
		Name:          in.Name,
		Age:           in.Age,
		Ethnicity:     in.Ethnicity,
		IsPriority:    in.IsPriority,
		Notes:         in.Notes,
	}
	if in.Gender != nil {
		g := domain.Gender(*in.Gender)
		out.Gender = &g
	}
	if in.DateOfBirth != nil {
		dob, err := domain.ParseDateOfBirth(*in.DateOfBirth)
		if err != nil {
			return out, domain.NewValidationError(domain.FieldDateOfBirth, domain.MsgDOBInvalid)
		}
		out.DateOfBirth = &dob
	}
	return out, nil
}

func toAPIUser(u *domain.User) api.User {
	return api.User{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAPISetting(s *domain.Setting) api.Setting {
	return api.Setting{
		ID:          s.ID.String(),
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toAPIDocument(d *domain.Document) api.Document {
	return api.Document{
		ID:          d.ID.String(),
		DonorID:     d.DonorID.String(),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Size:        d.Size,
		PageCount:   d.PageCount,
		CreatedAt:   d.CreatedAt,
	}
}

func toAPIFinding(f *domain.Finding) api.Finding {
	out := api.Finding{
		ID:        f.ID.String(),
		DonorID:   f.DonorID.String(),
		Category:  f.Category,
		Summary:   f.Summary,
		Severity:  f.Severity.String(),
		Citations: make([]api.Citation, len(f.Citations)),
		CreatedAt: f.CreatedAt,
	}
	for i, c := range f.Citations {
		out.Citations[i] = api.Citation{DocumentID: c.DocumentID.String(), Page: c.Page}
	}
	return out
}

func toAPIFindings(fs []domain.Finding) []api.Finding {
	out := make([]api.Finding, len(fs))
	for i := range fs {
		out[i] = toAPIFinding(&fs[i])
	}
	return out
}

func toCreateFindingInput(in api.FindingInput) (finding.CreateInput, error) {
	out := finding.CreateInput{
		Category:  in.Category,
		Summary:   in.Summary,
		Severity:  domain.Severity(in.Severity),
		Citations: make([]domain.Citation, len(in.Citations)),
	}
	for i, c := range in.Citations {
		docID, err := uuid.Parse(c.DocumentID)
		if err != nil {
			return out, domain.NewValidationError(fmt.Sprintf("citations[%d].document_id", i), "invalid uuid")
		}
		out.Citations[i] = domain.Citation{DocumentID: docID, Page: c.Page}
	}
	return out, nil
}
