package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// fakeBackend serves donors, counts, documents and findings from memory.
type fakeBackend struct {
	mu        sync.Mutex
	donors    []dto.Donor
	documents map[string][]dto.Document
	findings  []dto.Finding
	nextID    int
	deleteErr error
	patches   []dto.DonorPatch
}

func (f *fakeBackend) List(context.Context) ([]dto.Donor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.Donor(nil), f.donors...), nil
}

func (f *fakeBackend) Create(_ context.Context, in dto.DonorInput) (dto.Donor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	d := dto.Donor{
		ID:            fmt.Sprintf("new-%d", f.nextID),
		UniqueDonorID: in.UniqueDonorID,
		Name:          in.Name,
		Gender:        in.Gender,
		Age:           in.Age,
		DateOfBirth:   in.DateOfBirth,
		IsPriority:    in.IsPriority,
	}
	f.donors = append([]dto.Donor{d}, f.donors...)
	return d, nil
}

func (f *fakeBackend) Update(_ context.Context, id string, p dto.DonorPatch) (dto.Donor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, p)
	for i, d := range f.donors {
		if d.ID != id {
			continue
		}
		if p.Name != nil {
			d.Name = *p.Name
		}
		if p.Age != nil {
			d.Age = p.Age
		}
		if p.IsPriority != nil {
			d.IsPriority = *p.IsPriority
		}
		f.donors[i] = d
		return d, nil
	}
	return dto.Donor{}, errors.New("not found")
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, d := range f.donors {
		if d.ID == id {
			f.donors = append(f.donors[:i], f.donors[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeBackend) DocumentCounts(_ context.Context, ids []string) ([]dto.DocumentCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dto.DocumentCount, len(ids))
	for i, id := range ids {
		out[i] = dto.DocumentCount{DonorID: id, Count: len(f.documents[id])}
	}
	return out, nil
}

func (f *fakeBackend) Findings(_ context.Context, severity string) ([]dto.Finding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dto.Finding
	for _, fd := range f.findings {
		if severity == "" || fd.Severity == severity {
			out = append(out, fd)
		}
	}
	return out, nil
}

func (f *fakeBackend) Documents(_ context.Context, donorID string) ([]dto.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.documents[donorID], nil
}

func (f *fakeBackend) DonorFindings(_ context.Context, donorID string) ([]dto.Finding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dto.Finding
	for _, fd := range f.findings {
		if fd.DonorID == donorID {
			out = append(out, fd)
		}
	}
	return out, nil
}
