package enrich

import (
	"context"
	"sync"

	dto "github.com/heartmarshall/donorbase/pkg/api"
)

var _ source = &sourceMock{}

type sourceMock struct {
	DocumentCountsFunc func(ctx context.Context, donorIDs []string) ([]dto.DocumentCount, error)
	FindingsFunc       func(ctx context.Context, severity string) ([]dto.Finding, error)

	lock                sync.RWMutex
	documentCountsCalls [][]string
	findingsCalls       []string
}

func (m *sourceMock) DocumentCounts(ctx context.Context, donorIDs []string) ([]dto.DocumentCount, error) {
	if m.DocumentCountsFunc == nil {
		panic("sourceMock.DocumentCountsFunc: method is nil but source.DocumentCounts was just called")
	}
	m.lock.Lock()
	m.documentCountsCalls = append(m.documentCountsCalls, donorIDs)
	m.lock.Unlock()
	return m.DocumentCountsFunc(ctx, donorIDs)
}

func (m *sourceMock) Findings(ctx context.Context, severity string) ([]dto.Finding, error) {
	if m.FindingsFunc == nil {
		panic("sourceMock.FindingsFunc: method is nil but source.Findings was just called")
	}
	m.lock.Lock()
	m.findingsCalls = append(m.findingsCalls, severity)
	m.lock.Unlock()
	return m.FindingsFunc(ctx, severity)
}

func (m *sourceMock) DocumentCountsCalls() [][]string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.documentCountsCalls
}

func (m *sourceMock) FindingsCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.findingsCalls
}
