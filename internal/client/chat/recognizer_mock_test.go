package chat

import (
	"context"
	"sync"
)

var _ Recognizer = &recognizerMock{}

type recognizerMock struct {
	AvailableFunc func() bool
	RecognizeFunc func(ctx context.Context) (string, error)

	lock           sync.RWMutex
	recognizeCalls int
}

func (m *recognizerMock) Available() bool {
	if m.AvailableFunc == nil {
		return true
	}
	return m.AvailableFunc()
}

func (m *recognizerMock) Recognize(ctx context.Context) (string, error) {
	if m.RecognizeFunc == nil {
		panic("recognizerMock.RecognizeFunc: method is nil but Recognizer.Recognize was just called")
	}
	m.lock.Lock()
	m.recognizeCalls++
	m.lock.Unlock()
	return m.RecognizeFunc(ctx)
}

func (m *recognizerMock) RecognizeCalls() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.recognizeCalls
}
