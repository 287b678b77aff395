package testutils

import (
	"context"

	"github.com/papercomputeco/vidgen/pkg/videoapi"
)

// MockGenerator is a test video generator that records requests and returns a
// fixed result.
type MockGenerator struct {
	Video []byte
	Err   error

	Requests []videoapi.Request
}

func NewMockGenerator(video []byte) *MockGenerator {
	return &MockGenerator{Video: video}
}

func (m *MockGenerator) Generate(_ context.Context, req videoapi.Request) ([]byte, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Video, nil
}
