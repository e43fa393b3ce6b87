package mocks

import (
	"github.com/brettbedarf/memfs"
	"github.com/stretchr/testify/mock"
)

// MockObserver implements memfs.Observer for testing across packages
type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) Notify(ev memfs.Event) {
	m.Called(ev)
}

// MockCodec implements memfs.Codec for testing across packages
type MockCodec struct {
	mock.Mock
}

func (m *MockCodec) Encode(text, encoding string) ([]byte, error) {
	args := m.Called(text, encoding)

	// Handle function return types
	if fn, ok := args.Get(0).(func(string, string) []byte); ok {
		return fn(text, encoding), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCodec) Decode(data []byte, encoding string) (string, error) {
	args := m.Called(data, encoding)

	if fn, ok := args.Get(0).(func([]byte, string) string); ok {
		return fn(data, encoding), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
