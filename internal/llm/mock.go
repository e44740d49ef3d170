package llm

import (
	"context"
	"sync"
)

// MockGenerator implements Generator for testing. Responses are keyed by
// class name; classes without a canned response fail with the configured
// error (or ErrEmptyCompletion by default).
type MockGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	calls     []string

	// Block makes every call hang until the context is done, simulating a
	// stuck collaborator
	Block bool
}

// NewMockGenerator creates an empty MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		responses: make(map[string]string),
		failures:  make(map[string]error),
	}
}

// Respond arms a canned response for a class name
func (m *MockGenerator) Respond(className, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[className] = text
}

// Fail arms a failure for a class name
func (m *MockGenerator) Fail(className string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[className] = err
}

// Calls returns the class names GenerateTest was invoked with
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockGenerator) GenerateTest(ctx context.Context, className, classBody string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, className)
	text, ok := m.responses[className]
	failure, failed := m.failures[className]
	block := m.Block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}

	if failed {
		return "", failure
	}
	if !ok {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
