// internal/inference/mock.go
package inference

import (
	"fmt"
)

// MockEngine is a mock implementation of Engine for testing.
// It returns deterministic dummy scores without requiring the ONNX shared library.
type MockEngine struct {
	// Scores is returned for every prediction
	Scores []float32
	// ShouldError if true, Predict will return an error
	ShouldError bool
	// ErrorMessage is the error message to return when ShouldError is true
	ErrorMessage string
	// CallCount tracks the number of times Predict was called
	CallCount int
	// LastInput captures the input of the most recent Predict call
	LastInput []float32
}

// NewMock creates a new MockEngine with uniform scores over five classes
func NewMock() *MockEngine {
	return &MockEngine{
		Scores:      []float32{0.2, 0.2, 0.2, 0.2, 0.2},
		ShouldError: false,
	}
}

// NewMockWithScores creates a MockEngine that returns the given scores
func NewMockWithScores(scores []float32) *MockEngine {
	return &MockEngine{
		Scores:      scores,
		ShouldError: false,
	}
}

// Predict validates the input shape and returns the configured scores.
func (m *MockEngine) Predict(input []float32, h, w, c int64) ([]float32, error) {
	m.CallCount++
	m.LastInput = input

	if m.ShouldError {
		if m.ErrorMessage != "" {
			return nil, fmt.Errorf("%s", m.ErrorMessage)
		}
		return nil, fmt.Errorf("mock inference error")
	}

	expected := h * w * c
	if int64(len(input)) != expected {
		return nil, fmt.Errorf("input has wrong size: got %d, expected %d", len(input), expected)
	}

	out := make([]float32, len(m.Scores))
	copy(out, m.Scores)
	return out, nil
}

// Close is a no-op for the mock implementation
func (m *MockEngine) Close() error {
	return nil
}

// SetError configures the mock to return an error on the next Predict call
func (m *MockEngine) SetError(msg string) {
	m.ShouldError = true
	m.ErrorMessage = msg
}

// ClearError clears any configured error
func (m *MockEngine) ClearError() {
	m.ShouldError = false
	m.ErrorMessage = ""
}

// Ensure MockEngine implements Engine at compile time
var _ Engine = (*MockEngine)(nil)
