// internal/inference/inference_test.go
package inference

import (
	"os"
	"testing"
)

func TestMockEngine_Predict(t *testing.T) {
	mock := NewMock()

	// 2x2 RGB input
	input := make([]float32, 2*2*3)

	scores, err := mock.Predict(input, 2, 2, 3)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}

	for i, v := range scores {
		if v != 0.2 {
			t.Errorf("Score[%d] = %f, expected 0.2", i, v)
		}
	}

	// Verify call count
	if mock.CallCount != 1 {
		t.Errorf("Expected CallCount=1, got %d", mock.CallCount)
	}
}

func TestMockEngine_PredictError(t *testing.T) {
	mock := NewMock()
	mock.SetError("test error")

	input := make([]float32, 2*2*3)
	_, err := mock.Predict(input, 2, 2, 3)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if err.Error() != "test error" {
		t.Errorf("Expected 'test error', got '%s'", err.Error())
	}

	mock.ClearError()
	if _, err := mock.Predict(input, 2, 2, 3); err != nil {
		t.Fatalf("Expected success after ClearError, got: %v", err)
	}
}

func TestMockEngine_WrongInputSize(t *testing.T) {
	mock := NewMock()

	input := make([]float32, 7) // Wrong size: expected 12 (2*2*3)
	_, err := mock.Predict(input, 2, 2, 3)
	if err == nil {
		t.Fatal("Expected error for wrong input size")
	}
}

func TestMockEngine_CustomScores(t *testing.T) {
	customScores := []float32{0.1, 0.05, 0.6, 0.2, 0.05}
	mock := NewMockWithScores(customScores)

	input := make([]float32, 2*2*3)
	scores, err := mock.Predict(input, 2, 2, 3)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if len(scores) != len(customScores) {
		t.Errorf("Expected %d scores, got %d", len(customScores), len(scores))
	}

	for i, v := range customScores {
		if scores[i] != v {
			t.Errorf("Score[%d] = %f, expected %f", i, scores[i], v)
		}
	}

	// The returned slice must be a copy, not the mock's backing array
	scores[0] = 9.9
	if mock.Scores[0] != 0.1 {
		t.Error("Predict must return a copy of the configured scores")
	}
}

func TestRealInference_WithModel(t *testing.T) {
	// Skip if ONNX model or library is not available
	modelPath := "testdata/dummy.onnx"
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		t.Skip("Skipping real inference test: testdata/dummy.onnx not found")
	}

	// Try to create inference - will fail if ONNX library not installed
	infer, err := New(modelPath, 5)
	if err != nil {
		t.Skipf("Skipping real inference test: %v", err)
	}
	defer infer.Close()

	input := make([]float32, 224*224*3)
	scores, err := infer.Predict(input, 224, 224, 3)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
}

func TestNewRejectsInvalidClassCount(t *testing.T) {
	if _, err := New("testdata/dummy.onnx", 0); err == nil {
		t.Fatal("Expected error for zero class count")
	}
}
