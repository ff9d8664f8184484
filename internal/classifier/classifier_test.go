// internal/classifier/classifier_test.go
package classifier

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ccbangkit/scan-api/internal/inference"
)

func encodePNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestRankPicksMaximum(t *testing.T) {
	scores := []float32{0.1, 0.05, 0.6, 0.2, 0.05}

	p, err := Rank(scores, Labels)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if p.Label != "oreo" {
		t.Errorf("Expected label oreo, got %s", p.Label)
	}
	if p.Confidence != 0.6 {
		t.Errorf("Expected confidence 0.6, got %f", p.Confidence)
	}
}

func TestRankTieKeepsLowerIndex(t *testing.T) {
	scores := []float32{0.1, 0.4, 0.4, 0.05, 0.05}

	p, err := Rank(scores, Labels)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if p.Label != "leminerale" {
		t.Errorf("Expected tie to keep lower index leminerale, got %s", p.Label)
	}
}

func TestRankAllEqualReturnsFirst(t *testing.T) {
	scores := []float32{0.2, 0.2, 0.2, 0.2, 0.2}

	p, err := Rank(scores, Labels)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if p.Label != Labels[0] {
		t.Errorf("Expected first label %s, got %s", Labels[0], p.Label)
	}
}

func TestRankEmptyVector(t *testing.T) {
	if _, err := Rank(nil, nil); err == nil {
		t.Fatal("Expected error for empty prediction vector")
	}
}

func TestRankLengthMismatch(t *testing.T) {
	if _, err := Rank([]float32{0.5, 0.5}, Labels); err == nil {
		t.Fatal("Expected error for vector/label length mismatch")
	}
}

func TestClassifyReturnsTopLabel(t *testing.T) {
	mock := inference.NewMockWithScores([]float32{0.1, 0.05, 0.6, 0.2, 0.05})
	clf, err := New(mock, Labels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	imageBytes := encodePNG(t, 224, 224, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	p, err := clf.Classify(imageBytes)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if p.Label != "oreo" {
		t.Errorf("Expected label oreo, got %s", p.Label)
	}
	if p.Confidence != 0.6 {
		t.Errorf("Expected confidence 0.6, got %f", p.Confidence)
	}
	if mock.CallCount != 1 {
		t.Errorf("Expected CallCount=1, got %d", mock.CallCount)
	}
	if len(mock.LastInput) != ImageSize*ImageSize*Channels {
		t.Errorf("Expected input length %d, got %d", ImageSize*ImageSize*Channels, len(mock.LastInput))
	}
}

func TestClassifyNonImageFailsWithDecodeError(t *testing.T) {
	mock := inference.NewMockWithScores([]float32{0.1, 0.05, 0.6, 0.2, 0.05})
	clf, err := New(mock, Labels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = clf.Classify([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("Expected decode error, got nil")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got: %v", err)
	}

	// A decode failure must never reach the engine
	if mock.CallCount != 0 {
		t.Errorf("Expected engine to not be called, got CallCount=%d", mock.CallCount)
	}
}

func TestClassifyEngineError(t *testing.T) {
	mock := inference.NewMock()
	mock.SetError("tensor shape mismatch")
	clf, err := New(mock, Labels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	imageBytes := encodePNG(t, 32, 32, color.White)

	_, err = clf.Classify(imageBytes)
	if err == nil {
		t.Fatal("Expected inference error, got nil")
	}
	if errors.Is(err, ErrDecode) {
		t.Errorf("Engine failure must not map to a decode error: %v", err)
	}
}

func TestNewRejectsNilEngine(t *testing.T) {
	_, err := New(nil, Labels)
	if !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got: %v", err)
	}
}

func TestNewRejectsEmptyLabels(t *testing.T) {
	if _, err := New(inference.NewMock(), nil); err == nil {
		t.Fatal("Expected error for empty label table")
	}
}

func TestWarmupValidatesOutputWidth(t *testing.T) {
	clf, err := New(inference.NewMockWithScores([]float32{0.5, 0.5}), Labels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := clf.Warmup(); err == nil {
		t.Fatal("Expected warm-up to fail on output/label width mismatch")
	}
}

func TestWarmupPasses(t *testing.T) {
	clf, err := New(inference.NewMock(), Labels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := clf.Warmup(); err != nil {
		t.Fatalf("Warmup failed: %v", err)
	}
}
