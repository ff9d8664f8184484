// internal/classifier/classifier.go
package classifier

import (
	"errors"
	"fmt"

	"github.com/ccbangkit/scan-api/internal/inference"
)

// Labels is the ordered label table of the product classification model,
// index-aligned with its output vector.
var Labels = []string{"better", "leminerale", "oreo", "pocari", "youc1000"}

var (
	// ErrDecode indicates the uploaded bytes are not a decodable image.
	ErrDecode = errors.New("cannot decode image")
	// ErrNotLoaded indicates no inference engine is available.
	ErrNotLoaded = errors.New("model not loaded")
)

// Prediction is the highest-confidence label of one classification.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}

// Classifier runs uploaded images through a fixed preprocess → infer → rank
// pipeline. It holds no per-request state; the engine is shared read-only.
type Classifier struct {
	engine inference.Engine
	labels []string
}

// New creates a Classifier over the given engine and ordered label table.
func New(engine inference.Engine, labels []string) (*Classifier, error) {
	if engine == nil {
		return nil, ErrNotLoaded
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("label table is empty")
	}
	return &Classifier{engine: engine, labels: labels}, nil
}

// Classify decodes and normalizes imageBytes, runs inference, and returns the
// label with the highest confidence.
func (c *Classifier) Classify(imageBytes []byte) (Prediction, error) {
	input, err := Preprocess(imageBytes)
	if err != nil {
		return Prediction{}, err
	}

	scores, err := c.engine.Predict(input, ImageSize, ImageSize, Channels)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference failed: %w", err)
	}

	return Rank(scores, c.labels)
}

// Warmup pushes an all-zero tensor through the engine and verifies the output
// vector matches the label table. Called once at startup so a label/output
// mismatch fails the process instead of the first request.
func (c *Classifier) Warmup() error {
	input := make([]float32, ImageSize*ImageSize*Channels)
	scores, err := c.engine.Predict(input, ImageSize, ImageSize, Channels)
	if err != nil {
		return fmt.Errorf("warm-up inference failed: %w", err)
	}
	if len(scores) != len(c.labels) {
		return fmt.Errorf("model outputs %d classes, label table has %d", len(scores), len(c.labels))
	}
	return nil
}

// Rank pairs scores with labels positionally and returns the entry with the
// maximum confidence. Ties keep the lower index (stable left-to-right scan).
func Rank(scores []float32, labels []string) (Prediction, error) {
	if len(scores) == 0 {
		return Prediction{}, fmt.Errorf("empty prediction vector")
	}
	if len(scores) != len(labels) {
		return Prediction{}, fmt.Errorf("prediction vector has %d entries, label table has %d", len(scores), len(labels))
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}

	return Prediction{Label: labels[best], Confidence: scores[best]}, nil
}
