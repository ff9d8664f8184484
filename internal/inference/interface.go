// internal/inference/interface.go
package inference

// Engine defines the interface for running image inference.
// This abstraction allows for easy mocking in tests and swapping implementations.
type Engine interface {
	// Predict runs a single image through the model and returns the per-class
	// confidence scores.
	// input: flattened NHWC tensor of length h*w*c, values scaled to [0,1]
	// h, w, c: height, width, channel dimensions
	Predict(input []float32, h, w, c int64) ([]float32, error)

	// Close releases any resources held by the inference engine.
	Close() error
}
