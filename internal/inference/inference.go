// internal/inference/inference.go
package inference

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Inference wraps an ONNX runtime session for thread-safe inference.
// It implements the Engine interface.
type Inference struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	numClasses int64
}

// New creates a new Inference instance by loading the ONNX model from modelPath.
// numClasses is the width of the model's output vector.
func New(modelPath string, numClasses int64) (*Inference, error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("invalid class count: %d", numClasses)
	}

	// Initialize the ONNX runtime environment
	err := ort.InitializeEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	// Input/output names of the exported classification graph
	inputNames := []string{"input"}
	outputNames := []string{"output"}

	// Create a dynamic session so input tensors are built per call
	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		nil, // Use default session options
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Inference{
		session:    session,
		numClasses: numClasses,
	}, nil
}

// Predict runs one image through the model.
// input: flattened NHWC tensor of length h*w*c
// Returns the confidence scores, one per class.
func (inf *Inference) Predict(input []float32, h, w, c int64) ([]float32, error) {
	inf.mu.Lock()
	defer inf.mu.Unlock()

	if inf.session == nil {
		return nil, fmt.Errorf("inference session is nil")
	}

	expected := h * w * c
	if int64(len(input)) != expected {
		return nil, fmt.Errorf("input has wrong size: got %d, expected %d", len(input), expected)
	}

	// Create input tensor with shape [1, H, W, C]
	inputShape := ort.NewShape(1, h, w, c)
	inputTensor, err := ort.NewTensor(inputShape, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	// Create output tensor with shape [1, numClasses]
	outputShape := ort.NewShape(1, inf.numClasses)
	outputData := make([]float32, inf.numClasses)
	outputTensor, err := ort.NewTensor(outputShape, outputData)
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	// Run inference
	err = inf.session.Run(
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
	)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	scores := make([]float32, inf.numClasses)
	copy(scores, outputTensor.GetData())
	return scores, nil
}

// Close releases the ONNX session resources
func (inf *Inference) Close() error {
	inf.mu.Lock()
	defer inf.mu.Unlock()

	if inf.session != nil {
		err := inf.session.Destroy()
		inf.session = nil
		if err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	}

	return ort.DestroyEnvironment()
}

// Ensure Inference implements Engine at compile time
var _ Engine = (*Inference)(nil)
