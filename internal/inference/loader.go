// internal/inference/loader.go
package inference

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// FetchArtifact downloads the serialized model graph from artifactURL into a
// temporary file and returns the file path. A single synchronous attempt with
// the default client; the caller treats any failure as fatal and must not
// serve predictions without a loaded model.
func FetchArtifact(artifactURL string) (string, error) {
	resp, err := http.Get(artifactURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch model artifact from %s: %w", artifactURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch model artifact from %s: status %d", artifactURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "scan-api-model-*.onnx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for model artifact: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write model artifact: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close model artifact file: %w", err)
	}

	return tmp.Name(), nil
}

// LoadFromURL fetches the model artifact and opens an ONNX session over it.
func LoadFromURL(artifactURL string, numClasses int64) (*Inference, error) {
	path, err := FetchArtifact(artifactURL)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	return New(path, numClasses)
}
