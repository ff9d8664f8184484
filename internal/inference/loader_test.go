// internal/inference/loader_test.go
package inference

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestFetchArtifactDownloadsFile(t *testing.T) {
	artifact := []byte("onnx-graph-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(artifact)
	}))
	defer srv.Close()

	path, err := FetchArtifact(srv.URL + "/model/model.onnx")
	if err != nil {
		t.Fatalf("FetchArtifact failed: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fetched artifact: %v", err)
	}
	if string(data) != string(artifact) {
		t.Errorf("Fetched artifact does not match served bytes")
	}
}

func TestFetchArtifactNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := FetchArtifact(srv.URL + "/model/missing.onnx"); err == nil {
		t.Fatal("Expected error for 404 response")
	}
}

func TestFetchArtifactUnreachableEndpoint(t *testing.T) {
	// Closed server simulates an unreachable artifact endpoint
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := FetchArtifact(url + "/model/model.onnx"); err == nil {
		t.Fatal("Expected error for unreachable endpoint")
	}
}
