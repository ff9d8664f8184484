// internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ccbangkit/scan-api/internal/classifier"
	"github.com/ccbangkit/scan-api/internal/identity"
	"github.com/ccbangkit/scan-api/internal/store"
)

// Error taxonomy: validation failures (missing fields, missing upload) map to
// 400, empty result sets and unknown users to 404/400, and every dependency
// failure (model, identity service, document service) to 500. Dependency
// failures keep a generic message but surface the underlying error string.

// respondError writes a {status:false, message} envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  false,
		"message": message,
	})
}

// respondServiceError writes a {status:false, message, error} envelope for
// failures of an external dependency.
func respondServiceError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  false,
		"message": message,
		"error":   err.Error(),
	})
}

// predictStatus maps a classification failure to its HTTP status and
// user-facing message. Decode, missing-model, and generic inference failures
// each get a distinct message but a uniform 500.
func predictStatus(err error) (int, string) {
	switch {
	case errors.Is(err, classifier.ErrNotLoaded):
		return http.StatusInternalServerError, "Model not loaded."
	case errors.Is(err, classifier.ErrDecode):
		return http.StatusInternalServerError, "Cannot decode image file."
	default:
		return http.StatusInternalServerError, "Error making prediction."
	}
}

// isNotFound reports whether err is an empty-result or unknown-user outcome
// rather than a dependency failure.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) || errors.Is(err, identity.ErrUserNotFound)
}
