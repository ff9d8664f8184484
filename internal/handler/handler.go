// internal/handler/handler.go
package handler

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ccbangkit/scan-api/internal/cache"
	"github.com/ccbangkit/scan-api/internal/classifier"
	"github.com/ccbangkit/scan-api/internal/identity"
	"github.com/ccbangkit/scan-api/internal/metrics"
	"github.com/ccbangkit/scan-api/internal/middleware"
	"github.com/ccbangkit/scan-api/internal/store"
)

// MaxUploadBytes bounds the size of one uploaded image.
const MaxUploadBytes = 5 << 20 // 5 MiB

const (
	productsCacheKey    = "products"
	articlesCachePrefix = "articles:"
)

// Handler holds the request-handling dependencies. The classifier is built
// once at startup and shared read-only; cache may be nil.
type Handler struct {
	clf      *classifier.Classifier
	identity identity.Service
	store    store.Store
	cache    *cache.Cache
}

// New creates a new Handler with the given dependencies.
func New(clf *classifier.Classifier, ids identity.Service, st store.Store, ca *cache.Cache) *Handler {
	return &Handler{
		clf:      clf,
		identity: ids,
		store:    st,
		cache:    ca,
	}
}

// Register wires every route onto the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Root)
	r.POST("/predict", h.Predict)
	r.POST("/register", h.RegisterUser)
	r.POST("/login", h.Login)
	r.POST("/add-product", h.AddProducts)
	r.GET("/products", h.Products)
	r.GET("/articles", h.Articles)
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Welcome to the image prediction API",
	})
}

// Predict handles POST /predict: multipart field "image" in, best label out.
func (h *Handler) Predict(c *gin.Context) {
	requestID := middleware.GetRequestID(c.Request.Context())

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image file uploaded.")
		return
	}
	defer file.Close()

	if header.Size > MaxUploadBytes {
		respondError(c, http.StatusBadRequest, "Image file exceeds the 5 MiB limit.")
		return
	}

	imageBytes, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read image file.")
		return
	}

	if h.clf == nil {
		respondError(c, http.StatusInternalServerError, "Model not loaded.")
		return
	}

	start := time.Now()
	prediction, err := h.clf.Classify(imageBytes)
	metrics.RecordInferenceLatency(time.Since(start).Seconds())

	if err != nil {
		log.Printf("[%s] Prediction error: %v", requestID, err)
		status, message := predictStatus(err)
		respondError(c, status, message)
		return
	}

	metrics.RecordPrediction(prediction.Label)
	log.Printf("[%s] Predict: label=%s confidence=%.4f size=%d", requestID, prediction.Label, prediction.Confidence, header.Size)

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"prediction": prediction,
	})
}

type registerRequest struct {
	Email     string `json:"email"`
	Nama      string `json:"nama"`
	Katasandi string `json:"katasandi"`
}

// RegisterUser handles POST /register
func (h *Handler) RegisterUser(c *gin.Context) {
	requestID := middleware.GetRequestID(c.Request.Context())

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Nama == "" || req.Katasandi == "" {
		respondError(c, http.StatusBadRequest, "Email, nama, and katasandi are required.")
		return
	}

	user, err := h.identity.Register(c.Request.Context(), req.Email, req.Nama, req.Katasandi)
	if err != nil {
		log.Printf("[%s] Registration error: %v", requestID, err)
		respondServiceError(c, "Registration failed.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "User registered successfully.",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login
func (h *Handler) Login(c *gin.Context) {
	requestID := middleware.GetRequestID(c.Request.Context())

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	token, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if isNotFound(err) {
			respondError(c, http.StatusBadRequest, "User not found.")
			return
		}
		log.Printf("[%s] Login error: %v", requestID, err)
		respondServiceError(c, "Login failed.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful.",
		"token":   token,
	})
}

// AddProducts handles POST /add-product
func (h *Handler) AddProducts(c *gin.Context) {
	requestID := middleware.GetRequestID(c.Request.Context())

	var products []store.Document
	if err := c.ShouldBindJSON(&products); err != nil {
		respondError(c, http.StatusBadRequest, "Request body must be an array of products.")
		return
	}

	results, err := h.store.AddProducts(c.Request.Context(), products)

	// Listings change even on partial failure
	if invErr := h.cache.Invalidate(c.Request.Context(), productsCacheKey); invErr != nil {
		log.Printf("[%s] Cache invalidation error: %v", requestID, invErr)
	}

	if err != nil {
		log.Printf("[%s] Add products error: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  false,
			"message": "Failed to add product data.",
			"error":   err.Error(),
			"results": results,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Products added successfully.",
		"results": results,
	})
}

// Products handles GET /products
func (h *Handler) Products(c *gin.Context) {
	requestID := middleware.GetRequestID(c.Request.Context())
	ctx := c.Request.Context()

	if docs, err := h.cache.GetListing(ctx, productsCacheKey); err == nil && docs != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   true,
			"message":  "Products retrieved successfully.",
			"products": docs,
		})
		return
	}

	docs, err := h.store.Products(ctx)
	if err != nil {
		if isNotFound(err) {
			respondError(c, http.StatusNotFound, "No products found.")
			return
		}
		log.Printf("[%s] Fetch products error: %v", requestID, err)
		respondServiceError(c, "Failed to fetch products.", err)
		return
	}

	if err := h.cache.SetListing(ctx, productsCacheKey, docs, cache.DefaultTTL); err != nil {
		log.Printf("[%s] Cache write error: %v", requestID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   true,
		"message":  "Products retrieved successfully.",
		"products": docs,
	})
}

// Articles handles GET /articles with an optional exact-match title filter.
func (h *Handler) Articles(c *gin.Context) {
	requestID := middleware.GetRequestID(c.Request.Context())
	ctx := c.Request.Context()
	title := c.Query("title")
	cacheKey := articlesCachePrefix + title

	if docs, err := h.cache.GetListing(ctx, cacheKey); err == nil && docs != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   true,
			"message":  "Articles retrieved successfully.",
			"articles": docs,
		})
		return
	}

	docs, err := h.store.Articles(ctx, title)
	if err != nil {
		if isNotFound(err) {
			respondError(c, http.StatusNotFound, "No articles found.")
			return
		}
		log.Printf("[%s] Fetch articles error: %v", requestID, err)
		respondServiceError(c, "Failed to fetch articles.", err)
		return
	}

	if err := h.cache.SetListing(ctx, cacheKey, docs, cache.DefaultTTL); err != nil {
		log.Printf("[%s] Cache write error: %v", requestID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   true,
		"message":  "Articles retrieved successfully.",
		"articles": docs,
	})
}
