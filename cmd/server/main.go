// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/api/option"

	"github.com/ccbangkit/scan-api/internal/cache"
	"github.com/ccbangkit/scan-api/internal/classifier"
	"github.com/ccbangkit/scan-api/internal/config"
	"github.com/ccbangkit/scan-api/internal/handler"
	"github.com/ccbangkit/scan-api/internal/identity"
	"github.com/ccbangkit/scan-api/internal/inference"
	"github.com/ccbangkit/scan-api/internal/metrics"
	"github.com/ccbangkit/scan-api/internal/middleware"
	"github.com/ccbangkit/scan-api/internal/store"
)

const serviceName = "scan-api"

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "HTTP server port (default: 3000)")
	modelDir := flag.String("model-dir", "", "Directory holding the model artifact (default: model)")
	modelURL := flag.String("model-url", "", "URL of the ONNX model artifact")
	credentials := flag.String("credentials", "", "Path to the Firebase service-account file (default: serviceAccount.json)")
	redisAddr := flag.String("redis", "", "Redis address for listing caches (default: disabled)")
	metricsPort := flag.Int("metrics", 0, "Metrics/ops port (default: 9100)")
	configFile := flag.String("config", "", "Path to config file (optional)")
	useMock := flag.Bool("mock", false, "Use mock inference engine (for testing)")
	flag.Parse()

	// Load configuration from file and environment
	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadWithConfigFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override with flags if provided
	if *port > 0 {
		cfg.Port = *port
	}
	if *modelDir != "" {
		cfg.ModelDir = *modelDir
	}
	if *modelURL != "" {
		cfg.ModelURL = *modelURL
	}
	if *credentials != "" {
		cfg.CredentialsFile = *credentials
	}
	if *redisAddr != "" {
		cfg.Redis = *redisAddr
	}
	if *metricsPort > 0 {
		cfg.MetricsPort = *metricsPort
	}
	if *useMock {
		cfg.UseMockInference = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting %s...", serviceName)
	log.Printf("Configuration: port=%d, model_url=%s, redis=%s, metrics=%d, otel=%v",
		cfg.Port, cfg.ModelURL, cfg.Redis, cfg.MetricsPort, cfg.OTELEnabled)

	// Initialize OpenTelemetry tracer
	var tracerShutdown func(context.Context) error
	if cfg.OTELEnabled {
		tracerShutdown, err = initTracer(cfg.OTELEndpoint)
		if err != nil {
			log.Printf("Warning: Failed to initialize tracer: %v", err)
		} else {
			log.Printf("OpenTelemetry tracing enabled (endpoint: %s)", cfg.OTELEndpoint)
		}
	}

	// Start the ops server first: it hosts the model artifact directory, so
	// the loader can fetch the graph before the main server exists.
	var ready atomic.Bool
	opsServer := startOpsServer(cfg.MetricsPort, cfg.ModelDir, &ready)

	// Load the inference engine. A single attempt; any failure is fatal so the
	// process never serves degraded predictions.
	var engine inference.Engine
	if cfg.UseMockInference {
		log.Printf("Using mock inference engine")
		engine = inference.NewMock()
	} else {
		log.Printf("Loading ONNX model from %s...", cfg.ModelURL)
		engine, err = inference.LoadFromURL(cfg.ModelURL, int64(len(classifier.Labels)))
		if err != nil {
			log.Fatalf("Failed to load ONNX model: %v", err)
		}
		log.Printf("ONNX model loaded successfully")
	}
	defer engine.Close()

	clf, err := classifier.New(engine, classifier.Labels)
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}
	if err := clf.Warmup(); err != nil {
		log.Fatalf("Model warm-up failed: %v", err)
	}
	log.Printf("Classes: %v", classifier.Labels)

	// Initialize the Firebase app backing the identity and document gateways
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		log.Fatalf("Credentials file not readable: %v", err)
	}
	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	ids, err := identity.NewFirebase(ctx, app)
	if err != nil {
		log.Fatalf("Failed to create identity gateway: %v", err)
	}

	st, err := store.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("Failed to create document gateway: %v", err)
	}
	defer st.Close()

	// Initialize Redis cache (optional)
	var cacheClient *cache.Cache
	if cfg.Redis != "" {
		log.Printf("Connecting to Redis at %s...", cfg.Redis)
		cacheClient, err = cache.New(cfg.Redis)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v (continuing without cache)", err)
		} else {
			defer cacheClient.Close()
			log.Printf("Redis connected successfully")
		}
	}

	// Build the router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	if cfg.OTELEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}

	h := handler.New(clf, ids, st, cacheClient)
	h.Register(router)
	router.Static("/model", cfg.ModelDir)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ready.Store(true)
	metrics.SetHealthy()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down gracefully...", sig)

		ready.Store(false)
		metrics.SetUnhealthy()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(ctx)
		opsServer.Shutdown(ctx)

		if tracerShutdown != nil {
			tracerShutdown(ctx)
		}
	}()

	log.Printf("HTTP server listening on %s", addr)
	log.Printf("%s is ready to accept requests", serviceName)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}

	log.Printf("Server shutdown complete")
}

// startOpsServer serves prometheus metrics, health endpoints, and the static
// model artifact directory on a separate port.
func startOpsServer(port int, modelDir string, ready *atomic.Bool) *http.Server {
	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Model artifact directory; the loader fetches the graph through here
	mux.Handle("/model/", http.StripPrefix("/model/", http.FileServer(http.Dir(modelDir))))

	// Health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Readiness flips once the model and gateways are initialized
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Not Ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Ready"))
	})

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		log.Printf("Ops server listening on %s (metrics, health, model artifacts)", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Ops server error: %v", err)
		}
	}()

	return server
}

func initTracer(endpoint string) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	var err error

	if endpoint != "" {
		// For now, use stdout exporter as OTLP requires more setup
		// In production, use: otlptrace.New(ctx, otlptracegrpc.NewClient(...))
		log.Printf("Note: Using stdout trace exporter (OTLP endpoint: %s)", endpoint)
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	} else {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Create resource with service information
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Create tracer provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	// Set global tracer provider
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
