package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-posting-index/api"
	"github.com/gcbaptista/go-posting-index/config"
	"github.com/gcbaptista/go-posting-index/internal/engine"
)

const maxRequestBodySize = 4 << 20 // 4 MiB

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to YAML config file")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		dataDir    = flag.String("data-dir", "", "Directory to store index data (overrides config)")
		backend    = flag.String("backend", "", "Store backend: memory, bolt or redis (overrides config)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Posting Index - an inverted index over a pluggable key-value store\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                # In-memory store on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --backend bolt --port 9000     # Durable bolt-backed store on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config ./posting_index.yaml  # Full configuration from file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Posting Index v1.0.0\n")
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Store.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize the posting index engine
	log.Printf("Using store backend '%s' with data directory: %s", cfg.Store.Backend, cfg.Store.DataDir)
	postingEngine, err := engine.NewEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}
	defer postingEngine.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))

	// Setup API routes
	api.SetupRoutes(router, postingEngine)

	// Start the server
	log.Printf("Starting server on port %s...", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
