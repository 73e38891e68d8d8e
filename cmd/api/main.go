package main

import (
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"financial-twin/internal/api/handlers"
	"financial-twin/internal/api/middleware"
	"financial-twin/internal/api/models"
	"financial-twin/internal/assessment"
	"financial-twin/internal/config"
	"financial-twin/internal/scoring"
	"financial-twin/internal/storage"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	// Load the risk model. A missing artifact leaves the service up but
	// degraded: scoring endpoints answer 503 until the model is present.
	riskModel := scoring.NewModel()
	if err := riskModel.Load(cfg.Model.File); err != nil {
		logger.Warnf("Risk model not loaded, serving degraded: %v", err)
	} else {
		logger.Infof("Risk model loaded from %s (%d features)", cfg.Model.File, len(riskModel.FeatureNames()))
	}

	// Optional assessment history storage.
	var repo *storage.Repository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo = storage.NewRepository(db)
		if err := repo.InitSchema(); err != nil {
			logger.Fatalf("Failed to initialize schema: %v", err)
		}
		logger.Info("Assessment history storage enabled")
	}

	svc := assessment.NewService(riskModel, cfg.SimulationParams(), logger)
	loanHandler := handlers.NewLoanHandler(svc, riskModel, repo, logger)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Loan Risk Assessment API is running",
			"version": version,
		})
	})
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if !riskModel.Loaded() {
			status = "degraded"
		}
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:         status,
			ModelLoaded:    riskModel.Loaded(),
			StorageEnabled: repo != nil,
			Version:        version,
		})
	})

	api := router.Group("/api/v1")
	{
		loan := api.Group("/loan")
		loan.POST("/assess", loanHandler.Assess)
		loan.POST("/quick-score", loanHandler.QuickScore)
		loan.POST("/explain", loanHandler.Explain)
		loan.GET("/model-info", loanHandler.ModelInfo)

		if repo != nil {
			historyHandler := handlers.NewHistoryHandler(repo, logger)
			api.GET("/assessments", historyHandler.List)
		}
	}

	// CORS wraps the whole router so preflights never reach the handlers.
	var corsWrapper *cors.Cors
	if len(cfg.Server.CORSOrigins) == 0 {
		corsWrapper = cors.AllowAll()
	} else {
		corsWrapper = cors.New(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		})
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsWrapper.Handler(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Infof("Starting API server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
