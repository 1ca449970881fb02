package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/moodlens/emotion-service/internal/audio"
	"github.com/moodlens/emotion-service/internal/config"
	"github.com/moodlens/emotion-service/internal/handler"
	"github.com/moodlens/emotion-service/internal/integrations/modelserver"
	"github.com/moodlens/emotion-service/internal/middleware"
	"github.com/moodlens/emotion-service/internal/models"
	"github.com/moodlens/emotion-service/internal/service"
	"github.com/moodlens/emotion-service/internal/store"
	"github.com/moodlens/emotion-service/internal/token"
	"github.com/moodlens/emotion-service/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize user store
	users, err := newUserStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize user store: %v", err)
	}
	if err := seedAdmin(users); err != nil {
		logger.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize layers
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	mclient := modelserver.NewClient(cfg, logger)
	deps := service.Deps{
		Users:       users,
		Tokens:      tokens,
		Classifier:  mclient,
		Transcriber: mclient,
		Detector:    mclient,
		Normalizer:  audio.NewNormalizer(cfg.FFmpegPath),
	}
	if cfg.MailEnabled() {
		deps.Mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(deps, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Warm up model backends on a schedule
	if cfg.WarmupSchedule != "" {
		c := cron.New()
		warmup := func() { pingBackends(mclient, logger) }
		if _, err := c.AddFunc(cfg.WarmupSchedule, warmup); err != nil {
			logger.Fatalf("Invalid WARMUP_SCHEDULE: %v", err)
		}
		go warmup()
		c.Start()
		defer c.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS)
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", h.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/analyze", h.Analyze).Methods("POST", "OPTIONS")
	r.HandleFunc("/analyze/speech", h.AnalyzeSpeech).Methods("POST", "OPTIONS")
	r.HandleFunc("/analyze/image", h.AnalyzeImage).Methods("POST", "OPTIONS")
	// Protected routes
	// OPTIONS must match here too: the root CORS middleware answers the
	// preflight before the auth middleware could 401 it.
	authRouter := r.PathPrefix("/users").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(tokens))
	authRouter.HandleFunc("/me", h.Me).Methods("GET", "OPTIONS")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

// newUserStore selects the Postgres backend when DB_CONN is set, the
// in-memory backend otherwise.
func newUserStore(cfg *config.Config, logger *logrus.Logger) (store.UserStore, error) {
	if cfg.DBConn == "" {
		logger.Info("Using in-memory user store")
		return store.NewMemory(), nil
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Using Postgres user store")
	return store.NewPostgres(db), nil
}

// seedAdmin inserts the development admin/admin account. An existing row
// is not an error.
func seedAdmin(users store.UserStore) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = users.Create(context.Background(), &models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// pingBackends checks each model backend's health endpoint and logs the
// outcome.
func pingBackends(client *modelserver.Client, logger *logrus.Logger) {
	for name, url := range client.Backends() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := client.Ping(ctx, url); err != nil {
			logger.Warnf("Model backend %s unavailable: %v", name, err)
		} else {
			logger.Debugf("Model backend %s healthy", name)
		}
		cancel()
	}
}
