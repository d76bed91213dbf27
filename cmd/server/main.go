package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"solace/internal/auth"
	"solace/internal/capabilities"
	"solace/internal/config"
	"solace/internal/handler"
	"solace/internal/middleware"
	"solace/internal/repository/store"
	authSvc "solace/internal/service/auth"
	chatSvc "solace/internal/service/chat"
	serviceLLM "solace/internal/service/llm"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// shutdownTimeout bounds how long in-flight requests get to finish
const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreDriver,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Conversation store
	db, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer db.Close()

	// Tokens: locally issued HS256, plus an external identity provider when configured
	tokenService, err := auth.NewHMACTokenService(cfg.JWTSecret, cfg.JWTTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	verifiers := []auth.TokenVerifier{tokenService}
	if cfg.AuthJWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifiers = append(verifiers, jwksVerifier)
	}
	tokenVerifier := auth.NewChainVerifier(verifiers...)
	defer tokenVerifier.Close()

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}

	// Language model gateway
	gateway, providerFactory, err := serviceLLM.SetupGateway(cfg, capabilityRegistry, logger)
	if err != nil {
		log.Fatalf("Failed to setup language model gateway: %v", err)
	}

	prompts, err := chatSvc.LoadPrompts()
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load time zone: %v", err)
	}

	// Services
	authService := authSvc.NewAuthService(db.Users, auth.NewBcryptHasher(0), tokenService, logger)
	authorizer := authSvc.NewOwnerBasedAuthorizer(db.Sessions)
	sessionService := chatSvc.NewSessionService(db.Sessions, db.History, authorizer, location, logger)
	conversationService := chatSvc.NewConversationService(
		sessionService,
		db.Sessions,
		db.History,
		gateway,
		prompts,
		chatSvc.ConversationConfig{Model: cfg.DefaultModel, TitleModel: cfg.TitleModel},
		logger,
	)

	// Handlers (no repository access)
	authHandler := handler.NewAuthHandler(authService, logger)
	chatHandler := handler.NewChatHandler(sessionService, conversationService, logger)
	modelsHandler := handler.NewModelsHandler(providerFactory, capabilityRegistry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	// Auth routes
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /token", authHandler.Token)
	mux.HandleFunc("GET /auth/me", authHandler.Me)

	// Chat routes
	mux.HandleFunc("POST /chat_session/{$}", chatHandler.CreateSession)
	mux.HandleFunc("GET /session_chats/{session_id}", chatHandler.GetSessionChats)
	mux.HandleFunc("GET /chat/{$}", chatHandler.GetHistory)
	mux.HandleFunc("POST /chat/{$}", chatHandler.SendMessage)
	mux.HandleFunc("GET /all_sessions/{$}", chatHandler.ListSessions)
	mux.HandleFunc("POST /analyze/{$}", chatHandler.Analyze)

	// Model capabilities
	mux.HandleFunc("GET /models/{$}", modelsHandler.GetCapabilities)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(tokenVerifier, logger,
		"GET /health",
		"POST /auth/register",
		"POST /auth/login",
		"POST /token",
	)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. WriteTimeout leaves room for a slow model reply.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
