package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
	"github.com/mskard-business-solutions/gogreen-backend/internal/config"
	"github.com/mskard-business-solutions/gogreen-backend/internal/db"
	"github.com/mskard-business-solutions/gogreen-backend/internal/handlers"
	"github.com/mskard-business-solutions/gogreen-backend/internal/logger"
	"github.com/mskard-business-solutions/gogreen-backend/internal/middleware"
	"github.com/mskard-business-solutions/gogreen-backend/internal/migration"
	"github.com/mskard-business-solutions/gogreen-backend/internal/publisher"
	"github.com/mskard-business-solutions/gogreen-backend/internal/repository"
	"github.com/mskard-business-solutions/gogreen-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env file not found, reading from environment")
	}

	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("🚀 Catalog backend starting")

	auth.Init(cfg.JWTSecret)

	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Database connection failed")
	}
	defer database.Close()

	// Apply pending schema migrations on startup.
	runner := migration.NewRunner(database, nil)
	if err := runner.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("❌ Migration init failed")
	}
	if err := runner.Up(); err != nil {
		log.Fatal().Err(err).Msg("❌ Migrations failed")
	}

	// Repository layer
	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	subcategoryRepo := repository.NewSubcategoryRepository(database)
	productRepo := repository.NewProductRepository(database)
	changeRepo := repository.NewPendingChangeRepository(database)
	auditRepo := repository.NewAuditRepository(database)

	// Kafka mirroring of audit entries is optional; the audit trail in
	// Postgres is the source of truth either way.
	var auditPublisher *publisher.AuditPublisher
	if cfg.KafkaBrokers != "" {
		auditPublisher, err = publisher.NewAuditPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error().Err(err).Msg("❌ Kafka producer unavailable, audit events stay local")
			auditPublisher = nil
		}
	}

	// Service layer
	var eventPublisher services.EventPublisher
	if auditPublisher != nil {
		eventPublisher = auditPublisher
	}
	auditService := services.NewAuditService(auditRepo, eventPublisher)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	subcategoryService := services.NewSubcategoryService(subcategoryRepo, categoryRepo)
	productService := services.NewProductService(productRepo, subcategoryRepo)
	approvalService := services.NewApprovalService(changeRepo, auditService)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := userService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("❌ Admin account seeding failed")
		}
	} else {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seeding")
	}

	// Handler layer
	applier := handlers.NewChangeApplier(categoryService, subcategoryService, productService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	subcategoryHandler := handlers.NewSubcategoryHandler(subcategoryService, auditService)
	productHandler := handlers.NewProductHandler(productService, auditService)
	approvalHandler := handlers.NewApprovalHandler(approvalService, applier)
	auditHandler := handlers.NewAuditHandler(auditService)

	metrics := middleware.NewMetricsMiddleware()
	router := setupRouter(cfg, metrics, userHandler, categoryHandler, subcategoryHandler, productHandler, approvalHandler, auditHandler)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Msg("🌐 HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server failed")
		}
	}()

	<-shutdown
	log.Info().Msg("🛑 Shutdown signal received, stopping...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP server shutdown error")
	} else {
		log.Info().Msg("✅ HTTP server stopped")
	}

	if auditPublisher != nil {
		auditPublisher.Close()
	}

	log.Info().Msg("👋 Catalog backend stopped")
}

// setupRouter wires all routes behind the middleware chain. Catalog writes
// and everything under /admin require the admin role; editors reach the
// submission and own-changes surfaces.
func setupRouter(
	cfg *config.Config,
	metrics *middleware.MetricsMiddleware,
	userHandler *handlers.UserHandler,
	categoryHandler *handlers.CategoryHandler,
	subcategoryHandler *handlers.SubcategoryHandler,
	productHandler *handlers.ProductHandler,
	approvalHandler *handlers.ApprovalHandler,
	auditHandler *handlers.AuditHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = middleware.NotFoundJSONHandler()

	router.Use(middleware.RequestLoggingMiddleware(middleware.DefaultLoggingConfig()))
	if cfg.AppEnv == "development" {
		router.Use(middleware.ErrorHandlingMiddlewareForDevelopment())
	} else {
		router.Use(middleware.ErrorHandlingMiddlewareForProduction())
	}
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	router.Use(middleware.SecurityHeadersMiddleware(middleware.DefaultSecurityConfig()))
	router.Use(middleware.NewRateLimitMiddleware(middleware.DefaultRateLimitConfig()).Handler())
	router.Use(metrics.Handler())

	router.HandleFunc("/metrics", metrics.SnapshotHandler()).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", userHandler.Register).Methods("POST")
	authRoutes.HandleFunc("/login", userHandler.Login).Methods("POST")
	authRoutes.HandleFunc("/refresh", userHandler.Refresh).Methods("POST")

	// Authenticated endpoints
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/auth/logout", userHandler.Logout).Methods("POST")
	protected.HandleFunc("/users/profile", userHandler.GetProfile).Methods("GET")

	// Catalog reads, any authenticated role
	catalog := protected.NewRoute().Subrouter()
	catalog.Use(middleware.RequirePermission(middleware.PermViewCatalog))
	catalog.HandleFunc("/categories", categoryHandler.GetAll).Methods("GET")
	catalog.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.GetByID).Methods("GET")
	catalog.HandleFunc("/subcategories", subcategoryHandler.GetByCategory).Methods("GET")
	catalog.HandleFunc("/subcategories/{id:[0-9]+}", subcategoryHandler.GetByID).Methods("GET")
	catalog.HandleFunc("/products", productHandler.GetAll).Methods("GET")
	catalog.HandleFunc("/products/{id:[0-9]+}", productHandler.GetByID).Methods("GET")

	// Editor surface: submit and track own changes
	changes := protected.PathPrefix("/changes").Subrouter()
	submit := changes.NewRoute().Subrouter()
	submit.Use(middleware.RequirePermission(middleware.PermSubmitChange))
	submit.HandleFunc("", approvalHandler.Submit).Methods("POST")

	mine := changes.NewRoute().Subrouter()
	mine.Use(middleware.RequirePermission(middleware.PermViewOwnChanges))
	mine.HandleFunc("/mine", approvalHandler.ListMine).Methods("GET")
	mine.HandleFunc("/{id:[0-9]+}", approvalHandler.GetByID).Methods("GET")

	// Admin surface: direct catalog writes, review queue, users, audit trail
	admin := protected.NewRoute().Subrouter()
	admin.Use(middleware.RequireAdmin())

	admin.HandleFunc("/categories", categoryHandler.Create).Methods("POST")
	admin.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Update).Methods("PUT")
	admin.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/subcategories", subcategoryHandler.Create).Methods("POST")
	admin.HandleFunc("/subcategories/{id:[0-9]+}", subcategoryHandler.Update).Methods("PUT")
	admin.HandleFunc("/subcategories/{id:[0-9]+}", subcategoryHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/products", productHandler.Create).Methods("POST")
	admin.HandleFunc("/products/{id:[0-9]+}", productHandler.Update).Methods("PUT")
	admin.HandleFunc("/products/{id:[0-9]+}", productHandler.Delete).Methods("DELETE")

	review := protected.NewRoute().Subrouter()
	review.Use(middleware.RequirePermission(middleware.PermReviewChanges))
	review.HandleFunc("/changes/pending", approvalHandler.ListPending).Methods("GET")
	review.HandleFunc("/changes", approvalHandler.ListByStatus).Methods("GET")
	review.HandleFunc("/changes/{id:[0-9]+}/review", approvalHandler.Review).Methods("POST")
	review.HandleFunc("/changes/{id:[0-9]+}", approvalHandler.Purge).Methods("DELETE")

	users := protected.PathPrefix("/users").Subrouter()
	users.Use(middleware.RequirePermission(middleware.PermManageUsers))
	users.HandleFunc("", userHandler.GetAllUsers).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}", userHandler.GetUserByID).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}", userHandler.UpdateUser).Methods("PUT")
	users.HandleFunc("/{id:[0-9]+}", userHandler.DeleteUser).Methods("DELETE")

	audit := protected.PathPrefix("/audit").Subrouter()
	audit.Use(middleware.RequirePermission(middleware.PermViewAuditTrail))
	audit.HandleFunc("/users/{user_id:[0-9]+}", auditHandler.GetByUser).Methods("GET")
	audit.HandleFunc("/range", auditHandler.GetByDateRange).Methods("GET")
	audit.HandleFunc("/{entity_type}/{entity_id:[0-9]+}", auditHandler.GetByEntity).Methods("GET")

	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}
