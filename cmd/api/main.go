package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"merchops/internal/application"
	"merchops/internal/application/webhook_handlers"
	"merchops/internal/config"
	apiinfra "merchops/internal/infrastructure/api"
	securitymiddleware "merchops/internal/infrastructure/middleware"
	"merchops/internal/infrastructure/repository"
	"merchops/internal/infrastructure/session"
	shopifyinfra "merchops/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Load and validate configuration. A process with incomplete
	// Shopify credentials or no session secret must not start serving.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)

	// Connect to Redis for sessions
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	// Initialize repositories
	userRepo := repository.NewMongoUserRepository(db)
	campRepo := repository.NewMongoCampRepository(db)
	registrationRepo := repository.NewMongoRegistrationRepository(db)
	webhookEventRepo := repository.NewMongoWebhookEventRepository(db)

	// Initialize the Shopify gateway
	responseCache := shopifyinfra.NewResponseCache(cfg.CacheTTL)
	shopifyClient := shopifyinfra.NewClient(cfg.Shopify, responseCache, logger)
	webhookVerifier := shopifyinfra.NewWebhookVerifier(cfg.Shopify.APISecret, logger)

	// Initialize session store
	sessionStore := session.NewStore(rdb, cfg.SessionSecret, cfg.SessionTTL, logger)

	// Initialize application services
	gatewayService := application.NewGatewayService(shopifyClient, logger)
	orderLinker := application.NewOrderLinker(gatewayService, campRepo, registrationRepo, cfg.LinkConcurrency, logger)
	authService := application.NewAuthService(userRepo, sessionStore, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewOrderHandler(registrationRepo, logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductHandler(logger))

	// Initialize endpoint handlers
	authHandlers := apiinfra.NewAuthHandlers(authService, cfg.SessionTTL, logger)
	shopifyHandlers := apiinfra.NewShopifyHandlers(gatewayService, orderLinker, logger)
	campHandlers := apiinfra.NewCampHandlers(campRepo, registrationRepo, logger)
	webhookHandlers := apiinfra.NewWebhookHandlers(webhookVerifier, webhookDispatcher, webhookEventRepo, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securitymiddleware.Metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation - public
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Webhook receiver: HMAC-verified, not session-authenticated
	r.Post("/webhooks/shopify", webhookHandlers.Receive)

	// Auth routes
	r.Post("/auth/login", authHandlers.Login)
	r.Group(func(r chi.Router) {
		r.Use(securitymiddleware.RequireAuth(sessionStore, logger))
		r.Post("/auth/logout", authHandlers.Logout)
		r.Get("/auth/me", authHandlers.Me)
	})

	// Camp routes: reads for any authenticated role, creation for
	// store managers.
	r.Route("/api/camps", func(r chi.Router) {
		r.Use(securitymiddleware.RequireAuth(sessionStore, logger))
		r.Get("/", campHandlers.ListCamps)
		r.Get("/{id}", campHandlers.GetCamp)
		r.Get("/{id}/registrations", campHandlers.ListRegistrations)
		r.Group(func(r chi.Router) {
			r.Use(securitymiddleware.RequireStoreManager())
			r.Post("/", campHandlers.CreateCamp)
		})
	})

	// Shopify routes. Single-resource reads are open to any
	// authenticated session; listing, linking and connection checks
	// require a store-managing role.
	r.Route("/api/shopify", func(r chi.Router) {
		r.Use(securitymiddleware.RequireAuth(sessionStore, logger))
		r.Group(func(r chi.Router) {
			r.Get("/products/{id}", shopifyHandlers.GetProduct)
			r.Get("/orders/{id}", shopifyHandlers.GetOrder)
		})
		r.Group(func(r chi.Router) {
			r.Use(securitymiddleware.RequireStoreManager())
			r.Get("/products", shopifyHandlers.ListProducts)
			r.Get("/orders", shopifyHandlers.ListOrders)
			r.Post("/link-orders-to-camp", shopifyHandlers.LinkOrdersToCamp)
			r.Get("/connection-status", shopifyHandlers.ConnectionStatus)
		})
	})

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
