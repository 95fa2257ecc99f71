// Package main is the entrypoint for the CarValue API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/carvalueai/carvalueai/internal/cache"
	"github.com/carvalueai/carvalueai/internal/config"
	"github.com/carvalueai/carvalueai/internal/handler"
	"github.com/carvalueai/carvalueai/internal/metrics"
	"github.com/carvalueai/carvalueai/internal/middleware"
	"github.com/carvalueai/carvalueai/internal/payment"
	"github.com/carvalueai/carvalueai/internal/repository"
	"github.com/carvalueai/carvalueai/internal/server"
	"github.com/carvalueai/carvalueai/internal/service"
	"github.com/carvalueai/carvalueai/internal/token"
	"github.com/carvalueai/carvalueai/internal/valuation"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	codec := token.NewCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)

	recorder := metrics.NewNoop()
	userService := service.NewUserService(repo)
	valuationService := service.NewValuationService(repo, cacheClient, &valuation.Baseline{}, recorder)
	bookingService := service.NewBookingService(repo, cacheClient, recorder)
	paymentService := service.NewPaymentService(repo, gateway, recorder)
	statsService := service.NewStatsService(repo)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(userService, codec, logger)
	valuationHandler := handler.NewValuationHandler(valuationService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	bookingHandler := handler.NewBookingHandler(bookingService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)

	r := setupRouter(routerDeps{
		health:    healthHandler,
		auth:      authHandler,
		valuation: valuationHandler,
		payment:   paymentHandler,
		booking:   bookingHandler,
		stats:     statsHandler,
		codec:     codec,
		cache:     cacheClient,
		cfg:       cfg,
		logger:    logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Connections close only after the HTTP server has drained, in
	// reverse registration order.
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})
	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"addr", srv.Addr(),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	health    *handler.HealthHandler
	auth      *handler.AuthHandler
	valuation *handler.ValuationHandler
	payment   *handler.PaymentHandler
	booking   *handler.BookingHandler
	stats     *handler.StatsHandler
	codec     *token.Codec
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
// CORS runs before routing so preflights and origin rejections apply to
// every path, known or not.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(middleware.RecovererConfig{
		Logger:         deps.logger,
		IncludeDetails: !deps.cfg.IsProduction(),
	}))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.CORS(middleware.NewOriginPolicy(deps.cfg.GetCORSAllowedOrigins())))

	// Public routes
	r.Get("/", handler.Root)
	r.Get("/health", deps.health.Health)
	r.Post("/auth/register", deps.auth.Register)
	r.Post("/auth/login", deps.auth.Login)

	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Codec:  deps.codec,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  deps.logger,
		Limiter: deps.cache,
		Enabled: deps.cfg.RateLimitPredictEnabled,
		RPS:     deps.cfg.RateLimitPredictRPS,
		Burst:   deps.cfg.RateLimitPredictBurst,
	}

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Get("/auth/me", deps.auth.Me)
		r.With(middleware.RateLimitIP(rateLimitCfg)).Post("/predict", deps.valuation.Predict)
		r.Get("/cars/{car_id}", deps.valuation.GetCar)
		r.Post("/create-order", deps.payment.CreateOrder)
		r.Post("/verify-payment", deps.payment.VerifyPayment)
		r.Post("/book-inspection", deps.booking.BookInspection)
		r.Get("/bookings/{booking_id}", deps.booking.GetBooking)
		r.Get("/stats", deps.stats.Stats)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
