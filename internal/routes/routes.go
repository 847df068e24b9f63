package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fundilink/fundilink/internal/accessfee"
	"github.com/fundilink/fundilink/internal/auth"
	"github.com/fundilink/fundilink/internal/config"
	"github.com/fundilink/fundilink/internal/funding"
	"github.com/fundilink/fundilink/internal/identity"
	"github.com/fundilink/fundilink/internal/interest"
	"github.com/fundilink/fundilink/internal/job"
	"github.com/fundilink/fundilink/internal/middleware"
	"github.com/fundilink/fundilink/internal/notification"
	"github.com/fundilink/fundilink/internal/proof"
	"github.com/fundilink/fundilink/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Storage backends, Postgres in deployed environments, in-memory for dev.
	var (
		walletStore  wallet.Store
		interestRepo interest.Repository
		feeRepo      accessfee.Repository
		identityRepo identity.Repository
		jobs         job.Directory
	)
	if d.DB != nil {
		walletStore = wallet.NewPostgresStore(d.DB)
		interestRepo = interest.NewPostgresRepository(d.DB)
		feeRepo = accessfee.NewPostgresRepository(d.DB)
		identityRepo = identity.NewPostgresRepository(d.DB)
		jobs = job.NewPostgresDirectory(d.DB)
	} else {
		walletStore = wallet.NewMemoryStore()
		interestRepo = interest.NewMemoryRepository()
		feeRepo = accessfee.NewMemoryRepository()
		identityRepo = identity.NewMemoryRepository()
		jobs = job.NewMemoryDirectory()
	}

	var proofs funding.ProofStore
	if d.Cfg.CloudinaryCloudName != "" {
		store, err := proof.NewCloudinaryStore(d.Cfg.CloudinaryCloudName, d.Cfg.CloudinaryAPIKey, d.Cfg.CloudinaryAPISecret)
		if err != nil {
			return fmt.Errorf("cloudinary proof store: %w", err)
		}
		proofs = store
	} else {
		if !d.Cfg.IsDev() {
			return fmt.Errorf("cloudinary credentials are required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		proofs = proof.NewMemoryStore()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	walletSvc := wallet.NewService(walletStore)
	feeSvc := accessfee.NewService(feeRepo, accessfee.Bounds{
		MinCoins:     d.Cfg.FeeMinCoins,
		MaxCoins:     d.Cfg.FeeMaxCoins,
		DefaultCoins: d.Cfg.FeeDefaultCoins,
	})
	fundingSvc := funding.NewService(walletStore, proofs, notifier, funding.Rules{
		MinAmountCurrency: d.Cfg.MinFundingCurrency,
		MaxProofBytes:     d.Cfg.MaxProofBytes,
	})
	interestSvc := interest.NewService(interestRepo, walletSvc, feeSvc, jobs, notifier)
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)

	authHandler := auth.NewHandler(identitySvc, authSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	fundingHandler := funding.NewHandler(fundingSvc)
	feeHandler := accessfee.NewHandler(feeSvc, jobs)
	interestHandler := interest.NewHandler(interestSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(authSvc)
	protected := api.Group("", jwtmw)
	protected.Post("/auth/logout", authHandler.Logout)

	RegisterWalletRoutes(protected, walletHandler, fundingHandler)
	RegisterJobRoutes(protected, interestHandler, feeHandler, middleware.RequireRole(identity.RoleTradesperson))
	RegisterInterestRoutes(protected, interestHandler)

	admin := protected.Group("/admin", middleware.RequireRole(identity.RoleAdmin))
	RegisterAdminRoutes(admin, fundingHandler, interestHandler)

	return nil
}
