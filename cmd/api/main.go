package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/maresdigital/brandhub-backend/api/controllers"
	"github.com/maresdigital/brandhub-backend/api/routes"
	"github.com/maresdigital/brandhub-backend/internal/auth"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	"github.com/maresdigital/brandhub-backend/internal/files"
	"github.com/maresdigital/brandhub-backend/internal/pages"
	"github.com/maresdigital/brandhub-backend/internal/profiles"
	"github.com/maresdigital/brandhub-backend/internal/qrcodes"
	"github.com/maresdigital/brandhub-backend/internal/reviews"
	"github.com/maresdigital/brandhub-backend/internal/users"
	"github.com/maresdigital/brandhub-backend/pkg/auth/session"
	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
	"github.com/maresdigital/brandhub-backend/pkg/metrics"
	"github.com/maresdigital/brandhub-backend/pkg/migrate"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
	"github.com/maresdigital/brandhub-backend/pkg/redis"
	"github.com/maresdigital/brandhub-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	pingers := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var gcsClient *gcs.Client
	if cfg.GCS.BucketName != "" {
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		defer func() {
			if err := gcsClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing gcs", err)
			}
		}()
		pingers["gcs"] = gcsClient
	} else {
		pingers["gcs"] = nil
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	userRepo := users.NewRepository(dbClient.DB())
	brandRepo := brands.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.ServiceParams{
		UserRepo:    userRepo,
		ProfileRepo: profiles.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	brandParams := brands.ServiceParams{
		Repo:      brandRepo,
		DB:        dbClient,
		Outbox:    outboxService,
		GCSConfig: cfg.GCS,
	}
	if gcsClient != nil {
		brandParams.Signer = gcsClient
	}
	brandService, err := brands.NewService(brandParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create brand service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	fileParams := files.ServiceParams{
		Repo:      files.NewRepository(dbClient.DB()),
		GCSConfig: cfg.GCS,
	}
	if gcsClient != nil {
		fileParams.Signer = gcsClient
	}
	fileService, err := files.NewService(fileParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create file service", err)
		os.Exit(1)
	}

	pageService, err := pages.NewService(pages.ServiceParams{
		Repo:   pages.NewRepository(dbClient.DB()),
		DB:     dbClient,
		Outbox: outboxService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create page service", err)
		os.Exit(1)
	}

	qrService, err := qrcodes.NewService(qrcodes.ServiceParams{
		Repo:   qrcodes.NewRepository(dbClient.DB()),
		DB:     dbClient,
		Outbox: outboxService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create qr code service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:             cfg,
			Logg:            logg,
			Pingers:         pingers,
			Redis:           redisClient,
			Sessions:        sessionManager,
			HTTPMetrics:     httpMetrics,
			Gatherer:        registry,
			AuthService:     authService,
			RegisterService: registerService,
			UserService:     userService,
			ProfileService:  profileService,
			BrandService:    brandService,
			ReviewService:   reviewService,
			FileService:     fileService,
			PageService:     pageService,
			QRService:       qrService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
