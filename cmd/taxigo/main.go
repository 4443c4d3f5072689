package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piresc/taxigo/internal/pkg/config"
	"github.com/piresc/taxigo/internal/pkg/database"
	"github.com/piresc/taxigo/internal/pkg/health"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/middleware"
	"github.com/piresc/taxigo/internal/pkg/models"
	natspkg "github.com/piresc/taxigo/internal/pkg/nats"
	"github.com/piresc/taxigo/internal/pkg/ratelimit"
	"github.com/piresc/taxigo/internal/pkg/server"
	"github.com/piresc/taxigo/internal/pkg/validation"
	adminHandler "github.com/piresc/taxigo/services/admin/handler"
	authHandler "github.com/piresc/taxigo/services/auth/handler"
	authRepository "github.com/piresc/taxigo/services/auth/repository"
	authUsecase "github.com/piresc/taxigo/services/auth/usecase"
	locationGateway "github.com/piresc/taxigo/services/location/gateway"
	locationHandler "github.com/piresc/taxigo/services/location/handler"
	locationRepository "github.com/piresc/taxigo/services/location/repository"
	locationUsecase "github.com/piresc/taxigo/services/location/usecase"
	"github.com/piresc/taxigo/services/match"
	matchGateway "github.com/piresc/taxigo/services/match/gateway"
	matchHandler "github.com/piresc/taxigo/services/match/handler"
	matchUsecase "github.com/piresc/taxigo/services/match/usecase"
)

const version = "1.0.0"

func main() {
	cfg := config.InitConfig(".env")

	appLogger, err := logger.NewAppLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	// Infrastructure clients
	postgresClient, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Postgres")
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}

	natsClient, err := natspkg.NewClient(cfg.NATS.URL)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to NATS")
	}

	// Rate limiter shared by every route group
	limiter := ratelimit.NewLimiter(cfg.RateLimit)
	limiter.StartJanitor()

	// Location service
	locationRepo := locationRepository.NewLocationRepo(redisClient, cfg)
	locationGW := locationGateway.NewLocationGW(natsClient)
	locationUC := locationUsecase.NewLocationUC(locationRepo, locationGW, cfg, appLogger)
	locationUC.StartJanitor()

	// Match service
	routeProvider := newRouteProvider(cfg, appLogger)
	matchUC := matchUsecase.NewMatchUC(locationUC, routeProvider, cfg, appLogger)

	// Auth service
	userRepo := authRepository.NewUserRepo(postgresClient.GetDB())
	authUC := authUsecase.NewAuthUC(userRepo, cfg, appLogger)

	// HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.NewRequestValidator()

	authMW := middleware.JWTAuthMiddleware(cfg.JWT, appLogger)
	rateLimit := func(limit int, period time.Duration) echo.MiddlewareFunc {
		return middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			Limiter: limiter,
			Logger:  appLogger,
			Limit:   limit,
			Period:  period,
		})
	}

	health.NewHandler(cfg.App.Name, version).RegisterRoutes(e)

	authHandler.NewHTTPHandler(authUC).RegisterRoutes(e, authHandler.RouteMiddleware{
		CredentialRateLimit: rateLimit(5, 15*time.Minute),
		RefreshRateLimit:    rateLimit(10, 15*time.Minute),
	})

	locationHandler.NewHTTPHandler(locationUC).RegisterRoutes(e, locationHandler.RouteMiddleware{
		RateLimit:     rateLimit(200, 15*time.Minute),
		Auth:          authMW,
		RequireDriver: middleware.RequireRoles(models.RoleDriver),
		RequireRider:  middleware.RequireRoles(models.RolePassenger),
		RequireAdmin:  middleware.RequireRoles(models.RoleAdmin),
	})

	matchHandler.NewHTTPHandler(matchUC).RegisterRoutes(e, matchHandler.RouteMiddleware{
		RateLimit: rateLimit(100, 15*time.Minute),
		Auth:      authMW,
	})

	adminHandler.NewHTTPHandler(limiter, appLogger).RegisterRoutes(e, adminHandler.RouteMiddleware{
		Auth:         authMW,
		RequireAdmin: middleware.RequireRoles(models.RoleAdmin),
	})

	srv := server.NewGracefulServer(e, appLogger, cfg.Server.Port,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	srv.RegisterCleanup(func(ctx context.Context) error {
		locationUC.Stop()
		limiter.Stop()
		natsClient.Close()
		if err := redisClient.Close(); err != nil {
			return err
		}
		return postgresClient.Close()
	})

	if err := srv.Start(); err != nil {
		appLogger.WithError(err).Fatal("Server exited with error")
	}
}

// newRouteProvider builds the directions client. Without an API key the
// matcher runs on straight-line estimates only.
func newRouteProvider(cfg *models.Config, appLogger *logger.AppLogger) match.RouteProvider {
	if cfg.Routing.APIKey == "" {
		appLogger.Warn("No routing API key configured, routes use straight-line estimates")
		return unavailableRouteProvider{}
	}

	provider, err := matchGateway.NewGoogleRouteProvider(cfg.Routing.APIKey, appLogger)
	if err != nil {
		appLogger.WithError(err).Warn("Failed to create routing client, routes use straight-line estimates")
		return unavailableRouteProvider{}
	}
	return provider
}

type unavailableRouteProvider struct{}

func (unavailableRouteProvider) FetchRoute(ctx context.Context, start, end models.Location) (*models.Route, error) {
	return nil, match.ErrRouteProviderUnavailable
}
