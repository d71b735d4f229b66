package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/internal/numbering"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/internal/services"
	"sdo-ticketing/pkg/config"
	"sdo-ticketing/pkg/filestorage"
	"sdo-ticketing/pkg/middleware"
	"sdo-ticketing/pkg/ratelimit"
	"sdo-ticketing/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route group under /api.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Uploads.BasePath)
	if err != nil {
		logger.Fatal("could not create file storage", zap.Error(err))
	}

	limiter := newLoginLimiter(redisClient, cfg, logger)
	numbers := numbering.NewGenerator()
	txManager := repositories.NewTxManager(dbConn)

	userRepo := repositories.NewUserRepository(dbConn)
	ticketRepo := repositories.NewTicketRepository(dbConn, txManager)
	batchRepo := repositories.NewBatchRepository(dbConn, txManager)
	issueRepo := repositories.NewIssueRepository(dbConn)
	deviceTypeRepo := repositories.NewDeviceTypeRepository(dbConn)
	requestRepo := repositories.NewAccountRequestRepository(dbConn)

	authService := services.NewAuthService(userRepo, jwtSvc, limiter, cfg.Auth, logger)
	ticketService := services.NewTicketService(ticketRepo, batchRepo, numbers, logger)
	batchService := services.NewBatchService(batchRepo, logger)
	issueService := services.NewIssueService(issueRepo, logger)
	deviceTypeService := services.NewDeviceTypeService(deviceTypeRepo, logger)
	requestService := services.NewAccountRequestService(requestRepo, numbers, logger)
	userService := services.NewUserService(userRepo, cfg.Auth, logger)
	reportService := services.NewReportService(ticketRepo, logger)

	authCtrl := controllers.NewAuthController(authService, logger)
	ticketCtrl := controllers.NewTicketController(ticketService, fileStorage, cfg.Uploads, logger)
	batchCtrl := controllers.NewBatchController(batchService, logger)
	issueCtrl := controllers.NewIssueController(issueService, logger)
	deviceTypeCtrl := controllers.NewDeviceTypeController(deviceTypeService, logger)
	requestCtrl := controllers.NewAccountRequestController(requestService, fileStorage, cfg.Uploads, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl)
	runTicketRouter(secureGroup, ticketCtrl, authMW)
	runBatchRouter(secureGroup, batchCtrl, authMW)
	runIssueRouter(secureGroup, issueCtrl, authMW)
	runDeviceTypeRouter(secureGroup, deviceTypeCtrl, authMW)
	runAccountRequestRouter(api, secureGroup, requestCtrl, authMW)
	runUserRouter(api, secureGroup, userCtrl, authMW)
	runReportRouter(secureGroup, reportCtrl, authMW)
}

// newLoginLimiter picks the throttle backend: in-memory for a single
// instance, Redis when the deployment scales horizontally.
func newLoginLimiter(redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) ratelimit.LoginLimiter {
	if cfg.Auth.LimiterBackend == "redis" && redisClient != nil {
		logger.Info("login limiter: redis backend")
		return ratelimit.NewRedisLimiter(redisClient, cfg.Auth.MaxLoginAttempts, cfg.Auth.AttemptWindow, logger)
	}
	logger.Info("login limiter: in-memory backend")
	return ratelimit.NewMemoryLimiter(cfg.Auth.MaxLoginAttempts, cfg.Auth.AttemptWindow)
}
