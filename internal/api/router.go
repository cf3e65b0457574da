package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/teamtrack/teamtrack-api/docs"
	"github.com/teamtrack/teamtrack-api/internal/api/handler"
	"github.com/teamtrack/teamtrack-api/internal/api/middleware"
	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
	"github.com/teamtrack/teamtrack-api/internal/core/service"
	"github.com/teamtrack/teamtrack-api/internal/infrastructure/config"
	mongodb "github.com/teamtrack/teamtrack-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teamtrack/teamtrack-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the dashboard then skips its cache and the readiness probe
// skips the Redis check.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("teamtrack"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	dashboardRepo := mongodb.NewDashboardRepository(db)

	var statsCache ports.StatsCache
	if rdb != nil {
		statsCache = redisdb.NewStatsCache(rdb)
	}

	identityService := service.NewIdentityService(userRepo, employeeRepo, log)
	authService := service.NewAuthService(userRepo, employeeRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	taskService := service.NewTaskService(taskRepo, employeeRepo, identityService, log)
	employeeService := service.NewEmployeeService(employeeRepo, taskRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes and operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.PUT("/profile", authHandler.UpdateProfile, authRequired)
	auth.PUT("/change-password", authHandler.ChangePassword, authRequired)

	// --- Task routes ---
	tasks := api.Group("/tasks", authRequired)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
	tasks.POST("", taskHandler.Create, adminOnly)
	tasks.PUT("/:id", taskHandler.Update, adminOnly)
	tasks.DELETE("/:id", taskHandler.Delete, adminOnly)

	// --- Employee routes ---
	employees := api.Group("/employees", authRequired)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.POST("", employeeHandler.Create, adminOnly)
	employees.PUT("/:id", employeeHandler.Update, adminOnly)
	employees.DELETE("/:id", employeeHandler.Delete, adminOnly)

	// --- Dashboard routes ---
	dashboard := api.Group("/dashboard", authRequired)
	dashboard.GET("/stats", dashboardHandler.Stats)
	dashboard.GET("/employee-workload", dashboardHandler.EmployeeWorkload)

	return e
}
