package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/fixflow/fixflow/config"
	"github.com/fixflow/fixflow/internal/api/v1/handlers"
	v1 "github.com/fixflow/fixflow/internal/api/v1/routes"
	"github.com/fixflow/fixflow/internal/db"
	"github.com/fixflow/fixflow/internal/db/repos"
	"github.com/fixflow/fixflow/internal/events"
	"github.com/fixflow/fixflow/internal/logger"
	"github.com/fixflow/fixflow/internal/metrics"
	"github.com/fixflow/fixflow/internal/notify"
	"github.com/fixflow/fixflow/internal/services"
)

func main() {
	config.Load()
	logger.InitializeAndConfigure()

	opts := db.DefaultOptions()
	opts.Host = config.GetEnv("DB_HOST", opts.Host)
	opts.Port = config.GetEnvInt("DB_PORT", opts.Port)
	opts.User = config.GetEnv("DB_USER", opts.User)
	opts.Password = config.GetEnv("DB_PASSWORD", opts.Password)
	opts.DBName = config.GetEnv("DB_NAME", opts.DBName)
	opts.SSLEnabled = config.GetEnvBool("DB_SSL", false)

	gdb, err := db.Connect(opts)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	jobRepo := repos.NewJobRepository(gdb)
	activityRepo := repos.NewActivityLogRepository(gdb)
	eventRepo := repos.NewStatusChangeEventRepository(gdb)
	customerRepo := repos.NewCustomerRepository(gdb)
	userRepo := repos.NewUserRepository(gdb)
	callbackRepo := repos.NewCallbackRepository(gdb)

	bus := events.NewBus()
	notifier := notify.NewLogNotifier()
	services.RegisterNotificationHandlers(bus, notifier, jobRepo, customerRepo)
	bus.Start(context.Background())

	jobSvc := services.NewJobService(jobRepo, activityRepo, eventRepo, customerRepo, bus)
	customerSvc := services.NewCustomerService(customerRepo)
	analyticsSvc := services.NewAnalyticsService(jobRepo, callbackRepo, customerRepo, userRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	v1.Register(app, v1.Handlers{
		Job:       handlers.NewJobHandler(jobSvc),
		Customer:  handlers.NewCustomerHandler(customerSvc),
		Analytics: handlers.NewAnalyticsHandler(analyticsSvc),
	})

	addr := ":" + config.GetEnv("PORT", "8080")
	logger.Infof("Listening on %s", addr)
	logger.Fatal(app.Listen(addr))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
