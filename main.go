package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"devnotify/config"
	"devnotify/cron"
	"devnotify/database"
	"devnotify/database/repository"
	"devnotify/handlers"
	"devnotify/middleware"
	"devnotify/routes"
	"devnotify/services/email"
	eventSvc "devnotify/services/event"
	"devnotify/services/notification"
	"devnotify/services/push"
	"devnotify/services/reminder"
	"devnotify/services/user"
	"devnotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	repos, err := repository.NewMongoSet(mongoClient.Database(cfg.DatabaseName))
	if err != nil {
		logger.Fatal("main: failed to initialize repositories", zap.Error(err))
	}

	// Redis backs the events cache and the token revocation list; both
	// degrade gracefully when it is unavailable.
	var (
		redisClient *redis.Client
		cache       utils.Cache
		revocations middleware.RevocationChecker
		revoker     user.Revoker = noopRevoker{}
	)
	if client, err := utils.NewCacheClient(cfg); err != nil {
		logger.Warn("main: Redis unavailable; caching and logout revocation disabled", zap.Error(err))
	} else {
		redisClient = client
		cache = utils.NewRedisCache(client)
		list := utils.NewRevocationList(cache)
		revocations = list
		revoker = list
	}

	tokens, err := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL())
	if err != nil {
		logger.Fatal("main: invalid JWT configuration", zap.Error(err))
	}

	// Delivery channels.
	var mailer email.Sender = email.NoopSender{Logger: logger}
	if cfg.EmailEnabled() {
		mailer = email.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName)
	} else {
		logger.Warn("main: SendGrid not configured; emails will only be logged")
	}

	hub := push.NewHub(logger)
	publishers := []push.Publisher{hub}
	if cfg.FirebaseEnabled() {
		fcmClient, err := push.NewFCMClient(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("main: FCM disabled", zap.Error(err))
		} else {
			publishers = append(publishers, push.NewFCMPublisher(fcmClient, repos.Users, logger))
		}
	}
	publisher := push.NewFanout(logger, publishers...)

	// Services.
	notificationService, err := notification.NewDefaultNotificationService(repos.Notifications, repos.Users, publisher, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize notification service", zap.Error(err))
	}
	userService := user.NewDefaultUserService(repos.Users, tokens, revoker, logger)
	reminderService := reminder.NewDefaultReminderService(repos.Reminders, repos.Users, notificationService, mailer, logger)
	reminderService.EmailTimeout = cfg.DeliveryTimeout
	eventService := eventSvc.NewDefaultEventService(repos.Events, cache, notificationService, cfg.EventsCacheTTL, logger)

	orchestrator := reminder.NewOrchestrator(
		reminder.NewScanner(repos.Reminders, cfg.ReminderLookahead),
		repos.Reminders,
		notificationService,
		mailer,
		logger,
	)
	orchestrator.Timeout = cfg.DeliveryTimeout
	orchestrator.Concurrency = cfg.DeliveryConcurrency

	worker, err := cron.NewReminderWorker(orchestrator, cfg.ReminderScanSchedule, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize reminder worker", zap.Error(err))
	}
	worker.Start(ctx)

	monitor := utils.NewHealthMonitor(mongoClient, redisClient)
	monitor.Start(ctx, 30*time.Second)

	// Handlers.
	userHandler := &handlers.UserHandler{UserService: userService}
	reminderHandler := &handlers.ReminderHandler{ReminderService: reminderService}
	notificationHandler := &handlers.NotificationHandler{NotificationService: notificationService}
	eventHandler := &handlers.EventHandler{EventService: eventService}
	socketHandler := handlers.NewSocketHandler(hub, tokens, revocations, cfg.FrontendURL)
	healthHandler := &handlers.HealthHandler{Monitor: monitor, Env: config.GetEnv(), FrontendURL: cfg.FrontendURL}

	handlerBundle := &handlers.HandlerBundle{
		Tokens:      tokens,
		Revocations: revocations,
		AdminToken:  cfg.AdminToken,
		Logger:      logger,

		HealthCheckHandler: healthHandler.HealthCheckHandler,

		// User endpoints.
		RegisterUserHandler:     userHandler.RegisterUserHandler,
		LoginUserHandler:        userHandler.LoginUserHandler,
		GetProfileHandler:       userHandler.GetProfileHandler,
		ToggleSavedEventHandler: userHandler.ToggleSavedEventHandler,
		SetFCMTokenHandler:      userHandler.SetFCMTokenHandler,
		LogoutHandler:           userHandler.LogoutHandler,

		// Reminder endpoints.
		GetRemindersHandler:   reminderHandler.GetRemindersHandler,
		SetReminderHandler:    reminderHandler.SetReminderHandler,
		DeleteReminderHandler: reminderHandler.DeleteReminderHandler,

		// Notification endpoints.
		GetNotificationsHandler:     notificationHandler.GetNotificationsHandler,
		MarkNotificationReadHandler: notificationHandler.MarkNotificationReadHandler,

		// Event endpoints.
		ListEventsHandler:  eventHandler.ListEventsHandler,
		CreateEventHandler: eventHandler.CreateEventHandler,

		ServeSocketHandler: socketHandler.ServeSocketHandler,
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		FrontendURL:       cfg.FrontendURL,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	})

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// noopRevoker is used when Redis is unavailable; logout then only discards
// the token client-side.
type noopRevoker struct{}

func (noopRevoker) Revoke(context.Context, string, time.Time) error { return nil }
