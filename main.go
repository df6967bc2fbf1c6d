// File: bookline/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookline/config"
	"bookline/cron"
	"bookline/database"
	appointmentRepo "bookline/database/repository/appointment"
	businessRepo "bookline/database/repository/business"
	channelRepo "bookline/database/repository/channel"
	"bookline/handlers"
	"bookline/middleware"
	"bookline/routes"
	"bookline/services/agent"
	"bookline/services/calendar"
	"bookline/services/channel"
	"bookline/services/scheduling"
	"bookline/utils"

	tgbot "github.com/go-telegram/bot"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bizRepo := businessRepo.NewMongoBusinessRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	bindingRepo := channelRepo.NewMongoBindingRepo()

	// calendar sync: outbox, adapter and background worker.
	outbox := calendar.NewOutbox()
	defer outbox.Close()
	syncService := &calendar.DefaultSyncService{
		Tokens: calendar.NewBrokerTokenProvider(),
	}
	cron.InitSyncWorker(bizRepo, apptRepo, syncService)

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		BusinessRepo: bizRepo,
		ApptRepo:     apptRepo,
		Sync:         outbox,
	}

	bookingAgent := agent.NewDefaultBookingAgent(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		schedulingService,
	)

	historyStore := channel.NewRedisHistoryStore(
		utils.GetConversationCacheClient(),
		time.Duration(config.AppConfig.ConversationTTLMin)*time.Minute,
	)

	var sender channel.MessageSender = channel.NoopSender{}
	if config.AppConfig.TelegramBotToken != "" {
		tb, err := tgbot.New(config.AppConfig.TelegramBotToken)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize telegram bot: %v", err)
		}
		sender = &channel.TelegramSender{Bot: tb}
	} else {
		logger.Sugar().Warn("main: no telegram bot token configured, outbound messages are dropped")
	}

	telegramAdapter := &channel.TelegramAdapter{
		History:      historyStore,
		Agent:        bookingAgent,
		Bindings:     bindingRepo,
		BusinessRepo: bizRepo,
		Sender:       sender,
	}

	// handlers.
	businessHandler := handlers.NewBusinessHandler(bizRepo, schedulingService, bindingRepo)
	bookingHandler := handlers.NewBookingHandler(bizRepo, apptRepo, schedulingService)
	chatHandler := handlers.NewChatHandler(bizRepo, bookingAgent, historyStore)
	telegramHandler := handlers.NewTelegramWebhookHandler(telegramAdapter)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetBusinessHandler: businessHandler.GetBusinessHandler,
		GetSlotsHandler:    businessHandler.GetSlotsHandler,

		UpdateAvailabilityHandler:     businessHandler.UpdateAvailabilityHandler,
		UpdateServicesHandler:         businessHandler.UpdateServicesHandler,
		UpdateCalendarSettingsHandler: businessHandler.UpdateCalendarSettingsHandler,
		UpdateTelegramBindingHandler:  businessHandler.UpdateTelegramBindingHandler,
		ListAppointmentsHandler:       bookingHandler.ListAppointmentsHandler,
		ConfirmAppointmentHandler:     bookingHandler.ConfirmAppointmentHandler,
		CancelAppointmentHandler:      bookingHandler.CancelAppointmentHandler,

		ChatHandler:            chatHandler.HandleChatMessage,
		TelegramWebhookHandler: telegramHandler.HandleWebhook,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
