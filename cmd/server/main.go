package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrafullShinde28/CAMPUSAI/internal/config"
	"github.com/PrafullShinde28/CAMPUSAI/internal/database"
	"github.com/PrafullShinde28/CAMPUSAI/internal/handlers"
	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
	"github.com/PrafullShinde28/CAMPUSAI/internal/router"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
	"github.com/PrafullShinde28/CAMPUSAI/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Logger initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("🚀 Starting CampusAI backend...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("✗ Invalid configuration", "error", err)
	}
	log.Info("✓ Environment variables loaded", "env", cfg.Env, "auth_provider", cfg.AuthProvider)

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("✗ PostgreSQL connection failed", "error", err)
	}
	defer pool.Close()
	log.Info("✓ PostgreSQL connected")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("✗ Database migration failed", "error", err)
	}
	log.Info("✓ Database migrations applied")

	// ──── Step 4: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatal("✗ Redis connection failed", "error", err)
	}
	defer redisClients.Close()
	log.Info("✓ Redis connected")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	studyPlanRepo := repository.NewStudyPlanRepo(pool)
	quizRepo := repository.NewQuizRepo(pool)
	studyGroupRepo := repository.NewStudyGroupRepo(pool)
	ideaRepo := repository.NewIdeaRepo(pool)
	peerMatchRepo := repository.NewPeerMatchRepo(pool)
	notificationRepo := repository.NewNotificationRepo(pool)

	// ──── Step 5: Initialize Identity Verifier ────
	var verifier services.TokenVerifier
	switch cfg.AuthProvider {
	case config.AuthProviderLocal:
		verifier = services.NewLocalVerifier(cfg.AuthLocalSecret)
		log.Warn("✓ Local token verifier enabled (development only)")
	default:
		fv, err := services.NewFirebaseVerifier(context.Background(), cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			log.Fatal("✗ Firebase initialization failed", "error", err)
		}
		verifier = fv
		log.Info("✓ Firebase token verifier initialized", "project", cfg.FirebaseProjectID)
	}
	authenticator := middleware.NewAuthenticator(verifier, userRepo, log)

	// ──── Step 6: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(context.Background(), services.GeminiConfig{
		APIKey:          cfg.GeminiAPIKey,
		StructuredModel: cfg.GeminiStructuredModel,
		TextModel:       cfg.GeminiTextModel,
		ConcurrentReqs:  cfg.GeminiConcurrentReqs,
		Timeout:         cfg.GeminiTimeout,
	})
	if err != nil {
		log.Fatal("✗ Gemini client initialization failed", "error", err)
	}
	defer geminiService.Close()
	log.Info("✓ Gemini client initialized", "structured_model", cfg.GeminiStructuredModel, "text_model", cfg.GeminiTextModel)

	// ──── Initialize Services ────
	classroomGateway := services.NewClassroomGateway(cfg.ClassroomConcurrency)
	notificationService := services.NewNotificationService(
		notificationRepo,
		services.NewRedisPublisher(redisClients.Publisher),
		log,
	)

	// ──── Initialize Handlers ────
	h := router.Handlers{
		Auth:         handlers.NewAuthHandler(authenticator, log),
		User:         handlers.NewUserHandler(userRepo, log),
		StudyPlan:    handlers.NewStudyPlanHandler(studyPlanRepo, geminiService, log),
		Quiz:         handlers.NewQuizHandler(quizRepo, geminiService, notificationService, log),
		StudyGroup:   handlers.NewStudyGroupHandler(studyGroupRepo, notificationService, log),
		Idea:         handlers.NewIdeaHandler(ideaRepo, notificationService, log),
		Learning:     handlers.NewLearningHandler(geminiService, quizRepo, studyPlanRepo, log),
		Classroom:    handlers.NewClassroomHandler(classroomGateway, log),
		Notification: handlers.NewNotificationHandler(notificationRepo, log),
		PeerMatch:    handlers.NewPeerMatchHandler(peerMatchRepo, log),
	}

	// ──── Step 7: Start Reminder Scheduler ────
	reminders := services.NewReminderScheduler(studyPlanRepo, notificationService, log, cfg.ReminderInterval, cfg.ReminderLead)
	if err := reminders.Start(); err != nil {
		log.Fatal("✗ Reminder scheduler failed to start", "error", err)
	}
	log.Info("✓ Reminder scheduler started", "interval", cfg.ReminderInterval, "lead", cfg.ReminderLead)

	// ──── Step 8: Start WebSocket Hub ────
	wsHub := websocket.NewHub(authenticator, websocket.NewRedisSubscriber(redisClients.Subscriber), cfg.FrontendURL, log)
	log.Info("✓ WebSocket hub started")

	// ──── Step 9: Start HTTP Server ────
	verifyLimiter := middleware.NewRateLimiter(10, time.Minute)
	r := router.New(authenticator, h, wsHub, log, router.Options{
		FrontendURL:   cfg.FrontendURL,
		StaticDir:     cfg.StaticDir,
		VerifyLimiter: verifyLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")
		reminders.Stop()
		verifyLimiter.Stop()
		wsHub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("HTTP shutdown failed", "error", err)
		}
	}()

	log.Info(fmt.Sprintf("✓ CampusAI backend ready on http://localhost:%s", cfg.Port))
	log.Info(fmt.Sprintf("  API: http://localhost:%s/api", cfg.Port))
	log.Info(fmt.Sprintf("  WS:  ws://localhost:%s/api/ws", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("Server error", "error", err)
	}
	<-done
}
