package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"basilisk-fund/internal/config"
	"basilisk-fund/internal/database"
	"basilisk-fund/internal/handlers"
	"basilisk-fund/internal/jobs"
	"basilisk-fund/internal/logger"
	"basilisk-fund/internal/metrics"
	"basilisk-fund/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New("basilisk-fund", cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize the ledger and engine services
	ledger := services.NewLedger(database.GetDB(), zlog)
	distributionService := services.NewDistributionService(zlog)
	betService := services.NewBetService(ledger, distributionService, zlog)
	reconciliationService := services.NewReconciliationService(ledger, zlog)
	memberService := services.NewMemberService(ledger, zlog)
	investmentService := services.NewInvestmentService(ledger, zlog)
	payoutService := services.NewPayoutService(ledger, zlog)

	// Initialize handlers
	betHandler := handlers.NewBetHandler(betService)
	memberHandler := handlers.NewMemberHandler(memberService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	adminHandler := handlers.NewAdminHandler(reconciliationService)

	// Optional scheduled reconciliation
	if cfg.App.ReconcileInterval > 0 {
		reconcileJob := jobs.NewReconciliationJob(reconciliationService, zlog)
		reconcileJob.Start(cfg.App.ReconcileInterval)
		zlog.Info("reconciliation job started",
			zap.Duration("interval", cfg.App.ReconcileInterval))
	}

	// Set up Gin router
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	api := router.Group("/api")
	{
		// Bet lifecycle
		api.GET("/bets", betHandler.GetBets)
		api.POST("/bets", betHandler.CreateBet)
		api.PUT("/bets/:id", betHandler.UpdateBet)
		api.DELETE("/bets/:id", betHandler.DeleteBet)

		// Members
		api.GET("/members", memberHandler.GetMembers)
		api.POST("/members", memberHandler.CreateMember)
		api.GET("/members/:id", memberHandler.GetMember)
		api.PUT("/members/:id", memberHandler.UpdateMember)
		api.DELETE("/members/:id", memberHandler.DeleteMember)

		// Investments and payouts
		api.GET("/investments", investmentHandler.GetInvestments)
		api.POST("/investments", investmentHandler.CreateInvestment)
		api.GET("/payouts", payoutHandler.GetPayouts)
		api.POST("/payouts", payoutHandler.CreatePayout)

		// Administrative recalculation
		admin := api.Group("/admin")
		{
			admin.POST("/recalculate", adminHandler.Recalculate)
			admin.DELETE("/recalculate", adminHandler.ResetEarnings)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
