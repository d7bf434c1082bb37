package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhub/internal/clients"
	clubHTTP "clubhub/internal/controller/http"
	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/internal/usecase"
	"clubhub/pkg/cache"
	"clubhub/pkg/config"
	"clubhub/pkg/database"
	"clubhub/pkg/jwt"
	"clubhub/pkg/logger"
	"clubhub/pkg/middleware"
	"clubhub/pkg/queue"
	"clubhub/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "clubhub/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (continuing without report storage)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	bookingRepo := persistent.NewBookingRepository(a.db)
	walletRepo := persistent.NewWalletRepository(a.db)
	calendarRepo := persistent.NewCalendarRepository(a.db)
	commissionRepo := persistent.NewCommissionRepository(a.db)
	professionalRepo := persistent.NewProfessionalRepository(a.db)
	settlementRepo := persistent.NewSettlementRepository(a.db)

	// Clients for the member and catalog services
	members := clients.NewMemberDirectory(a.cfg.MemberServiceURL)
	catalog := clients.NewCatalog(a.cfg.CatalogServiceURL)

	// Initialize use cases
	calendarUseCase := usecase.NewCalendarUseCase(calendarRepo, bookingRepo, a.log)
	bookingUseCase := usecase.NewBookingUseCase(
		bookingRepo,
		walletRepo,
		professionalRepo,
		calendarUseCase,
		members,
		catalog,
		a.queueClient,
		a.cfg.PlatformCommissionRate,
		a.log,
	)
	walletUseCase := usecase.NewWalletUseCase(walletRepo, a.log)
	commissionUseCase := usecase.NewCommissionUseCase(commissionRepo, a.s3Client, a.log)
	settlementUseCase := usecase.NewSettlementUseCase(settlementRepo, members, catalog, a.redisClient, a.log)

	// Initialize HTTP handlers
	bookingHandler := clubHTTP.NewBookingHandler(bookingUseCase, a.log)
	walletHandler := clubHTTP.NewWalletHandler(walletUseCase, a.log)
	calendarHandler := clubHTTP.NewCalendarHandler(calendarUseCase, a.log)
	commissionHandler := clubHTTP.NewCommissionHandler(commissionUseCase, a.log)
	settlementHandler := clubHTTP.NewSettlementHandler(settlementUseCase, a.log)

	// Consume settlement events from the payment gateway queue
	if a.queueClient != nil {
		err := a.queueClient.ConsumeSettlements(func(msg queue.SettlementMessage) error {
			return settlementUseCase.Apply(context.Background(), &entity.SettlementEvent{
				EventID:    msg.EventID,
				Kind:       entity.SettlementKind(msg.Kind),
				MemberID:   msg.MemberID,
				PackageID:  msg.PackageID,
				PaymentRef: msg.PaymentRef,
			})
		})
		if err != nil {
			a.log.Error("Failed to start settlement consumer: %v", err)
		}
	}

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.jwtService))
	if a.redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))
	}

	{
		api.POST("/bookings", bookingHandler.CreateBooking)
		api.GET("/bookings", bookingHandler.ListBookings)
		api.GET("/bookings/:id", bookingHandler.GetBooking)
		api.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)
		// Completion is operational staff territory; settlement of pending
		// direct charges is reserved for admins so members cannot confirm
		// their own unpaid bookings.
		api.POST("/bookings/:id/complete", middleware.RequireRole("admin", "professional"), bookingHandler.CompleteBooking)
		api.POST("/bookings/:id/confirm", middleware.RequireRole("admin"), bookingHandler.ConfirmBooking)

		api.GET("/wallet", walletHandler.GetWallet)
		api.GET("/wallet/transactions", walletHandler.GetTransactions)

		api.GET("/availability/zones/:id", calendarHandler.ZoneAvailability)
		api.GET("/availability/professionals/:id", calendarHandler.ProfessionalAvailability)

		api.GET("/commissions", commissionHandler.ListCommissions)

		// Payment gateway webhook; the gateway authenticates with a service token
		api.POST("/settlements", settlementHandler.ApplySettlement)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/wallets/:member_id/credit", walletHandler.AdminCredit)
			admin.GET("/wallets/:member_id/verify", walletHandler.VerifyLedger)
			admin.PATCH("/commissions/:id", commissionHandler.UpdateCommission)
			admin.POST("/commissions/export", commissionHandler.ExportCommissions)
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Booking service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down booking service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close queue connection
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Booking service exited")
	return nil
}
