package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Mithunit18/freelance/internal/auth"
	"github.com/Mithunit18/freelance/internal/autorelease"
	"github.com/Mithunit18/freelance/internal/bank"
	"github.com/Mithunit18/freelance/internal/booking"
	"github.com/Mithunit18/freelance/internal/config"
	"github.com/Mithunit18/freelance/internal/gateway"
	"github.com/Mithunit18/freelance/internal/ledger"
	"github.com/Mithunit18/freelance/internal/payment"
	"github.com/Mithunit18/freelance/internal/payout"
	"github.com/Mithunit18/freelance/internal/request"
	"github.com/Mithunit18/freelance/internal/user"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config

	// Background components the caller runs in their own goroutines.
	Worker  *payout.Worker
	Scanner *autorelease.Scanner
}

func New(db *sqlx.DB, cfg *config.Config, gw gateway.Client, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userRepo := user.NewRepository(db)
	requestRepo := request.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)
	paymentRepo := payment.NewRepository(db, ledgerRepo)
	bookingRepo := booking.NewRepository(db)
	bankRepo := bank.NewRepository(db)
	payoutRepo := payout.NewRepository(db)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	bookingService := booking.NewService(bookingRepo, requestRepo)
	bankService := bank.NewService(bankRepo)
	payoutService := payout.NewService(payoutRepo, paymentRepo, bankRepo, ledgerRepo, gw, cfg.PayoutMode)
	worker := payout.NewWorker(redisClient, payoutService)
	paymentService := payment.NewService(paymentRepo, requestRepo, bookingService, worker, gw, cfg.PlatformFeeBps, cfg.Currency)
	scanner := autorelease.NewScanner(paymentRepo, paymentService, cfg.AutoReleaseGraceDays)

	userHandler := user.NewHandler(userService)
	requestHandler := request.NewHandler(requestRepo)
	paymentHandler := payment.NewHandler(paymentService)
	ledgerHandler := ledger.NewHandler(ledgerRepo)
	bookingHandler := booking.NewHandler(bookingService)
	bankHandler := bank.NewHandler(bankService)
	payoutHandler := payout.NewHandler(payoutService, paymentRepo)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	adminOnly := auth.RequireRole(auth.RoleAdmin)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.POST("/requests", requestHandler.Create)
		protected.GET("/requests", requestHandler.ListMine)
		protected.GET("/requests/:requestID", requestHandler.Get)
		protected.POST("/requests/:requestID/respond", requestHandler.Respond)
		protected.GET("/requests/:requestID/booking", bookingHandler.GetByRequest)

		escrow := protected.Group("/escrow")
		{
			escrow.POST("/orders", auth.RequireRole(auth.RoleClient), paymentHandler.CreateOrder)
			escrow.POST("/verify", paymentHandler.Verify)
			escrow.POST("/payments/:paymentID/confirm", auth.RequireRole(auth.RoleClient), paymentHandler.Confirm)
			escrow.POST("/payments/:paymentID/refund", adminOnly, paymentHandler.Refund)
			escrow.GET("/payments/:paymentID", paymentHandler.Get)
			escrow.GET("/requests/:requestID/status", paymentHandler.GetByRequest)
			escrow.POST("/check-status/:paymentID", paymentHandler.CheckStatus)
		}

		protected.GET("/balance", auth.RequireRole(auth.RoleCreator), ledgerHandler.GetBalance)
		protected.GET("/balance/transactions", auth.RequireRole(auth.RoleCreator), ledgerHandler.ListTransactions)

		protected.POST("/creator/bank", auth.RequireRole(auth.RoleCreator), bankHandler.Submit)
		protected.GET("/creator/bank", auth.RequireRole(auth.RoleCreator), bankHandler.Get)

		protected.GET("/bookings", bookingHandler.ListMine)
		protected.GET("/bookings/:bookingID", bookingHandler.Get)

		protected.GET("/payouts", auth.RequireRole(auth.RoleCreator), payoutHandler.ListMine)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminOnly)
	{
		admin.POST("/escrow/auto-release", AutoReleaseScan(scanner))
		admin.POST("/payouts/:paymentID/dispatch", payoutHandler.Redispatch)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:  router,
		db:      db,
		config:  cfg,
		Worker:  worker,
		Scanner: scanner,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
