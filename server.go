package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/controllers"
	"github.com/shoplite/retail_backend/devicesync"
	"github.com/shoplite/retail_backend/middlewares"
	"github.com/shoplite/retail_backend/models"
	"github.com/shoplite/retail_backend/utils"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

// RateLimiter throttles by client IP using a Redis counter per window.
type RateLimiter struct {
	limit  int64
	window time.Duration
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func registerRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/users/login", controllers.LoginUser())

	auth := api.Group("", middlewares.AuthMiddleware())

	auth.GET("/users/validate", controllers.ValidateToken())
	auth.GET("/users", controllers.GetUsers())
	auth.GET("/users/:id", controllers.GetUser())
	auth.POST("/users", controllers.CreateUser())
	auth.PUT("/users/:id", controllers.UpdateUser())
	auth.DELETE("/users/:id", controllers.DeleteUser())

	auth.POST("/business", controllers.CreateBusiness())
	auth.GET("/business/:id", controllers.GetBusiness())
	auth.PUT("/business/:id", controllers.UpdateBusiness())
	auth.DELETE("/business/:id", controllers.DeleteBusiness())

	auth.GET("/shops", controllers.GetShops())
	auth.GET("/shops/:id", controllers.GetShop())
	auth.POST("/shops", controllers.CreateShop())
	auth.PUT("/shops/:id", controllers.UpdateShop())
	auth.DELETE("/shops/:id", controllers.DeleteShop())

	auth.GET("/inventory", controllers.GetInventory())
	auth.GET("/inventory/:id", controllers.GetInventoryItem())
	auth.POST("/inventory", controllers.CreateInventoryItem())
	auth.PUT("/inventory/:id", controllers.UpdateInventoryItem())
	auth.DELETE("/inventory/:id", controllers.DeleteInventoryItem())

	auth.GET("/expenses", controllers.GetExpenses())
	auth.GET("/expenses/:id", controllers.GetExpense())
	auth.POST("/expenses", controllers.CreateExpense())
	auth.PUT("/expenses/:id", controllers.UpdateExpense())
	auth.DELETE("/expenses/:id", controllers.DeleteExpense())

	auth.GET("/sales", controllers.GetSales())
	auth.GET("/sales/:id", controllers.GetSale())
	auth.POST("/sales", controllers.CreateSale())
	auth.PUT("/sales/:id", controllers.UpdateSale())
	auth.DELETE("/sales/:id", controllers.DeleteSale())

	auth.GET("/sale_items", controllers.GetSaleItems())
	auth.POST("/sale_items", controllers.CreateSaleItem())
	auth.DELETE("/sale_items/:id", controllers.DeleteSaleItem())

	auth.POST("/returns", controllers.CreateReturn())
	auth.GET("/returns", controllers.GetReturns())
	auth.GET("/returns/:id", controllers.GetReturn())
	auth.GET("/returns/sale/:saleId", controllers.GetReturnsBySale())
	auth.PUT("/returns/:id/approve", controllers.ApproveReturn())
	auth.PUT("/returns/:id/reject", controllers.RejectReturn())
	auth.PUT("/returns/:id/complete", controllers.CompleteReturn())
	auth.DELETE("/returns/:id", controllers.DeleteReturn())

	auth.GET("/receivables", controllers.GetReceivables())
	auth.GET("/receivables/:id", controllers.GetReceivable())
	auth.POST("/receivables", controllers.CreateReceivable())
	auth.PUT("/receivables/:id", controllers.UpdateReceivable())
	auth.DELETE("/receivables/:id", controllers.DeleteReceivable())
	auth.POST("/receivables/:id/payments", controllers.AddReceivablePayment())
	auth.GET("/receivables/:id/payments", controllers.GetReceivablePayments())

	auth.GET("/payables", controllers.GetPayables())
	auth.GET("/payables/:id", controllers.GetPayable())
	auth.POST("/payables", controllers.CreatePayable())
	auth.PUT("/payables/:id", controllers.UpdatePayable())
	auth.DELETE("/payables/:id", controllers.DeletePayable())
	auth.POST("/payables/:id/payments", controllers.AddPayablePayment())
	auth.GET("/payables/:id/payments", controllers.GetPayablePayments())

	auth.GET("/loans", controllers.GetLoans())
	auth.GET("/loans/:id", controllers.GetLoan())
	auth.POST("/loans", controllers.CreateLoan())
	auth.PUT("/loans/:id", controllers.UpdateLoan())
	auth.DELETE("/loans/:id", controllers.DeleteLoan())
	auth.POST("/loans/:id/payments", controllers.AddLoanPayment())
	auth.GET("/loans/:id/payments", controllers.GetLoanPayments())

	auth.POST("/sync", devicesync.SyncHandler())

	auth.POST("/ai/analyze", controllers.AnalyzeReport())
	auth.GET("/reports/sales/export", controllers.ExportSalesReport())
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until DB is ready we return 503 for app endpoints.
	r := gin.New()

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow startup probes.
		if c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}
		// Gate app endpoints on dependency readiness. Redis stays optional.
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated). In non-production, allow all.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Optional rate limiting. Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		limit := int64(600)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		windowSec := int64(60)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				windowSec = n
			}
		}
		rateLimiter := NewRateLimiter(limit, time.Duration(windowSec)*time.Second)
		r.Use(rateLimiter.RateLimitMiddleware)
	}

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	registerRoutes(r)
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on port ", port)

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// customErrorLogger logs only requests that recorded errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func NewRateLimiter(limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) RateLimitMiddleware(c *gin.Context) {
	key := "RateLimit:" + c.ClientIP()

	count, err := config.GetRedisCounter(c.Request.Context(), key)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	// first hit of a window starts its expiry clock
	if count == 1 {
		if rdb := config.GetRedisDB(); rdb != nil {
			if err := rdb.Expire(c.Request.Context(), key, rl.window).Err(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, err)
				return
			}
		}
	}

	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}

	c.Next()
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
