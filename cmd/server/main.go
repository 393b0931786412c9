package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kpireview/internal/cache"
	"kpireview/internal/database"
	apperrors "kpireview/internal/errors"
	"kpireview/internal/middleware"
	"kpireview/internal/monitoring"
	"kpireview/internal/ratelimit"
	"kpireview/internal/rubric"
	"kpireview/internal/scoring"
	"kpireview/internal/security"
	"kpireview/internal/types"

	_ "kpireview/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	jwtSecret := getEnvOrDefault("JWT_SECRET", "your-super-secret-jwt-key-change-in-production")
	port := getEnvOrDefault("PORT", "8080")
	rubricFile := os.Getenv("RUBRIC_FILE")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB, _ := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	retentionDays, _ := strconv.Atoi(getEnvOrDefault("RETENTION_DAYS", "365"))

	// Load the evaluation rubric. An empty RUBRIC_FILE uses the built-in
	// Vietnamese KPI rubric; a bad file is fatal before any request arrives.
	rub, err := rubric.Load(rubricFile)
	if err != nil {
		appErr := apperrors.NewConfigurationError("failed to load rubric", err)
		slog.Error("Rubric load failed", "error", appErr.Error())
		os.Exit(1)
	}
	slog.Info("Rubric loaded", "categories", len(rub), "items", rub.ItemCount(), "total_max", rub.TotalMax())

	// Initialize database and auth service
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer apperrors.SafeClose(db, "database")

	repo := database.NewRepository(db)
	authService := database.NewAuthService(repo, jwtSecret)

	// Schedule evaluation retention cleanup (runs daily)
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			purged, err := repo.PurgeOldEvaluations(time.Duration(retentionDays) * 24 * time.Hour)
			if err != nil {
				slog.Error("Failed to purge old evaluations", "error", err)
				continue
			}
			if purged > 0 {
				slog.Info("Purged old evaluations", "count", purged, "retention_days", retentionDays)
			}
		}
	}()

	// Initialize monitoring system
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	// Rate limiting: Redis when configured, in-memory fallback otherwise
	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, redisDB)
	if err != nil {
		slog.Warn("Redis unavailable at startup", "error", err)
	}
	defer apperrors.SafeClose(redisClient, "redis")

	securityConfig := security.DefaultSecurityConfig()
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)

	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin:    securityConfig.MaxRequestsPerMin,
		LoginLimitPerMin: securityConfig.MaxLoginPerMin,
		BurstMultiplier:  2,
	}, appMetrics)

	r := gin.New()

	// Monitoring first, to capture all requests
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	// Error handling middleware
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	// Security middleware
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.CSPMiddleware())
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = securityConfig.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Global per-IP rate limit
	r.Use(limiter.IPRateLimitMiddleware())

	// Response cache for the stateless score endpoint (15 minutes TTL)
	appCache := cache.NewCache(15 * time.Minute)
	r.Use(appCache.Middleware(appMetrics))

	r.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"rubric": gin.H{
				"categories": len(rub),
				"items":      rub.ItemCount(),
				"total_max":  rub.TotalMax(),
			},
			"database": db.GetPoolStats(),
			"redis":    redisClient.IsEnabled(),
		}

		if err := db.Ping(); err != nil {
			health["status"] = "degraded"
			health["database_error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}

		c.JSON(http.StatusOK, health)
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"app":        appMetrics.GetStats(),
			"cache":      appCache.Stats(),
			"rate_limit": limiter.GetStats(),
			"database":   db.GetPoolStats(),
			"timestamp":  time.Now().Format(time.RFC3339),
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if os.Getenv("ENABLE_PPROF") == "true" {
		r.GET("/debug/pprof/*filepath", gin.WrapF(pprof.Index))
		r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	}

	api := r.Group("/api/v1")

	// Auth endpoints, behind the tighter login budget
	auth := api.Group("/auth")
	auth.Use(limiter.LoginRateLimitMiddleware())

	auth.POST("/register", func(c *gin.Context) {
		var req types.RegisterRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("invalid registration payload", err.Error())
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		user, err := authService.Register(req.Email, req.Password, securityMiddleware.SanitizeInput(req.FullName))
		if err != nil {
			if errors.Is(err, database.ErrEmailTaken) {
				appErr := apperrors.NewConflictError(database.MsgEmailTaken)
				apperrors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}
			appErr := apperrors.ToAppError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		token, err := authService.GenerateSessionToken(user.ID)
		if err != nil {
			appErr := apperrors.NewInternalError("failed to create session", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": database.MsgRegisterSuccess,
			"token":   token,
			"user":    user,
		})
	})

	auth.POST("/login", func(c *gin.Context) {
		var req types.LoginRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("invalid login payload", err.Error())
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		user, err := authService.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, database.ErrBadCredentials) {
				appErr := apperrors.NewUnauthorizedError(database.MsgBadCredentials)
				apperrors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}
			appErr := apperrors.ToAppError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		token, err := authService.GenerateSessionToken(user.ID)
		if err != nil {
			appErr := apperrors.NewInternalError("failed to create session", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": database.MsgLoginSuccess,
			"token":   token,
			"user":    user,
		})
	})

	auth.GET("/me", middleware.RequireAuth(authService), func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		user, err := authService.GetUser(userID)
		if err != nil {
			appErr := apperrors.NewNotFoundError("user")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, user)
	})

	// Rubric endpoint: the full structure the entry form renders from
	api.GET("/rubric", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"rubric":   rub,
			"totalMax": rub.TotalMax(),
			"levels":   rubric.Levels(),
		})
	})

	// Re-run structural validation of the active rubric on demand
	api.GET("/rubric/validate", func(c *gin.Context) {
		violations := rubric.Validate(rub)
		if len(violations) > 0 {
			appErr := apperrors.NewRubricValidationError(violations)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":      true,
			"violations": []string{},
		})
	})

	// Stateless scoring: same ratings in, same result out
	api.POST("/evaluations/score", func(c *gin.Context) {
		var req types.ScoreRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("invalid score payload", err.Error())
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		start := time.Now()
		result, err := scoring.ScoreTotal(rub, req.Ratings)
		if err != nil {
			appErr := apperrors.NewLookupError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementScoringRun()
		appLogger.ScoringLogger(len(req.Ratings), result.TotalPoints, result.Percent,
			result.Ranking, result.PenaltyApplied, time.Since(start))

		c.JSON(http.StatusOK, result)
	})

	// Text report rendering, with per-item criterion details
	api.POST("/evaluations/report", securityMiddleware.ValidateReportRequest, func(c *gin.Context) {
		value, _ := c.Get("report_request")
		req := value.(*types.ReportRequest)

		result, err := scoring.ScoreTotal(rub, req.Ratings)
		if err != nil {
			appErr := apperrors.NewLookupError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		details, err := scoring.ReportDetails(rub, req.Ratings)
		if err != nil {
			appErr := apperrors.NewLookupError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementReportRun()

		c.JSON(http.StatusOK, gin.H{
			"employee": req.Employee,
			"period":   req.Period,
			"result":   result,
			"details":  details,
			"report":   scoring.FormatReport(result),
		})
	})

	// Saved evaluations require a session
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))

	authed.POST("/evaluations", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var req types.SaveEvaluationRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("invalid evaluation payload", err.Error())
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		result, err := scoring.ScoreTotal(rub, req.Ratings)
		if err != nil {
			appErr := apperrors.NewLookupError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		ratingsJSON, err := json.Marshal(req.Ratings)
		if err != nil {
			appErr := apperrors.NewInternalError("failed to encode ratings", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		resultJSON, err := json.Marshal(result)
		if err != nil {
			appErr := apperrors.NewInternalError("failed to encode result", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		eval := database.NewEvaluation(
			userID,
			securityMiddleware.SanitizeInput(req.Employee.Name),
			req.Employee.ID,
			securityMiddleware.SanitizeInput(req.Employee.Position),
			securityMiddleware.SanitizeInput(req.Employee.Department),
			req.Employee.ReportDate,
			req.Period,
			string(ratingsJSON),
			string(resultJSON),
		)

		if err := repo.SaveEvaluation(eval); err != nil {
			appErr := apperrors.NewInternalError("failed to save evaluation", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":     eval.ID,
			"result": result,
		})
	})

	authed.GET("/evaluations", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		evals, err := repo.ListEvaluations(userID, limit)
		if err != nil {
			appErr := apperrors.NewInternalError("failed to list evaluations", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		items := make([]gin.H, 0, len(evals))
		for _, e := range evals {
			items = append(items, gin.H{
				"id":           e.ID,
				"employeeName": e.EmployeeName,
				"employeeId":   e.EmployeeID,
				"period":       e.Period,
				"reportDate":   e.ReportDate,
				"result":       json.RawMessage(e.ResultJSON),
				"createdAt":    e.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"evaluations": items,
			"count":       len(items),
		})
	})

	authed.GET("/evaluations/:id", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		eval, err := repo.GetEvaluation(c.Param("id"), userID)
		if err != nil {
			appErr := apperrors.NewNotFoundError("evaluation")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id": eval.ID,
			"employee": gin.H{
				"name":       eval.EmployeeName,
				"id":         eval.EmployeeID,
				"position":   eval.Position,
				"department": eval.Department,
				"reportDate": eval.ReportDate,
			},
			"period":    eval.Period,
			"ratings":   json.RawMessage(eval.RatingsJSON),
			"result":    json.RawMessage(eval.ResultJSON),
			"createdAt": eval.CreatedAt,
		})
	})

	authed.DELETE("/evaluations/:id", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		if err := repo.DeleteEvaluation(c.Param("id"), userID); err != nil {
			appErr := apperrors.NewNotFoundError("evaluation")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "evaluation deleted"})
	})

	// Rate limit introspection
	api.GET("/ratelimit/status", limiter.HandleRateLimitStatus())

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(authService))
	admin.GET("/ratelimits", limiter.HandleAdminRateLimits())
	admin.POST("/ratelimits/invalidate/:ip", limiter.HandleAdminInvalidateIP())
	admin.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})
	admin.POST("/cache/clear", func(c *gin.Context) {
		appCache.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// Helper function for environment variables with defaults
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
