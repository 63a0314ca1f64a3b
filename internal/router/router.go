package router

import (
	"net/http"
	"time"

	"expenza/internal/config"
	"expenza/internal/handler"
	"expenza/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine: middleware, probes and the API
// route groups.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Metrics())

	corsCfg := cors.Config{
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Content-Type", "Authorization"},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	// probes
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend server is running")
	})
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/auth/me", handler.GetMe)

	expenseHandler := handler.NewExpenseHandler(db)
	protected.GET("/expenses", expenseHandler.ListExpenses)
	protected.POST("/expenses", expenseHandler.AddExpense)
	protected.DELETE("/expenses/:id", expenseHandler.DeleteExpense)
	protected.GET("/expenses/summary", expenseHandler.GetMonthlySummary)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/expenses/export/csv", exportHandler.ExportCSV)
	protected.GET("/expenses/export/xlsx", exportHandler.ExportXLSX)

	goalHandler := handler.NewGoalHandler(db)
	protected.GET("/goal", goalHandler.GetGoal)
	protected.PUT("/goal", goalHandler.SetGoal)

	protected.GET("/profiles/me", handler.GetMyProfile(db))
	protected.PUT("/profiles/me", handler.UpsertMyProfile(db))
	protected.DELETE("/profiles/me", handler.DeleteMyProfile(db))

	return r
}
