package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig はルーター構築に必要な依存をまとめます。
type RouterConfig struct {
	AllowedOrigins []string
	Verifier       TokenVerifier
	Auth           *AuthHandler
	Employee       *EmployeeHandler
	Leave          *LeaveHandler
}

// NewRouter はルーティングとミドルウェアを構成した gin.Engine を返します。
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/auth/login", cfg.Auth.Login)

	authenticated := api.Group("")
	authenticated.Use(Authenticate(cfg.Verifier))
	{
		authenticated.POST("/auth/change-password", cfg.Auth.ChangePassword)
		authenticated.GET("/employees/me", cfg.Leave.Balance)
		authenticated.POST("/leaves", cfg.Leave.Submit)
		authenticated.GET("/leaves", cfg.Leave.ListMine)
	}

	admin := api.Group("")
	admin.Use(Authenticate(cfg.Verifier), AdminOnly())
	{
		admin.GET("/leaves/admin", cfg.Leave.ListDepartment)
		admin.PUT("/leaves/admin/:id", cfg.Leave.Decide)
		admin.POST("/admin/employees", cfg.Employee.Create)
		admin.GET("/admin/employees", cfg.Employee.List)
		admin.DELETE("/admin/employees/:userId", cfg.Employee.Delete)
	}

	return router
}
