package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wasteeasy/api/models"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	classifyLimiter := limitClassifyRate(newClassifyRateStore())

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/auth/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.GET("/reports/recent", s.handleGetRecentReports())
	apirouter.GET("/stats/impact", s.handleGetImpactStats())
	apirouter.GET("/rewards/leaderboard", s.handleGetLeaderboard())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())

	authorized.POST("/reports", s.handleCreateReport())
	authorized.GET("/reports/tasks", s.RequireRole(models.RoleCollector), s.handleGetCollectionTasks())
	authorized.PUT("/reports/:id/status", s.RequireRole(models.RoleCollector), s.handleUpdateReportStatus())
	authorized.POST("/reports/:id/collect", s.RequireRole(models.RoleCollector), s.handleCollectWaste())

	authorized.POST("/classify", classifyLimiter, s.handleClassifyWaste())
	authorized.POST("/classify/contamination", classifyLimiter, s.handleClassifyContamination())

	authorized.GET("/rewards", s.handleGetAvailableRewards())
	authorized.GET("/rewards/balance", s.handleGetRewardBalance())
	authorized.POST("/rewards/redeem/:id", s.handleRedeemReward())

	authorized.GET("/notifications", s.handleGetNotifications())
	authorized.PUT("/notifications/:id/read", s.handleMarkNotificationRead())

	authorized.POST("/game/result", s.handleGameResult())
	authorized.GET("/game/highscore", s.handleGetHighScore())
}
