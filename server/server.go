package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wasteeasy/api/config"
	"github.com/wasteeasy/api/db"
	"github.com/wasteeasy/api/gemini"
	"github.com/wasteeasy/api/services"
)

// Server holds the application dependencies and the HTTP surface.
type Server struct {
	Config              *config.Config
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	ReportService       services.ReportService
	RewardService       services.RewardService
	MediaService        services.MediaService
	NotificationService services.NotificationService
	GameService         services.GameService
	StatsService        services.StatsService
	GeminiClient        *gemini.Client
	DB                  *db.GormDB
}

// Start runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() {
	r := s.setupRouter()

	PORT := fmt.Sprintf(":%d", s.Config.Port)
	srv := &http.Server{
		Addr:    PORT,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", PORT)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
