package main

import (
	"log"

	"github.com/wasteeasy/api/config"
	"github.com/wasteeasy/api/db"
	"github.com/wasteeasy/api/gemini"
	"github.com/wasteeasy/api/server"
	"github.com/wasteeasy/api/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	ledgerRepo := db.NewLedgerRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)
	highScoreRepo := db.NewHighScoreRepo(conf.RedisAddr)

	geminiClient, err := gemini.NewClient(conf.GeminiApiKey, conf.GeminiModel)
	if err != nil {
		log.Fatalf("error creating gemini client: %v", err)
	}

	authService := services.NewAuthService(authRepo, conf)
	rewardService := services.NewRewardService(ledgerRepo)
	reportService := services.NewReportService(reportRepo, rewardService, notificationRepo)
	mediaService := services.NewMediaService(conf)
	notificationService := services.NewNotificationService(notificationRepo)
	gameService := services.NewGameService(highScoreRepo, rewardService, notificationRepo)
	statsService := services.NewStatsService(reportRepo, ledgerRepo)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ReportService:       reportService,
		RewardService:       rewardService,
		MediaService:        mediaService,
		NotificationService: notificationService,
		GameService:         gameService,
		StatsService:        statsService,
		GeminiClient:        geminiClient,
		DB:                  gormDB,
	}

	s.Start()
}
