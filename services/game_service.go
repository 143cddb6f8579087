package services

import (
	"context"
	"fmt"
	"log"

	"github.com/wasteeasy/api/db"
	"github.com/wasteeasy/api/models"
)

// GameResult is returned to the client after a finished round is recorded.
type GameResult struct {
	Score        int  `json:"score"`
	TokensEarned int  `json:"tokens_earned"`
	HighScore    int  `json:"high_score"`
	NewHighScore bool `json:"new_high_score"`
}

// GameService records finished Recycle Rush rounds: token payout, high score
// tracking and the reward notification.
type GameService interface {
	RecordGameResult(ctx context.Context, userID uint, score int) (*GameResult, error)
	GetHighScore(ctx context.Context, userID uint) (int, error)
}

type gameService struct {
	highScoreRepo    db.HighScoreRepository
	rewardService    RewardService
	notificationRepo db.NotificationRepository
}

// NewGameService instantiate a gameService
func NewGameService(highScoreRepo db.HighScoreRepository, rewardService RewardService, notificationRepo db.NotificationRepository) GameService {
	return &gameService{
		highScoreRepo:    highScoreRepo,
		rewardService:    rewardService,
		notificationRepo: notificationRepo,
	}
}

// RecordGameResult pays out one token per 10 points and updates the high
// score. The token credit is authoritative; high score and notification
// failures are logged and do not fail the request.
func (s *gameService) RecordGameResult(ctx context.Context, userID uint, score int) (*GameResult, error) {
	if score < 0 {
		score = 0
	}
	tokens := score / 10

	if tokens > 0 {
		err := s.rewardService.EarnPoints(userID, tokens, models.TxEarnedGame,
			fmt.Sprintf("Recycle Rush: scored %d", score))
		if err != nil {
			log.Printf("RecordGameResult error crediting tokens for user %d: %v", userID, err)
			return nil, err
		}
		_, err = s.notificationRepo.CreateNotification(&models.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("You've earned %d tokens playing Recycle Rush!", tokens),
			Type:    "Reward Earned!",
		})
		if err != nil {
			log.Printf("RecordGameResult error creating notification for user %d: %v", userID, err)
		}
	}

	result := &GameResult{Score: score, TokensEarned: tokens}

	highScore, err := s.highScoreRepo.GetHighScore(ctx, userID)
	if err != nil {
		log.Printf("RecordGameResult error fetching high score for user %d: %v", userID, err)
		result.HighScore = score
		return result, nil
	}

	result.HighScore = highScore
	if score > highScore {
		if err := s.highScoreRepo.SetHighScore(ctx, userID, score); err != nil {
			log.Printf("RecordGameResult error storing high score for user %d: %v", userID, err)
		} else {
			result.HighScore = score
			result.NewHighScore = true
		}
	}
	return result, nil
}

func (s *gameService) GetHighScore(ctx context.Context, userID uint) (int, error) {
	return s.highScoreRepo.GetHighScore(ctx, userID)
}
