package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const highScoreKeyFormat = "recycle_rush:highscore:%d"

// HighScoreRepository keeps one integer per user, no expiry.
type HighScoreRepository interface {
	GetHighScore(ctx context.Context, userID uint) (int, error)
	SetHighScore(ctx context.Context, userID uint, score int) error
}

type highScoreRepo struct {
	client *redis.Client
}

func NewHighScoreRepo(addr string) HighScoreRepository {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &highScoreRepo{client: client}
}

func (r *highScoreRepo) GetHighScore(ctx context.Context, userID uint) (int, error) {
	score, err := r.client.Get(ctx, fmt.Sprintf(highScoreKeyFormat, userID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return score, nil
}

func (r *highScoreRepo) SetHighScore(ctx context.Context, userID uint, score int) error {
	return r.client.Set(ctx, fmt.Sprintf(highScoreKeyFormat, userID), score, 0).Err()
}
