package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/wasteeasy/api/db"
	apiError "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/models"
	"gorm.io/gorm"
)

const recentTransactionLimit = 20

// RewardService exposes the points ledger to handlers.
type RewardService interface {
	GetBalance(userID uint) (int, error)
	EarnPoints(userID uint, amount int, txType, description string) error
	GetUserRewardData(userID uint) (*models.UserRewardData, error)
	GetAvailableRewards(userID uint) ([]models.AvailableReward, error)
	RedeemReward(userID uint, rewardID uint) (*models.Transaction, *apiError.Error)
	GetLeaderboard() ([]models.LeaderboardEntry, error)
}

type rewardService struct {
	ledgerRepo db.LedgerRepository
}

// NewRewardService instantiate a rewardService
func NewRewardService(ledgerRepo db.LedgerRepository) RewardService {
	return &rewardService{ledgerRepo: ledgerRepo}
}

// GetBalance derives the user's balance from the transaction log. A log that
// sums negative is reported as zero.
func (s *rewardService) GetBalance(userID uint) (int, error) {
	balance, err := s.ledgerRepo.SumBalance(userID)
	if err != nil {
		return 0, err
	}
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

// EarnPoints appends an earning to the user's ledger.
func (s *rewardService) EarnPoints(userID uint, amount int, txType, description string) error {
	_, err := s.ledgerRepo.Earn(userID, amount, txType, description)
	return err
}

func (s *rewardService) GetUserRewardData(userID uint) (*models.UserRewardData, error) {
	balance, err := s.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.ledgerRepo.RecentTransactions(userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	return &models.UserRewardData{
		Balance:      balance,
		Transactions: transactions,
	}, nil
}

// GetAvailableRewards lists the catalog, prefixed with a pseudo entry holding
// the user's own balance so clients can render it in the same list.
func (s *rewardService) GetAvailableRewards(userID uint) ([]models.AvailableReward, error) {
	balance, err := s.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.ledgerRepo.AvailableRewards()
	if err != nil {
		return nil, err
	}

	rewards := []models.AvailableReward{
		{
			ID:             0,
			Name:           "Your Points",
			Cost:           balance,
			CollectionInfo: "Points earned from reporting and collecting waste",
		},
	}
	for _, entry := range catalog {
		rewards = append(rewards, models.AvailableReward{
			ID:             entry.ID,
			Name:           entry.Name,
			Cost:           entry.Points,
			Description:    entry.Description,
			CollectionInfo: entry.CollectionInfo,
		})
	}
	return rewards, nil
}

// RedeemReward spends points. Reward ID zero redeems the full balance;
// any other ID redeems a catalog entry at its cost.
func (s *rewardService) RedeemReward(userID uint, rewardID uint) (*models.Transaction, *apiError.Error) {
	if rewardID == 0 {
		entry, err := s.ledgerRepo.RedeemAll(userID)
		if err != nil {
			return nil, redeemError(err)
		}
		return entry, nil
	}

	reward, err := s.ledgerRepo.GetRewardByID(rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("reward not found", http.StatusNotFound)
		}
		log.Printf("Error fetching reward %d: %v", rewardID, err)
		return nil, apiError.ErrInternalServerError
	}
	if reward.UserID != 0 || !reward.IsAvailable {
		return nil, apiError.New("reward not available", http.StatusNotFound)
	}

	entry, err := s.ledgerRepo.RedeemCost(userID, reward.Points, fmt.Sprintf("Redeemed: %s", reward.Name))
	if err != nil {
		return nil, redeemError(err)
	}
	return entry, nil
}

func redeemError(err error) *apiError.Error {
	if errors.Is(err, db.ErrInsufficientPoints) {
		return apiError.ErrInsufficientPoints
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError.ErrInsufficientPoints
	}
	log.Printf("Error redeeming points: %v", err)
	return apiError.ErrInternalServerError
}

func (s *rewardService) GetLeaderboard() ([]models.LeaderboardEntry, error) {
	return s.ledgerRepo.Leaderboard()
}
