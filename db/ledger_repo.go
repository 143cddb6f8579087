package db

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wasteeasy/api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientPoints is returned when a redemption exceeds the user's balance.
var ErrInsufficientPoints = errors.New("insufficient points")

type LedgerRepository interface {
	GetOrCreateReward(userID uint) (*models.Reward, error)
	Earn(userID uint, amount int, txType, description string) (*models.Transaction, error)
	RedeemAll(userID uint) (*models.Transaction, error)
	RedeemCost(userID uint, cost int, description string) (*models.Transaction, error)
	SumBalance(userID uint) (int, error)
	RecentTransactions(userID uint, limit int) ([]models.Transaction, error)
	AvailableRewards() ([]models.Reward, error)
	GetRewardByID(rewardID uint) (*models.Reward, error)
	Leaderboard() ([]models.LeaderboardEntry, error)
	SumAllPoints() (int64, error)
}

type ledgerRepo struct {
	DB *gorm.DB
}

func NewLedgerRepo(db *GormDB) LedgerRepository {
	return &ledgerRepo{db.DB}
}

func (r *ledgerRepo) GetOrCreateReward(userID uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.DB.Where("user_id = ?", userID).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			reward = models.Reward{
				UserID:         userID,
				Points:         0,
				Name:           "Your Points",
				CollectionInfo: "Points earned from reporting and collecting waste",
				IsAvailable:    true,
			}
			if err := r.DB.Create(&reward).Error; err != nil {
				return nil, err
			}
			return &reward, nil
		}
		return nil, err
	}
	return &reward, nil
}

// Earn appends an earned_* transaction and bumps the cached points projection.
// Both writes go through one database transaction so the projection cannot
// drift from the log.
func (r *ledgerRepo) Earn(userID uint, amount int, txType, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("earn amount must be positive")
	}

	entry := models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockReward(tx, userID); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Reward{}).
			Where("user_id = ?", userID).
			Update("points", gorm.Expr("points + ?", amount)).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not record earn")
	}
	return &entry, nil
}

// RedeemAll zeroes the user's points and logs a redeemed transaction for the
// full prior amount. The reward row is locked so a concurrent earn cannot be
// lost between the read and the zero.
func (r *ledgerRepo) RedeemAll(userID uint) (*models.Transaction, error) {
	var entry models.Transaction

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&reward).Error; err != nil {
			return err
		}
		if reward.Points <= 0 {
			return ErrInsufficientPoints
		}

		entry = models.Transaction{
			UserID:      userID,
			Type:        models.TxRedeemed,
			Amount:      reward.Points,
			Description: fmt.Sprintf("Redeemed all points: %d", reward.Points),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Reward{}).
			Where("user_id = ?", userID).
			Update("points", 0).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RedeemCost deducts a specific cost, checking the derived balance first.
func (r *ledgerRepo) RedeemCost(userID uint, cost int, description string) (*models.Transaction, error) {
	if cost <= 0 {
		return nil, errors.New("redeem cost must be positive")
	}

	var entry models.Transaction

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockReward(tx, userID); err != nil {
			return err
		}
		balance, err := sumBalance(tx, userID)
		if err != nil {
			return err
		}
		if balance < cost {
			return ErrInsufficientPoints
		}

		entry = models.Transaction{
			UserID:      userID,
			Type:        models.TxRedeemed,
			Amount:      cost,
			Description: description,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Reward{}).
			Where("user_id = ?", userID).
			Update("points", gorm.Expr("GREATEST(points - ?, 0)", cost)).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func lockReward(tx *gorm.DB, userID uint) error {
	var reward models.Reward
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&reward).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reward = models.Reward{
			UserID:         userID,
			Points:         0,
			Name:           "Your Points",
			CollectionInfo: "Points earned from reporting and collecting waste",
			IsAvailable:    true,
		}
		return tx.Create(&reward).Error
	}
	return err
}

func sumBalance(tx *gorm.DB, userID uint) (int, error) {
	var balance int
	err := tx.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN -amount ELSE amount END), 0)", models.TxRedeemed).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// SumBalance derives the user's balance from the transaction log.
func (r *ledgerRepo) SumBalance(userID uint) (int, error) {
	return sumBalance(r.DB, userID)
}

func (r *ledgerRepo) RecentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *ledgerRepo) AvailableRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.DB.Where("user_id = 0 AND is_available = ?", true).Find(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *ledgerRepo) GetRewardByID(rewardID uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.DB.First(&reward, rewardID).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *ledgerRepo) Leaderboard() ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.DB.Model(&models.Reward{}).
		Select("rewards.user_id, users.fullname AS user_name, rewards.points").
		Joins("LEFT JOIN users ON users.id = rewards.user_id").
		Where("rewards.user_id > 0").
		Order("rewards.points DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ledgerRepo) SumAllPoints() (int64, error) {
	var total int64
	err := r.DB.Model(&models.Reward{}).
		Where("user_id > 0").
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
