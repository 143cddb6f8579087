package services

import (
	"context"
	"errors"

	"github.com/wasteeasy/api/db"
	apiError "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/models"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories, shared by the service tests.

type fakeReportRepo struct {
	reports   map[uint]*models.Report
	collected []*models.CollectedWaste
	nextID    uint
	amounts   []string
	failSaves bool
	statusLog []string
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uint]*models.Report)}
}

func (f *fakeReportRepo) SaveReport(report *models.Report) (*models.Report, error) {
	if f.failSaves {
		return nil, errors.New("save failed")
	}
	f.nextID++
	report.ID = f.nextID
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeReportRepo) GetReportByID(reportID uint) (*models.Report, error) {
	report, ok := f.reports[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) GetRecentReports(limit int) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		out = append(out, *r)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReportRepo) GetCollectionTasks(limit int) ([]models.CollectionTask, error) {
	var out []models.CollectionTask
	for _, r := range f.reports {
		out = append(out, models.CollectionTask{
			ID:        r.ID,
			Location:  r.Location,
			WasteType: r.WasteType,
			Amount:    r.Amount,
			Status:    r.Status,
		})
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateReportStatus(reportID uint, status string, collectorID *uint) (*models.Report, error) {
	report, ok := f.reports[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	report.Status = status
	if collectorID != nil {
		report.CollectorID = collectorID
	}
	f.statusLog = append(f.statusLog, status)
	return report, nil
}

func (f *fakeReportRepo) SaveCollectedWaste(collected *models.CollectedWaste) (*models.CollectedWaste, error) {
	if collected.Status == "" {
		collected.Status = models.StatusVerified
	}
	f.collected = append(f.collected, collected)
	return collected, nil
}

func (f *fakeReportRepo) CountReports() (int64, error) {
	return int64(len(f.reports)), nil
}

func (f *fakeReportRepo) GetAmountsByStatus(statuses ...string) ([]string, error) {
	return f.amounts, nil
}

type fakeLedgerRepo struct {
	transactions []models.Transaction
	catalog      []models.Reward
	entries      map[uint]*models.Reward
	nextTxID     uint
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[uint]*models.Reward)}
}

func (f *fakeLedgerRepo) balance(userID uint) int {
	total := 0
	for _, tx := range f.transactions {
		if tx.UserID != userID {
			continue
		}
		if tx.Type == models.TxRedeemed {
			total -= tx.Amount
		} else {
			total += tx.Amount
		}
	}
	return total
}

func (f *fakeLedgerRepo) append(userID uint, txType string, amount int, description string) *models.Transaction {
	f.nextTxID++
	tx := models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
	}
	tx.ID = f.nextTxID
	f.transactions = append(f.transactions, tx)
	return &f.transactions[len(f.transactions)-1]
}

func (f *fakeLedgerRepo) GetOrCreateReward(userID uint) (*models.Reward, error) {
	if reward, ok := f.entries[userID]; ok {
		return reward, nil
	}
	reward := &models.Reward{UserID: userID}
	f.entries[userID] = reward
	return reward, nil
}

func (f *fakeLedgerRepo) Earn(userID uint, amount int, txType, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("earn amount must be positive")
	}
	return f.append(userID, txType, amount, description), nil
}

func (f *fakeLedgerRepo) RedeemAll(userID uint) (*models.Transaction, error) {
	balance := f.balance(userID)
	if balance <= 0 {
		return nil, db.ErrInsufficientPoints
	}
	return f.append(userID, models.TxRedeemed, balance, "Redeemed all points"), nil
}

func (f *fakeLedgerRepo) RedeemCost(userID uint, cost int, description string) (*models.Transaction, error) {
	if f.balance(userID) < cost {
		return nil, db.ErrInsufficientPoints
	}
	return f.append(userID, models.TxRedeemed, cost, description), nil
}

func (f *fakeLedgerRepo) SumBalance(userID uint) (int, error) {
	return f.balance(userID), nil
}

func (f *fakeLedgerRepo) RecentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := len(f.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if f.transactions[i].UserID == userID {
			out = append(out, f.transactions[i])
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) AvailableRewards() ([]models.Reward, error) {
	return f.catalog, nil
}

func (f *fakeLedgerRepo) GetRewardByID(rewardID uint) (*models.Reward, error) {
	for i := range f.catalog {
		if f.catalog[i].ID == rewardID {
			return &f.catalog[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepo) Leaderboard() ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) SumAllPoints() (int64, error) {
	seen := make(map[uint]bool)
	var total int64
	for _, tx := range f.transactions {
		if !seen[tx.UserID] {
			seen[tx.UserID] = true
			total += int64(f.balance(tx.UserID))
		}
	}
	return total, nil
}

type earnCall struct {
	userID      uint
	amount      int
	txType      string
	description string
}

type fakeRewardService struct {
	earns    []earnCall
	earnErr  error
	balances map[uint]int
}

func newFakeRewardService() *fakeRewardService {
	return &fakeRewardService{balances: make(map[uint]int)}
}

func (f *fakeRewardService) GetBalance(userID uint) (int, error) {
	return f.balances[userID], nil
}

func (f *fakeRewardService) EarnPoints(userID uint, amount int, txType, description string) error {
	if f.earnErr != nil {
		return f.earnErr
	}
	f.earns = append(f.earns, earnCall{userID, amount, txType, description})
	f.balances[userID] += amount
	return nil
}

func (f *fakeRewardService) GetUserRewardData(userID uint) (*models.UserRewardData, error) {
	return &models.UserRewardData{Balance: f.balances[userID]}, nil
}

func (f *fakeRewardService) GetAvailableRewards(userID uint) ([]models.AvailableReward, error) {
	return nil, nil
}

func (f *fakeRewardService) RedeemReward(userID uint, rewardID uint) (*models.Transaction, *apiError.Error) {
	return nil, nil
}

func (f *fakeRewardService) GetLeaderboard() ([]models.LeaderboardEntry, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	createErr     error
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) (*models.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeNotificationRepo) GetUnreadNotifications(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkNotificationAsRead(notificationID uint) error {
	for _, n := range f.notifications {
		if n.ID == notificationID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeHighScoreRepo struct {
	scores map[uint]int
	getErr error
	setErr error
}

func newFakeHighScoreRepo() *fakeHighScoreRepo {
	return &fakeHighScoreRepo{scores: make(map[uint]int)}
}

func (f *fakeHighScoreRepo) GetHighScore(ctx context.Context, userID uint) (int, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	return f.scores[userID], nil
}

func (f *fakeHighScoreRepo) SetHighScore(ctx context.Context, userID uint, score int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.scores[userID] = score
	return nil
}

type fakeAuthRepo struct {
	users      map[string]*models.User
	blacklist  map[string]bool
	nextUserID uint
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:     make(map[string]*models.User),
		blacklist: make(map[string]bool),
	}
}

func (f *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	f.nextUserID++
	user.ID = f.nextUserID
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeAuthRepo) IsEmailExist(email string) error {
	if _, ok := f.users[email]; ok {
		return errors.New("email already in use")
	}
	return nil
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) FindUserByID(id uint) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) UpdateUser(user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeAuthRepo) AddToBlackList(blacklist *models.Blacklist) error {
	f.blacklist[blacklist.Token] = true
	return nil
}

func (f *fakeAuthRepo) IsTokenInBlacklist(token string) bool {
	return f.blacklist[token]
}
