package models

// Transaction types. Balances derive from the log: earned_* adds, redeemed subtracts.
const (
	TxEarnedReport  = "earned_report"
	TxEarnedCollect = "earned_collect"
	TxEarnedGame    = "earned_game"
	TxRedeemed      = "redeemed"
)

// Points awarded per action.
const (
	PointsPerReport     = 10
	PointsPerCollection = 10
)

// Reward holds a user's cached point projection plus the redeemable catalog.
// Rows with UserID 0 are catalog entries whose Points field is the cost.
type Reward struct {
	Model
	UserID         uint   `json:"user_id" gorm:"index"`
	Points         int    `json:"points"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CollectionInfo string `json:"collection_info"`
	IsAvailable    bool   `json:"is_available" gorm:"default:true"`
}

// Transaction is one immutable entry in the points ledger.
type Transaction struct {
	Model
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Type        string `json:"type" gorm:"not null"`
	Amount      int    `json:"amount" gorm:"not null"`
	Description string `json:"description"`
}

// Earned reports whether the transaction adds to the balance.
func (t *Transaction) Earned() bool {
	return t.Type == TxEarnedReport || t.Type == TxEarnedCollect || t.Type == TxEarnedGame
}

// AvailableReward is a redeemable entry as shown to the user.
type AvailableReward struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Cost           int    `json:"cost"`
	Description    string `json:"description"`
	CollectionInfo string `json:"collection_info"`
}

// UserRewardData is the balance plus recent ledger history for one user.
type UserRewardData struct {
	Balance      int           `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// LeaderboardEntry pairs a user with their accumulated points.
type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Points   int    `json:"points"`
}
