package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasteeasy/api/models"
)

func TestGetBalanceClampsNegative(t *testing.T) {
	ledger := newFakeLedgerRepo()
	svc := NewRewardService(ledger)

	// a log that sums below zero is presented as an empty balance
	ledger.append(1, models.TxRedeemed, 30, "manual adjustment")

	balance, err := svc.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestEarnThenRedeemAll(t *testing.T) {
	ledger := newFakeLedgerRepo()
	svc := NewRewardService(ledger)

	require.NoError(t, svc.EarnPoints(1, 10, models.TxEarnedReport, "report"))
	require.NoError(t, svc.EarnPoints(1, 10, models.TxEarnedCollect, "collect"))

	balance, err := svc.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	entry, apiErr := svc.RedeemReward(1, 0)
	require.Nil(t, apiErr)
	assert.Equal(t, models.TxRedeemed, entry.Type)
	assert.Equal(t, 20, entry.Amount)

	balance, err = svc.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestRedeemAllWithNothingToRedeem(t *testing.T) {
	ledger := newFakeLedgerRepo()
	svc := NewRewardService(ledger)

	txCount := len(ledger.transactions)
	_, apiErr := svc.RedeemReward(1, 0)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Len(t, ledger.transactions, txCount)
}

func TestRedeemCatalogReward(t *testing.T) {
	ledger := newFakeLedgerRepo()
	voucher := models.Reward{Points: 15, Name: "Coffee Voucher", IsAvailable: true}
	voucher.ID = 2
	ledger.catalog = []models.Reward{voucher}
	svc := NewRewardService(ledger)

	require.NoError(t, svc.EarnPoints(1, 20, models.TxEarnedReport, "report"))

	entry, apiErr := svc.RedeemReward(1, 2)
	require.Nil(t, apiErr)
	assert.Equal(t, 15, entry.Amount)
	assert.Contains(t, entry.Description, "Coffee Voucher")

	balance, err := svc.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)
}

func TestRedeemCatalogRewardInsufficientPoints(t *testing.T) {
	ledger := newFakeLedgerRepo()
	voucher := models.Reward{Points: 50, Name: "Coffee Voucher", IsAvailable: true}
	voucher.ID = 2
	ledger.catalog = []models.Reward{voucher}
	svc := NewRewardService(ledger)

	require.NoError(t, svc.EarnPoints(1, 20, models.TxEarnedReport, "report"))

	_, apiErr := svc.RedeemReward(1, 2)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)

	// no redeemed transaction was appended
	for _, tx := range ledger.transactions {
		assert.NotEqual(t, models.TxRedeemed, tx.Type)
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	ledger := newFakeLedgerRepo()
	svc := NewRewardService(ledger)

	_, apiErr := svc.RedeemReward(1, 42)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestGetAvailableRewardsLeadsWithBalance(t *testing.T) {
	ledger := newFakeLedgerRepo()
	voucher := models.Reward{Points: 15, Name: "Coffee Voucher", Description: "A free coffee", IsAvailable: true}
	voucher.ID = 2
	ledger.catalog = []models.Reward{voucher}
	svc := NewRewardService(ledger)

	require.NoError(t, svc.EarnPoints(1, 30, models.TxEarnedReport, "report"))

	rewards, err := svc.GetAvailableRewards(1)
	require.NoError(t, err)
	require.Len(t, rewards, 2)

	assert.Equal(t, uint(0), rewards[0].ID)
	assert.Equal(t, "Your Points", rewards[0].Name)
	assert.Equal(t, 30, rewards[0].Cost)

	assert.Equal(t, uint(2), rewards[1].ID)
	assert.Equal(t, 15, rewards[1].Cost)
}

func TestGetUserRewardData(t *testing.T) {
	ledger := newFakeLedgerRepo()
	svc := NewRewardService(ledger)

	require.NoError(t, svc.EarnPoints(1, 10, models.TxEarnedReport, "report"))
	require.NoError(t, svc.EarnPoints(1, 3, models.TxEarnedGame, "game"))

	data, err := svc.GetUserRewardData(1)
	require.NoError(t, err)
	assert.Equal(t, 13, data.Balance)
	require.Len(t, data.Transactions, 2)
	// newest first
	assert.Equal(t, models.TxEarnedGame, data.Transactions[0].Type)
}
