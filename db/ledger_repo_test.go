package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasteeasy/api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockLedgerRepo(t *testing.T) (LedgerRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewLedgerRepo(&GormDB{DB: gormDB}), mock
}

func rewardRow(userID uint, points int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "points"}).AddRow(1, userID, points)
}

func TestEarnAppendsTransactionAndBumpsProjectionInOneTx(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rewards" WHERE user_id = \$1.*FOR UPDATE`).
		WillReturnRows(rewardRow(7, 20))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`UPDATE "rewards" SET .*points \+ \$1.* WHERE user_id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := repo.Earn(7, 10, models.TxEarnedReport, "Points earned for reporting waste")
	require.NoError(t, err)
	assert.Equal(t, uint(42), entry.ID)
	assert.Equal(t, 10, entry.Amount)
	assert.Equal(t, models.TxEarnedReport, entry.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnCreatesRewardRowLazily(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rewards" WHERE user_id = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "points"}))
	mock.ExpectQuery(`INSERT INTO "rewards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "rewards" SET .*points \+ \$1.* WHERE user_id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.Earn(7, 10, models.TxEarnedReport, "first points")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnRejectsNonPositiveAmount(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	_, err := repo.Earn(7, 0, models.TxEarnedReport, "nothing")
	require.Error(t, err)
	_, err = repo.Earn(7, -5, models.TxEarnedReport, "negative")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemAllZeroesPointsAndLogsFullAmount(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rewards" WHERE user_id = \$1.*FOR UPDATE`).
		WillReturnRows(rewardRow(7, 35))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "rewards" SET .* WHERE user_id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := repo.RedeemAll(7)
	require.NoError(t, err)
	assert.Equal(t, models.TxRedeemed, entry.Type)
	assert.Equal(t, 35, entry.Amount)
	assert.Contains(t, entry.Description, "35")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemAllWithZeroPoints(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rewards" WHERE user_id = \$1.*FOR UPDATE`).
		WillReturnRows(rewardRow(7, 0))
	mock.ExpectRollback()

	_, err := repo.RedeemAll(7)
	require.ErrorIs(t, err, ErrInsufficientPoints)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemCostChecksDerivedBalanceAndFloorsProjection(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rewards" WHERE user_id = \$1.*FOR UPDATE`).
		WillReturnRows(rewardRow(7, 20))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN type = \$1 THEN -amount ELSE amount END\), 0\) FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(20))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "rewards" SET .*GREATEST\(points - \$1, 0\).* WHERE user_id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := repo.RedeemCost(7, 15, "Redeemed: Coffee Voucher")
	require.NoError(t, err)
	assert.Equal(t, 15, entry.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemCostInsufficientBalanceRollsBack(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rewards" WHERE user_id = \$1.*FOR UPDATE`).
		WillReturnRows(rewardRow(7, 5))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN type = \$1 THEN -amount ELSE amount END\), 0\) FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5))
	mock.ExpectRollback()

	_, err := repo.RedeemCost(7, 15, "Redeemed: Coffee Voucher")
	require.ErrorIs(t, err, ErrInsufficientPoints)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSumBalanceDerivesFromLog(t *testing.T) {
	repo, mock := newMockLedgerRepo(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN type = \$1 THEN -amount ELSE amount END\), 0\) FROM "transactions" WHERE user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(25))

	balance, err := repo.SumBalance(7)
	require.NoError(t, err)
	assert.Equal(t, 25, balance)
	require.NoError(t, mock.ExpectationsWereMet())
}
