package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"wagergate/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Report{}))
	return NewRepository(db)
}

func row(stage string, status int, trxID string, flag models.Flag) *models.Report {
	return &models.Report{
		BetID:     models.BuildBetID(stage, status, trxID),
		TrxID:     trxID,
		PlayID:    "p-1",
		WebID:     "web1",
		Currency:  "USD",
		BetAmount: decimal.NewFromInt(10),
		BetTime:   time.Now(),
		Flag:      flag,
		Status:    status,
	}
}

func TestInsertRejectsDuplicateBetID(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Insert(row(models.StagePlaceBet, 1, "T1", models.FlagWaiting)))

	err := repo.Insert(row(models.StagePlaceBet, 1, "T1", models.FlagWaiting))
	assert.True(t, errors.Is(err, ErrDuplicateBet), "want ErrDuplicateBet, got %v", err)

	// same trx, next stage counter: a different bet_id, so it inserts
	require.NoError(t, repo.Insert(row(models.StageConfirmBet, 2, "T1", models.FlagRunning)))
}

func TestFindLatestFollowsStageCounter(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Insert(row(models.StagePlaceBet, 1, "T1", models.FlagWaiting)))
	require.NoError(t, repo.Insert(row(models.StageConfirmBet, 2, "T1", models.FlagRunning)))
	require.NoError(t, repo.Insert(row(models.StageSettle, 3, "T1", models.FlagSettled)))

	latest, err := repo.FindLatestByTrxID("T1")
	require.NoError(t, err)
	assert.Equal(t, "SETTLE-3-T1", latest.BetID)
	assert.Equal(t, models.FlagSettled, latest.Flag)

	rows, err := repo.FindByTrxID("T1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Status)
	assert.Equal(t, 3, rows[2].Status)
}

func TestFindLatestNotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindLatestByTrxID("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestExistsByBetID(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Insert(row(models.StageAdjust, 1, "ADJ-1", models.FlagBonus)))

	ok, err := repo.ExistsByBetID(models.BuildBetID(models.StageAdjust, 1, "ADJ-1"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByBetID(models.BuildBetID(models.StageAdjust, 1, "ADJ-2"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaleRunningPicksLatestRowOnly(t *testing.T) {
	repo := newRepo(t)

	old := time.Now().Add(-48 * time.Hour)

	// stuck ticket: latest row running and old
	stuck := row(models.StageConfirmBet, 2, "STUCK", models.FlagRunning)
	stuck.CreatedAt = old
	require.NoError(t, repo.Insert(row(models.StagePlaceBet, 1, "STUCK", models.FlagWaiting)))
	require.NoError(t, repo.Insert(stuck))

	// ticket that ran and then settled: its running row is superseded
	done := row(models.StageConfirmBet, 2, "DONE", models.FlagRunning)
	done.CreatedAt = old
	require.NoError(t, repo.Insert(row(models.StagePlaceBet, 1, "DONE", models.FlagWaiting)))
	require.NoError(t, repo.Insert(done))
	require.NoError(t, repo.Insert(row(models.StageSettle, 3, "DONE", models.FlagSettled)))

	// fresh running ticket: not old enough
	require.NoError(t, repo.Insert(row(models.StagePlaceBet, 1, "FRESH", models.FlagWaiting)))
	require.NoError(t, repo.Insert(row(models.StageConfirmBet, 2, "FRESH", models.FlagRunning)))

	rows, err := repo.StaleRunning(24 * time.Hour)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "STUCK", rows[0].TrxID)
}
