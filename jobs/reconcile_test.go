package jobs

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"wagergate/ledger"
	"wagergate/models"
	"wagergate/saba"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type countingFetcher struct {
	mu     sync.Mutex
	n      int
	result string
}

func (f *countingFetcher) Fetch(ctx context.Context, transID string) (*saba.Enrichment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return &saba.Enrichment{Result: f.result}, nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func stuckLedger(t *testing.T) *ledger.Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:jobs_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Report{}))

	reports := ledger.NewRepository(db)
	stuck := &models.Report{
		BetID:     models.BuildBetID(models.StageConfirmBet, 2, "STUCK"),
		TrxID:     "STUCK",
		PlayID:    "p-1",
		WebID:     "web1",
		Currency:  "USD",
		BetAmount: decimal.NewFromInt(10),
		BetTime:   time.Now().Add(-48 * time.Hour),
		Flag:      models.FlagRunning,
		Status:    2,
	}
	stuck.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, reports.Insert(stuck))
	return reports
}

func TestReconcileOnceNeverMutates(t *testing.T) {
	reports := stuckLedger(t)
	fetcher := &countingFetcher{result: "win"}

	reconcileOnce(context.Background(), reports, fetcher, zap.NewNop())

	assert.Equal(t, 1, fetcher.count())

	latest, err := reports.FindLatestByTrxID("STUCK")
	require.NoError(t, err)
	assert.Equal(t, models.FlagRunning, latest.Flag, "reconciliation must only observe, never settle")

	rows, err := reports.FindByTrxID("STUCK")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReconcileSchedulerStopsOnCancel(t *testing.T) {
	reports := stuckLedger(t)
	fetcher := &countingFetcher{result: "running"}

	ctx, cancel := context.WithCancel(context.Background())
	StartReconcileScheduler(ctx, reports, fetcher, zap.NewNop(), 5*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for fetcher.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Greater(t, fetcher.count(), 0, "scheduler never ticked")

	cancel()
	time.Sleep(20 * time.Millisecond) // drain any in-flight tick

	n := fetcher.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, fetcher.count(), "scheduler kept probing after cancel")
}
