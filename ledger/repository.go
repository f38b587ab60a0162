package ledger

import (
	"errors"
	"fmt"
	"time"

	"wagergate/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("report not found")
	ErrDuplicateBet = errors.New("duplicate bet_id")
)

// Repository is CRUD over the append-mostly reports table. It never
// updates a row: every lifecycle step is a fresh insert and the bet_id
// unique index is the final idempotency arbiter.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByTrxID returns every stage row for a ticket, oldest stage first.
func (r *Repository) FindByTrxID(trxID string) ([]models.Report, error) {
	var rows []models.Report
	if err := r.db.Where("trx_id = ?", trxID).Order("status ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find reports for trx %s: %w", trxID, err)
	}
	return rows, nil
}

// FindLatestByTrxID returns the row with the highest stage counter; its
// flag defines the legal next transitions.
func (r *Repository) FindLatestByTrxID(trxID string) (*models.Report, error) {
	var row models.Report
	err := r.db.Where("trx_id = ?", trxID).Order("status DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find latest report for trx %s: %w", trxID, err)
	}
	return &row, nil
}

// Insert appends one stage row. A bet_id conflict comes back as
// ErrDuplicateBet so a race loser can answer the idempotent duplicate
// response; any pre-check the caller did is only an optimization.
func (r *Repository) Insert(report *models.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateBet, report.BetID)
		}
		return fmt.Errorf("insert report %s: %w", report.BetID, err)
	}
	return nil
}

func (r *Repository) ExistsByBetID(betID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Report{}).Where("bet_id = ?", betID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count bet_id %s: %w", betID, err)
	}
	return count > 0, nil
}

// StaleRunning lists tickets whose most recent row is still running and
// older than the cutoff. Used by the reconciliation job.
func (r *Repository) StaleRunning(olderThan time.Duration) ([]models.Report, error) {
	cutoff := time.Now().Add(-olderThan)
	var rows []models.Report
	err := r.db.
		Where("flag = ? AND created_at < ?", models.FlagRunning, cutoff).
		Where("status = (SELECT MAX(status) FROM reports r2 WHERE r2.trx_id = reports.trx_id)").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list stale running reports: %w", err)
	}
	return rows, nil
}
