package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Flag is the lifecycle state of a ticket, carried on the most recent
// reports row for its trx_id.
type Flag string

const (
	FlagWaiting   Flag = "waiting"
	FlagRunning   Flag = "running"
	FlagSettled   Flag = "settled"
	FlagCancelled Flag = "cancelled"
	FlagBonus     Flag = "bonus"
)

// Stage prefixes embedded in bet_id.
const (
	StagePlaceBet   = "BET"
	StageConfirmBet = "CONFIRM"
	StageSettle     = "SETTLE"
	StageResettle   = "RESETTLE"
	StageUnsettle   = "UNSETTLE"
	StageCancel     = "CANCEL"
	StageAdjust     = "ADJUST"
)

// Report is one settlement-stage application. Rows are append-only: every
// lifecycle transition inserts a new row with an incremented Status counter,
// and bet_id uniqueness is the idempotency arbiter.
type Report struct {
	gorm.Model

	BetID string `gorm:"uniqueIndex;size:128" json:"bet_id"`
	TrxID string `gorm:"index;size:64" json:"trx_id"`

	PlayID   string `gorm:"size:32;index" json:"play_id"`
	WebID    string `gorm:"size:32;index" json:"web_id"`
	Currency string `gorm:"size:8" json:"currency"`

	BetAmount    decimal.Decimal `gorm:"type:numeric(20,4)" json:"bet_amount"`
	PayoutAmount decimal.Decimal `gorm:"type:numeric(20,4)" json:"payout_amount"`
	BetTime      time.Time       `json:"bet_time"`

	BetChoice  string `gorm:"size:128" json:"bet_choice"`
	GameCode   string `gorm:"size:64" json:"game_code"`
	SportsType string `gorm:"size:64" json:"sports_type"`
	Event      string `gorm:"size:128" json:"event"`
	Match      string `gorm:"size:128" json:"match"`
	Hdp        string `gorm:"size:32" json:"hdp"`
	Odds       string `gorm:"size:32" json:"odds"`
	Result     string `gorm:"size:32" json:"result"`

	Flag Flag `gorm:"size:16;index" json:"flag"`

	// Status is the 1-based stage counter for this trx_id, embedded in
	// BetID as {stage}-{status}-{trx_id}. It carries no other semantics.
	Status int `gorm:"index" json:"status"`

	IPAddress string         `gorm:"size:45" json:"ip_address"`
	RawDetail datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

// BetID derives the idempotency key for one stage application.
func BuildBetID(stage string, status int, trxID string) string {
	return fmt.Sprintf("%s-%d-%s", stage, status, trxID)
}
