package wallet

import (
	"context"
	"errors"

	"wagergate/models"

	"github.com/shopspring/decimal"
)

// StatusOK is the wallet's success sentinel; anything else on the
// envelope is a wallet error, except the designated insufficient-funds
// code which callers map to their own provider code.
const (
	StatusOK           = 2100
	StatusInsufficient = 2102
)

var (
	ErrWallet       = errors.New("wallet error")
	ErrInsufficient = errors.New("insufficient funds")
)

// Credentials identify the tenant on whose ledger the wallet operates.
type Credentials struct {
	WebID  string
	Status string
}

// Envelope is the wallet's response. Balance reads populate Credit;
// mutations populate CreditAfter. A nil expected field is a wallet error.
type Envelope struct {
	StatusCode  int              `json:"status_code"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
	CreditAfter *decimal.Decimal `json:"credit_after,omitempty"`
}

// CreditValue validates the envelope of a balance read.
func (e *Envelope) CreditValue() (decimal.Decimal, error) {
	if err := e.check(); err != nil {
		return decimal.Zero, err
	}
	if e.Credit == nil {
		return decimal.Zero, errors.New("wallet envelope missing credit")
	}
	return *e.Credit, nil
}

// CreditAfterValue validates the envelope of a balance mutation.
func (e *Envelope) CreditAfterValue() (decimal.Decimal, error) {
	if err := e.check(); err != nil {
		return decimal.Zero, err
	}
	if e.CreditAfter == nil {
		return decimal.Zero, errors.New("wallet envelope missing credit_after")
	}
	return *e.CreditAfter, nil
}

func (e *Envelope) check() error {
	if e == nil {
		return errors.New("nil wallet envelope")
	}
	switch e.StatusCode {
	case StatusOK:
		return nil
	case StatusInsufficient:
		return ErrInsufficient
	default:
		return ErrWallet
	}
}

// Gateway is the sole mutator of player balance. Every mutation carries
// the report row about to be written and the row's bet_id as the
// idempotency txID: two deliveries of the same stage present the same
// txID, so the wallet's own ledger can collapse the second mutation.
type Gateway interface {
	Balance(ctx context.Context, creds Credentials, playID string) (*Envelope, error)
	Wager(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error)
	Payout(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error)
	Resettle(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error)
	Cancel(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error)
	TransferIn(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error)
	TransferOut(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error)
}
