package saba

import (
	"errors"

	"wagergate/config"
	"wagergate/ledger"
	"wagergate/player"
	"wagergate/wallet"
)

// Provider response codes. Business errors ride the {status, msg}
// envelope; the invalid-key case alone uses {error_code, message}.
const (
	StatusSuccess           = 0
	StatusDuplicateTrx      = 1
	StatusMissingParam      = 101
	StatusPlayerNotFound    = 203
	StatusInvalidTrxStatus  = 309
	ErrorCodeInvalidKey     = 311
	StatusInsufficientFunds = 502
	StatusTrxNotFound       = 504
	StatusWalletError       = 901
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidTrxStatus     = errors.New("invalid transaction status")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrMissingParam         = errors.New("missing required parameter")
)

// Response is the universal business envelope, always transport-200.
type Response struct {
	Status int    `json:"status"`
	Msg    string `json:"msg,omitempty"`
}

func ok() Response {
	return Response{Status: StatusSuccess}
}

func fail(status int, msg string) Response {
	return Response{Status: status, Msg: msg}
}

// codeFor maps the error taxonomy onto provider codes. External
// dependency failures (wallet, persistence) collapse into the generic
// database error so the provider retries the callback.
func codeFor(err error) Response {
	switch {
	case errors.Is(err, ErrMissingParam):
		return fail(StatusMissingParam, "Missing Required Parameter")
	case errors.Is(err, player.ErrNotFound):
		return fail(StatusPlayerNotFound, "Player Not Found")
	case errors.Is(err, ErrDuplicateTransaction), errors.Is(err, ledger.ErrDuplicateBet):
		return fail(StatusDuplicateTrx, "Duplicate Transaction")
	case errors.Is(err, ErrInvalidTrxStatus):
		return fail(StatusInvalidTrxStatus, "Invalid Transaction Status")
	case errors.Is(err, ErrTransactionNotFound), errors.Is(err, ledger.ErrNotFound):
		return fail(StatusTrxNotFound, "Transaction Not Found")
	case errors.Is(err, wallet.ErrInsufficient):
		return fail(StatusInsufficientFunds, "Insufficient Funds")
	case errors.Is(err, config.ErrUnknownCurrency):
		return fail(StatusWalletError, "Database Error")
	default:
		return fail(StatusWalletError, "Database Error")
	}
}
