package saba

import (
	"errors"
	"fmt"
	"testing"

	"wagergate/config"
	"wagergate/ledger"
	"wagergate/player"
	"wagergate/wallet"

	"github.com/stretchr/testify/assert"
)

func TestCodeForMapsEverySentinel(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrMissingParam, StatusMissingParam},
		{ErrDuplicateTransaction, StatusDuplicateTrx},
		{ErrInvalidTrxStatus, StatusInvalidTrxStatus},
		{ErrTransactionNotFound, StatusTrxNotFound},
		{ledger.ErrNotFound, StatusTrxNotFound},
		{ledger.ErrDuplicateBet, StatusDuplicateTrx},
		{player.ErrNotFound, StatusPlayerNotFound},
		{wallet.ErrInsufficient, StatusInsufficientFunds},
		{wallet.ErrWallet, StatusWalletError},
		{config.ErrUnknownCurrency, StatusWalletError},
		{errors.New("anything else"), StatusWalletError},
	}
	for _, tc := range cases {
		got := codeFor(tc.err)
		assert.Equal(t, tc.want, got.Status, "codeFor(%v)", tc.err)
		assert.NotEmpty(t, got.Msg)
	}

	// wrapped sentinels map the same way
	wrapped := fmt.Errorf("%w: trx T1", ErrInvalidTrxStatus)
	assert.Equal(t, StatusInvalidTrxStatus, codeFor(wrapped).Status)
}
