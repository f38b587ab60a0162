package saba

import (
	"context"
	"errors"
	"strings"
	"time"

	"wagergate/config"
	"wagergate/ledger"
	"wagergate/models"
	"wagergate/player"
	"wagergate/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Service is the settlement orchestrator. Every operation runs the same
// linear pipeline: authenticate key, resolve player, check the ledger,
// normalize amounts, call the wallet, write the ledger row, map the
// outcome to a provider code. The ledger write only ever happens after a
// successful wallet call.
type Service struct {
	cfg     *config.Config
	players *player.Repository
	reports *ledger.Repository
	wallet  wallet.Gateway
	details DetailFetcher
	log     *zap.Logger
}

func NewService(cfg *config.Config, players *player.Repository, reports *ledger.Repository, gw wallet.Gateway, details DetailFetcher, log *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		players: players,
		reports: reports,
		wallet:  gw,
		details: details,
		log:     log,
	}
}

// ===== Request envelopes =====

type GetBalanceRequest struct {
	Key     string `json:"key"`
	Message struct {
		UserID string `json:"userId"`
	} `json:"message"`
}

type PlaceBetRequest struct {
	Key     string          `json:"key"`
	Message PlaceBetMessage `json:"message"`
}

type PlaceBetMessage struct {
	OperationID string          `json:"operationId"`
	UserID      string          `json:"userId"`
	TransID     string          `json:"transId"`
	BetAmount   decimal.Decimal `json:"betAmount"`
	BetTime     string          `json:"betTime"`
	BetType     int             `json:"betType"`
	IP          string          `json:"IP"`
}

type ConfirmBetRequest struct {
	Key     string `json:"key"`
	Message struct {
		OperationID string       `json:"operationId"`
		UserID      string       `json:"userId"`
		Txns        []ConfirmTxn `json:"txns"`
	} `json:"message"`
}

type ConfirmTxn struct {
	TransID string `json:"transId"`
}

type SettleRequest struct {
	Key     string `json:"key"`
	Message struct {
		OperationID string      `json:"operationId"`
		Txns        []SettleTxn `json:"txns"`
	} `json:"message"`
}

type SettleTxn struct {
	UserID  string          `json:"userId"`
	TransID string          `json:"transId"`
	Payout  decimal.Decimal `json:"payout"`
	Status  string          `json:"status"` // win / lose / void
}

type UnsettleRequest struct {
	Key     string `json:"key"`
	Message struct {
		OperationID string        `json:"operationId"`
		Txns        []UnsettleTxn `json:"txns"`
	} `json:"message"`
}

type UnsettleTxn struct {
	UserID  string `json:"userId"`
	TransID string `json:"transId"`
}

type CancelBetRequest struct {
	Key     string `json:"key"`
	Message struct {
		OperationID string      `json:"operationId"`
		UserID      string      `json:"userId"`
		Txns        []CancelTxn `json:"txns"`
	} `json:"message"`
}

type CancelTxn struct {
	TransID string `json:"transId"`
}

type AdjustBalanceRequest struct {
	Key     string `json:"key"`
	Message struct {
		OperationID string          `json:"operationId"`
		UserID      string          `json:"userId"`
		RefID       string          `json:"refId"`
		Amount      decimal.Decimal `json:"amount"` // positive credits, negative debits
		Remark      string          `json:"remark"`
	} `json:"message"`
}

type BalanceResponse struct {
	Status  int             `json:"status"`
	UserID  string          `json:"userId,omitempty"`
	Balance decimal.Decimal `json:"balance"`
	Msg     string          `json:"msg,omitempty"`
}

// ===== Operations =====

// GetBalance reads the wallet balance and answers it in provider units.
func (s *Service) GetBalance(ctx context.Context, req GetBalanceRequest) (BalanceResponse, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return BalanceResponse{}, err
	}
	if req.Message.UserID == "" {
		r := codeFor(ErrMissingParam)
		return BalanceResponse{Status: r.Status, Msg: r.Msg}, nil
	}

	p, err := s.players.FindByUsername(tenant.WebID, req.Message.UserID)
	if err != nil {
		r := codeFor(err)
		return BalanceResponse{Status: r.Status, Msg: r.Msg}, nil
	}

	env, err := s.wallet.Balance(ctx, creds(tenant), p.PlayID)
	if err != nil {
		s.log.Error("wallet balance failed", zap.String("play_id", p.PlayID), zap.Error(err))
		return BalanceResponse{Status: StatusWalletError, Msg: "Database Error"}, nil
	}
	credit, err := env.CreditValue()
	if err != nil {
		return BalanceResponse{Status: StatusWalletError, Msg: "Database Error"}, nil
	}

	display, err := s.cfg.Denormalize(credit, p.Currency)
	if err != nil {
		return BalanceResponse{Status: StatusWalletError, Msg: "Database Error"}, nil
	}
	return BalanceResponse{Status: StatusSuccess, UserID: req.Message.UserID, Balance: display}, nil
}

// PlaceBet reserves the wager and opens the ticket in the waiting state.
// A repeat of the same transId answers duplicate without touching the
// wallet again.
func (s *Service) PlaceBet(ctx context.Context, req PlaceBetRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	msg := req.Message
	if msg.UserID == "" || msg.TransID == "" || !msg.BetAmount.IsPositive() {
		return codeFor(ErrMissingParam), nil
	}

	p, err := s.players.FindByUsername(tenant.WebID, msg.UserID)
	if err != nil {
		return codeFor(err), nil
	}

	if _, err := s.reports.FindLatestByTrxID(msg.TransID); err == nil {
		return codeFor(ErrDuplicateTransaction), nil
	} else if !errors.Is(err, ledger.ErrNotFound) {
		return codeFor(err), nil
	}

	amount, err := s.cfg.Normalize(msg.BetAmount, p.Currency)
	if err != nil {
		s.log.Error("amount normalization failed", zap.String("currency", p.Currency), zap.Error(err))
		return codeFor(err), nil
	}

	report := &models.Report{
		BetID:     models.BuildBetID(models.StagePlaceBet, 1, msg.TransID),
		TrxID:     msg.TransID,
		PlayID:    p.PlayID,
		WebID:     tenant.WebID,
		Currency:  p.Currency,
		BetAmount: amount,
		BetTime:   parseBetTime(msg.BetTime),
		Flag:      models.FlagWaiting,
		Status:    1,
		IPAddress: msg.IP,
	}

	env, err := s.wallet.Wager(ctx, creds(tenant), p.PlayID, p.Currency, report.BetID, amount, report)
	if err != nil {
		s.log.Error("wager failed", zap.String("trx_id", msg.TransID), zap.Error(err))
		return fail(StatusWalletError, "Database Error"), nil
	}
	if _, err := env.CreditAfterValue(); err != nil {
		return codeFor(err), nil
	}

	if err := s.reports.Insert(report); err != nil {
		// race loser on concurrent delivery: both calls carried the same
		// bet_id as wallet txID, so the wallet collapsed the second
		// mutation and we answer the idempotent duplicate code
		return codeFor(err), nil
	}
	return ok(), nil
}

// ConfirmBet moves waiting tickets to running. No wallet call: the wager
// was already reserved at placeBet.
func (s *Service) ConfirmBet(ctx context.Context, req ConfirmBetRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	if len(req.Message.Txns) == 0 {
		return codeFor(ErrMissingParam), nil
	}

	batch := newBatch()
	for _, txn := range req.Message.Txns {
		batch.record(s.confirmOne(tenant, req.Message.UserID, txn))
	}
	return batch.response(), nil
}

func (s *Service) confirmOne(tenant config.Tenant, userID string, txn ConfirmTxn) Response {
	if txn.TransID == "" {
		return codeFor(ErrMissingParam)
	}
	if _, err := s.players.FindByUsername(tenant.WebID, userID); err != nil {
		return codeFor(err)
	}

	latest, err := s.reports.FindLatestByTrxID(txn.TransID)
	if err != nil {
		return codeFor(err)
	}
	if latest.Flag != models.FlagWaiting {
		if latest.Flag == models.FlagRunning && stageOf(latest.BetID) == models.StageConfirmBet {
			return codeFor(ErrDuplicateTransaction)
		}
		return codeFor(ErrInvalidTrxStatus)
	}

	next := nextRow(latest, models.StageConfirmBet, models.FlagRunning)
	if err := s.reports.Insert(next); err != nil {
		return codeFor(err)
	}
	return ok()
}

// Settle pays out running tickets. Each txn is enriched from the
// bet-detail API first; no settlement happens without enrichment data.
// Items are independent: one failing does not roll back its siblings.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	if len(req.Message.Txns) == 0 {
		return codeFor(ErrMissingParam), nil
	}

	batch := newBatch()
	for _, txn := range req.Message.Txns {
		batch.record(s.settleOne(ctx, tenant, txn, models.StageSettle))
	}
	return batch.response(), nil
}

// Resettle corrects the payout of an already-settled ticket, including
// moves between win, lose and void outcomes. The ticket stays settled.
func (s *Service) Resettle(ctx context.Context, req SettleRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	if len(req.Message.Txns) == 0 {
		return codeFor(ErrMissingParam), nil
	}

	batch := newBatch()
	for _, txn := range req.Message.Txns {
		batch.record(s.settleOne(ctx, tenant, txn, models.StageResettle))
	}
	return batch.response(), nil
}

func (s *Service) settleOne(ctx context.Context, tenant config.Tenant, txn SettleTxn, stage string) Response {
	if txn.TransID == "" || txn.UserID == "" {
		return codeFor(ErrMissingParam)
	}
	p, err := s.players.FindByUsername(tenant.WebID, txn.UserID)
	if err != nil {
		return codeFor(err)
	}

	latest, err := s.reports.FindLatestByTrxID(txn.TransID)
	if err != nil {
		return codeFor(err)
	}
	switch stage {
	case models.StageSettle:
		// a never-confirmed ticket cannot settle: that is a not-found,
		// not a state conflict
		if latest.Flag == models.FlagWaiting {
			return codeFor(ErrTransactionNotFound)
		}
		if latest.Flag != models.FlagRunning {
			return codeFor(ErrInvalidTrxStatus)
		}
	case models.StageResettle:
		if latest.Flag != models.FlagSettled {
			return codeFor(ErrInvalidTrxStatus)
		}
	}

	enriched, err := s.details.Fetch(ctx, txn.TransID)
	if err != nil {
		s.log.Warn("enrichment failed", zap.String("trx_id", txn.TransID), zap.Error(err))
		return codeFor(err)
	}

	payout, err := s.cfg.Normalize(enriched.Payout, p.Currency)
	if err != nil {
		return codeFor(err)
	}

	next := nextRow(latest, stage, models.FlagSettled)
	next.PayoutAmount = payout
	applyEnrichment(next, enriched)
	if txn.Status != "" {
		next.Result = txn.Status
	}

	var env *wallet.Envelope
	if stage == models.StageResettle {
		env, err = s.wallet.Resettle(ctx, creds(tenant), p.PlayID, p.Currency, next.BetID, payout, next)
	} else {
		env, err = s.wallet.Payout(ctx, creds(tenant), p.PlayID, p.Currency, next.BetID, payout, next)
	}
	if err != nil {
		s.log.Error("wallet settle failed", zap.String("trx_id", txn.TransID), zap.Error(err))
		return fail(StatusWalletError, "Database Error")
	}
	if _, err := env.CreditAfterValue(); err != nil {
		return codeFor(err)
	}

	if err := s.reports.Insert(next); err != nil {
		return codeFor(err)
	}
	return ok()
}

// Unsettle reverses a settlement: payout returns to zero and the ticket
// goes back to running so it can settle again later.
func (s *Service) Unsettle(ctx context.Context, req UnsettleRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	if len(req.Message.Txns) == 0 {
		return codeFor(ErrMissingParam), nil
	}

	batch := newBatch()
	for _, txn := range req.Message.Txns {
		batch.record(s.unsettleOne(ctx, tenant, txn))
	}
	return batch.response(), nil
}

func (s *Service) unsettleOne(ctx context.Context, tenant config.Tenant, txn UnsettleTxn) Response {
	if txn.TransID == "" || txn.UserID == "" {
		return codeFor(ErrMissingParam)
	}
	p, err := s.players.FindByUsername(tenant.WebID, txn.UserID)
	if err != nil {
		return codeFor(err)
	}

	latest, err := s.reports.FindLatestByTrxID(txn.TransID)
	if err != nil {
		return codeFor(err)
	}
	if latest.Flag != models.FlagSettled {
		return codeFor(ErrInvalidTrxStatus)
	}

	next := nextRow(latest, models.StageUnsettle, models.FlagRunning)
	next.PayoutAmount = decimal.Zero

	env, err := s.wallet.Resettle(ctx, creds(tenant), p.PlayID, p.Currency, next.BetID, decimal.Zero, next)
	if err != nil {
		s.log.Error("wallet unsettle failed", zap.String("trx_id", txn.TransID), zap.Error(err))
		return fail(StatusWalletError, "Database Error")
	}
	if _, err := env.CreditAfterValue(); err != nil {
		return codeFor(err)
	}

	if err := s.reports.Insert(next); err != nil {
		return codeFor(err)
	}
	return ok()
}

// CancelBet voids a waiting ticket and refunds the reserved wager.
func (s *Service) CancelBet(ctx context.Context, req CancelBetRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	if len(req.Message.Txns) == 0 {
		return codeFor(ErrMissingParam), nil
	}

	batch := newBatch()
	for _, txn := range req.Message.Txns {
		batch.record(s.cancelOne(ctx, tenant, req.Message.UserID, txn))
	}
	return batch.response(), nil
}

func (s *Service) cancelOne(ctx context.Context, tenant config.Tenant, userID string, txn CancelTxn) Response {
	if txn.TransID == "" {
		return codeFor(ErrMissingParam)
	}
	p, err := s.players.FindByUsername(tenant.WebID, userID)
	if err != nil {
		return codeFor(err)
	}

	latest, err := s.reports.FindLatestByTrxID(txn.TransID)
	if err != nil {
		return codeFor(err)
	}
	if latest.Flag != models.FlagWaiting {
		return codeFor(ErrInvalidTrxStatus)
	}

	next := nextRow(latest, models.StageCancel, models.FlagCancelled)

	env, err := s.wallet.Cancel(ctx, creds(tenant), p.PlayID, p.Currency, next.BetID, latest.BetAmount, next)
	if err != nil {
		s.log.Error("wallet cancel failed", zap.String("trx_id", txn.TransID), zap.Error(err))
		return fail(StatusWalletError, "Database Error")
	}
	if _, err := env.CreditAfterValue(); err != nil {
		return codeFor(err)
	}

	if err := s.reports.Insert(next); err != nil {
		return codeFor(err)
	}
	return ok()
}

// AdjustBalance applies a standalone credit or debit outside any bet
// lifecycle. The refId is the idempotency basis: a repeat answers
// duplicate without a second transfer.
func (s *Service) AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (Response, error) {
	tenant, err := s.cfg.Authenticate(req.Key)
	if err != nil {
		return Response{}, err
	}
	msg := req.Message
	if msg.UserID == "" || msg.RefID == "" || msg.Amount.IsZero() {
		return codeFor(ErrMissingParam), nil
	}

	p, err := s.players.FindByUsername(tenant.WebID, msg.UserID)
	if err != nil {
		return codeFor(err), nil
	}

	betID := models.BuildBetID(models.StageAdjust, 1, msg.RefID)
	if exists, err := s.reports.ExistsByBetID(betID); err != nil {
		return codeFor(err), nil
	} else if exists {
		return codeFor(ErrDuplicateTransaction), nil
	}

	amount, err := s.cfg.Normalize(msg.Amount.Abs(), p.Currency)
	if err != nil {
		return codeFor(err), nil
	}

	report := &models.Report{
		BetID:    betID,
		TrxID:    msg.RefID,
		PlayID:   p.PlayID,
		WebID:    tenant.WebID,
		Currency: p.Currency,
		BetTime:  time.Now(),
		GameCode: "Adjustment",
		Event:    msg.Remark,
		Flag:     models.FlagBonus,
		Status:   1,
	}

	var env *wallet.Envelope
	if msg.Amount.IsPositive() {
		report.PayoutAmount = amount
		env, err = s.wallet.TransferIn(ctx, creds(tenant), p.PlayID, p.Currency, betID, amount, report)
	} else {
		report.BetAmount = amount
		env, err = s.wallet.TransferOut(ctx, creds(tenant), p.PlayID, p.Currency, betID, amount, report)
	}
	if err != nil {
		s.log.Error("wallet adjustment failed", zap.String("ref_id", msg.RefID), zap.Error(err))
		return fail(StatusWalletError, "Database Error"), nil
	}
	if _, err := env.CreditAfterValue(); err != nil {
		return codeFor(err), nil
	}

	if err := s.reports.Insert(report); err != nil {
		return codeFor(err), nil
	}
	return ok(), nil
}

// ===== helpers =====

func creds(t config.Tenant) wallet.Credentials {
	return wallet.Credentials{WebID: t.WebID, Status: t.Status}
}

// nextRow clones the lifecycle-stable fields of the latest row into a new
// stage row with an incremented counter.
func nextRow(latest *models.Report, stage string, flag models.Flag) *models.Report {
	status := latest.Status + 1
	return &models.Report{
		BetID:        models.BuildBetID(stage, status, latest.TrxID),
		TrxID:        latest.TrxID,
		PlayID:       latest.PlayID,
		WebID:        latest.WebID,
		Currency:     latest.Currency,
		BetAmount:    latest.BetAmount,
		PayoutAmount: latest.PayoutAmount,
		BetTime:      latest.BetTime,
		BetChoice:    latest.BetChoice,
		GameCode:     latest.GameCode,
		SportsType:   latest.SportsType,
		Event:        latest.Event,
		Match:        latest.Match,
		Hdp:          latest.Hdp,
		Odds:         latest.Odds,
		Result:       latest.Result,
		Flag:         flag,
		Status:       status,
		IPAddress:    latest.IPAddress,
	}
}

func applyEnrichment(r *models.Report, e *Enrichment) {
	r.BetChoice = e.BetChoice
	r.GameCode = e.GameCode
	r.SportsType = e.SportsType
	r.Event = e.Event
	r.Match = e.Match
	r.Hdp = e.Hdp
	r.Odds = e.Odds
	r.Result = e.Result
	r.RawDetail = datatypes.JSON(e.Raw)
}

func stageOf(betID string) string {
	if i := strings.Index(betID, "-"); i > 0 {
		return betID[:i]
	}
	return betID
}

func parseBetTime(s string) time.Time {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05.000", "2006-01-02 15:04:05"}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// batch keeps the first failing item's code while later items still
// process; successful items commit regardless. This mirrors the
// provider's single-status-code protocol over partial commits.
type batch struct {
	first *Response
}

func newBatch() *batch {
	return &batch{}
}

func (b *batch) record(r Response) {
	if r.Status != StatusSuccess && b.first == nil {
		b.first = &r
	}
}

func (b *batch) response() Response {
	if b.first != nil {
		return *b.first
	}
	return ok()
}
