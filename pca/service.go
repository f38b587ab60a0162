package pca

import (
	"context"
	"errors"
	"time"

	"wagergate/config"
	"wagergate/ledger"
	"wagergate/models"
	"wagergate/player"
	"wagergate/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Provider codes for the PCA envelope.
const (
	CodeOK                = 0
	CodeInvalidToken      = 1000
	CodeMissingParam      = 1001
	CodePlayerNotFound    = 2001
	CodeInsufficientFunds = 3001
	CodeInvalidAmount     = 3002
	CodeDatabaseError     = 5001
)

const sessionTTL = 12 * time.Hour

// Response is the PCA callback envelope, transport-200 always.
type Response struct {
	Error       int             `json:"error"`
	Description string          `json:"description"`
	Currency    string          `json:"currency,omitempty"`
	Cash        decimal.Decimal `json:"cash"`
}

// Service is the PCA slots integration: same pipeline as the sportsbook
// orchestrator, without the multi-stage lifecycle. Bets open running,
// settle closes them, refund voids them.
type Service struct {
	cfg     *config.Config
	players *player.Repository
	reports *ledger.Repository
	wallet  wallet.Gateway
	log     *zap.Logger
}

func NewService(cfg *config.Config, players *player.Repository, reports *ledger.Repository, gw wallet.Gateway, log *zap.Logger) *Service {
	return &Service{cfg: cfg, players: players, reports: reports, wallet: gw, log: log}
}

// Launch mints a session token for a registered player.
func (s *Service) Launch(playID string) (string, error) {
	p, err := s.players.FindByPlayID(playID)
	if err != nil {
		return "", err
	}
	return MintToken(s.cfg.PCASecret, p.PlayID, p.WebID, p.Currency, sessionTTL)
}

// Authenticate verifies a session token and answers the current balance.
func (s *Service) Authenticate(ctx context.Context, token string) Response {
	claims, err := VerifyToken(s.cfg.PCASecret, token)
	if err != nil {
		return Response{Error: CodeInvalidToken, Description: "Invalid token"}
	}
	return s.balanceFor(ctx, claims)
}

func (s *Service) Balance(ctx context.Context, token string) Response {
	claims, err := VerifyToken(s.cfg.PCASecret, token)
	if err != nil {
		return Response{Error: CodeInvalidToken, Description: "Invalid token"}
	}
	return s.balanceFor(ctx, claims)
}

type BetRequest struct {
	Token     string          `json:"token"`
	Reference string          `json:"reference"`
	RoundID   string          `json:"roundId"`
	GameID    string          `json:"gameId"`
	Amount    decimal.Decimal `json:"amount"`
}

// Bet wagers against the wallet and opens a running ledger row. A repeat
// of the same reference replays the current balance.
func (s *Service) Bet(ctx context.Context, req BetRequest) Response {
	claims, err := VerifyToken(s.cfg.PCASecret, req.Token)
	if err != nil {
		return Response{Error: CodeInvalidToken, Description: "Invalid token"}
	}
	if req.Reference == "" || req.RoundID == "" {
		return Response{Error: CodeMissingParam, Description: "Missing required parameters"}
	}
	if !req.Amount.IsPositive() {
		return Response{Error: CodeInvalidAmount, Description: "Invalid amount"}
	}

	betID := models.BuildBetID(models.StagePlaceBet, 1, req.Reference)
	if exists, err := s.reports.ExistsByBetID(betID); err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	} else if exists {
		return s.balanceFor(ctx, claims)
	}

	amount, err := s.cfg.Normalize(req.Amount, claims.Currency)
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}

	report := &models.Report{
		BetID:     betID,
		TrxID:     req.Reference,
		PlayID:    claims.PlayID,
		WebID:     claims.WebID,
		Currency:  claims.Currency,
		BetAmount: amount,
		BetTime:   time.Now(),
		GameCode:  req.GameID,
		Event:     req.RoundID,
		Flag:      models.FlagRunning,
		Status:    1,
	}

	env, err := s.wallet.Wager(ctx, s.creds(claims), claims.PlayID, claims.Currency, betID, amount, report)
	if err != nil {
		s.log.Error("pca wager failed", zap.String("reference", req.Reference), zap.Error(err))
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	after, err := env.CreditAfterValue()
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficient) {
			return Response{Error: CodeInsufficientFunds, Description: "Insufficient funds", Currency: claims.Currency}
		}
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}

	if err := s.reports.Insert(report); err != nil {
		if errors.Is(err, ledger.ErrDuplicateBet) {
			return s.balanceFor(ctx, claims)
		}
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	return s.success(claims, after)
}

type SettleRequest struct {
	Token     string          `json:"token"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Result    string          `json:"result"`
}

// Settle pays out a running round. Settling twice replays the balance.
func (s *Service) Settle(ctx context.Context, req SettleRequest) Response {
	claims, err := VerifyToken(s.cfg.PCASecret, req.Token)
	if err != nil {
		return Response{Error: CodeInvalidToken, Description: "Invalid token"}
	}
	if req.Reference == "" {
		return Response{Error: CodeMissingParam, Description: "Missing required parameters"}
	}

	latest, err := s.reports.FindLatestByTrxID(req.Reference)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return Response{Error: CodePlayerNotFound, Description: "Round not found"}
		}
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	if latest.Flag != models.FlagRunning {
		return s.balanceFor(ctx, claims)
	}

	amount, err := s.cfg.Normalize(req.Amount, claims.Currency)
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}

	next := &models.Report{
		BetID:        models.BuildBetID(models.StageSettle, latest.Status+1, latest.TrxID),
		TrxID:        latest.TrxID,
		PlayID:       latest.PlayID,
		WebID:        latest.WebID,
		Currency:     latest.Currency,
		BetAmount:    latest.BetAmount,
		PayoutAmount: amount,
		BetTime:      latest.BetTime,
		GameCode:     latest.GameCode,
		Event:        latest.Event,
		Result:       req.Result,
		Flag:         models.FlagSettled,
		Status:       latest.Status + 1,
	}

	env, err := s.wallet.Payout(ctx, s.creds(claims), claims.PlayID, claims.Currency, next.BetID, amount, next)
	if err != nil {
		s.log.Error("pca payout failed", zap.String("reference", req.Reference), zap.Error(err))
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	after, err := env.CreditAfterValue()
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}

	if err := s.reports.Insert(next); err != nil {
		if errors.Is(err, ledger.ErrDuplicateBet) {
			return s.balanceFor(ctx, claims)
		}
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	return s.success(claims, after)
}

type RefundRequest struct {
	Token     string `json:"token"`
	Reference string `json:"reference"`
}

// Refund voids a running round and returns the wager.
func (s *Service) Refund(ctx context.Context, req RefundRequest) Response {
	claims, err := VerifyToken(s.cfg.PCASecret, req.Token)
	if err != nil {
		return Response{Error: CodeInvalidToken, Description: "Invalid token"}
	}
	if req.Reference == "" {
		return Response{Error: CodeMissingParam, Description: "Missing required parameters"}
	}

	latest, err := s.reports.FindLatestByTrxID(req.Reference)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return Response{Error: CodePlayerNotFound, Description: "Round not found"}
		}
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	if latest.Flag != models.FlagRunning {
		return s.balanceFor(ctx, claims)
	}

	next := &models.Report{
		BetID:     models.BuildBetID(models.StageCancel, latest.Status+1, latest.TrxID),
		TrxID:     latest.TrxID,
		PlayID:    latest.PlayID,
		WebID:     latest.WebID,
		Currency:  latest.Currency,
		BetAmount: latest.BetAmount,
		BetTime:   latest.BetTime,
		GameCode:  latest.GameCode,
		Event:     latest.Event,
		Flag:      models.FlagCancelled,
		Status:    latest.Status + 1,
	}

	env, err := s.wallet.Cancel(ctx, s.creds(claims), claims.PlayID, claims.Currency, next.BetID, latest.BetAmount, next)
	if err != nil {
		s.log.Error("pca refund failed", zap.String("reference", req.Reference), zap.Error(err))
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	after, err := env.CreditAfterValue()
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}

	if err := s.reports.Insert(next); err != nil {
		if errors.Is(err, ledger.ErrDuplicateBet) {
			return s.balanceFor(ctx, claims)
		}
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	return s.success(claims, after)
}

func (s *Service) creds(c *SessionClaims) wallet.Credentials {
	return wallet.Credentials{WebID: c.WebID, Status: "1"}
}

func (s *Service) balanceFor(ctx context.Context, claims *SessionClaims) Response {
	env, err := s.wallet.Balance(ctx, s.creds(claims), claims.PlayID)
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	credit, err := env.CreditValue()
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	return s.success(claims, credit)
}

func (s *Service) success(claims *SessionClaims, canonical decimal.Decimal) Response {
	display, err := s.cfg.Denormalize(canonical, claims.Currency)
	if err != nil {
		return Response{Error: CodeDatabaseError, Description: "DB error"}
	}
	return Response{Error: CodeOK, Description: "Success", Currency: claims.Currency, Cash: display}
}
