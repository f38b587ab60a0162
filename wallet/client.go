package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"wagergate/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client talks to the wallet service over HTTP. No retry here: a failed
// call surfaces immediately and the upstream provider re-delivers the
// callback.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient, log: log}
}

type mutationPayload struct {
	WebID    string          `json:"web_id"`
	Status   string          `json:"status"`
	PlayID   string          `json:"play_id"`
	Currency string          `json:"currency,omitempty"`
	TrxID    string          `json:"trx_id,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Report   *models.Report  `json:"report,omitempty"`
}

func (c *Client) Balance(ctx context.Context, creds Credentials, playID string) (*Envelope, error) {
	return c.post(ctx, "/v1/balance", mutationPayload{
		WebID:  creds.WebID,
		Status: creds.Status,
		PlayID: playID,
	})
}

func (c *Client) Wager(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.mutate(ctx, "/v1/wager", creds, playID, currency, txID, amount, report)
}

func (c *Client) Payout(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.mutate(ctx, "/v1/payout", creds, playID, currency, txID, amount, report)
}

func (c *Client) Resettle(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.mutate(ctx, "/v1/resettle", creds, playID, currency, txID, amount, report)
}

func (c *Client) Cancel(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.mutate(ctx, "/v1/cancel", creds, playID, currency, txID, amount, report)
}

func (c *Client) TransferIn(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.mutate(ctx, "/v1/transfer-in", creds, playID, currency, txID, amount, report)
}

func (c *Client) TransferOut(ctx context.Context, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.mutate(ctx, "/v1/transfer-out", creds, playID, currency, txID, amount, report)
}

func (c *Client) mutate(ctx context.Context, path string, creds Credentials, playID, currency, txID string, amount decimal.Decimal, report *models.Report) (*Envelope, error) {
	return c.post(ctx, path, mutationPayload{
		WebID:    creds.WebID,
		Status:   creds.Status,
		PlayID:   playID,
		Currency: currency,
		TrxID:    txID,
		Amount:   amount,
		Report:   report,
	})
}

func (c *Client) post(ctx context.Context, path string, payload mutationPayload) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal wallet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build wallet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWallet, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrWallet, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("wallet non-200", zap.String("path", path), zap.Int("code", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %s", ErrWallet, resp.Status)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrWallet, err)
	}
	return &env, nil
}
