package saba

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"wagergate/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	betTypeOutright  = 10
	betTypeMixParlay = 29
)

const placeholder = "-"

// Enrichment is the normalized settlement metadata derived from one
// GetBetDetailByTransID response, whatever shape the upstream used.
type Enrichment struct {
	BetChoice  string
	GameCode   string
	SportsType string
	Event      string
	Match      string
	Hdp        string
	Odds       string
	Result     string

	Stake   decimal.Decimal
	Payout  decimal.Decimal
	BetTime time.Time

	Raw json.RawMessage
}

// DetailFetcher is the upstream bet-detail dependency of the orchestrator.
type DetailFetcher interface {
	Fetch(ctx context.Context, transID string) (*Enrichment, error)
}

// detailVariant is the explicit classification of the upstream response:
// exactly one variant applies per ticket.
type detailVariant int

const (
	variantSingle detailVariant = iota
	variantParlay
	variantOutright
	variantNumber
	variantVirtual
)

// BetDetailClient fetches and normalizes settlement metadata from the
// provider's bet-detail API.
type BetDetailClient struct {
	baseURL  string
	vendorID string
	http     *http.Client
	log      *zap.Logger
}

func NewBetDetailClient(baseURL, vendorID string, httpClient *http.Client, log *zap.Logger) *BetDetailClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BetDetailClient{baseURL: baseURL, vendorID: vendorID, http: httpClient, log: log}
}

func (c *BetDetailClient) Fetch(ctx context.Context, transID string) (*Enrichment, error) {
	payload, _ := json.Marshal(map[string]string{
		"vendor_id": c.vendorID,
		"trans_id":  transID,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/GetBetDetailByTransID", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("build bet-detail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: bet-detail call for %s: %v", ErrTransactionNotFound, transID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read bet-detail response: %v", ErrTransactionNotFound, err)
	}

	var parsed models.BetDetailResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode bet-detail response: %v", ErrTransactionNotFound, err)
	}
	if parsed.ErrorCode != 0 {
		c.log.Warn("bet-detail API error",
			zap.String("trans_id", transID),
			zap.Int("error_code", parsed.ErrorCode),
			zap.String("message", parsed.Message))
		return nil, fmt.Errorf("%w: bet-detail error_code %d", ErrTransactionNotFound, parsed.ErrorCode)
	}

	enriched, err := Normalize(parsed.Data)
	if err != nil {
		return nil, err
	}
	enriched.Raw = raw
	return enriched, nil
}

// classify inspects which array the upstream populated and produces the
// variant; an empty response is a transaction-not-found condition.
func classify(data *models.BetDetailData) (detailVariant, error) {
	switch {
	case data == nil:
		return 0, fmt.Errorf("%w: empty bet-detail payload", ErrTransactionNotFound)
	case len(data.BetDetails) > 0:
		d := data.BetDetails[0]
		if d.ParlayData != nil {
			return variantParlay, nil
		}
		if d.BetType == betTypeOutright {
			return variantOutright, nil
		}
		return variantSingle, nil
	case len(data.BetVirtualSportDetails) > 0:
		return variantVirtual, nil
	case len(data.BetNumberDetails) > 0:
		return variantNumber, nil
	default:
		return 0, fmt.Errorf("%w: no bet detail arrays populated", ErrTransactionNotFound)
	}
}

// Normalize flattens the four mutually exclusive response shapes into one
// enrichment record.
func Normalize(data *models.BetDetailData) (*Enrichment, error) {
	variant, err := classify(data)
	if err != nil {
		return nil, err
	}

	switch variant {
	case variantParlay:
		d := data.BetDetails[0]
		return &Enrichment{
			BetChoice:  placeholder,
			GameCode:   strconv.Itoa(d.BetType),
			SportsType: "Mix Parlay",
			Event:      placeholder,
			Match:      "Mix Parlay",
			Hdp:        placeholder,
			Odds:       formatFloat(d.Odds),
			Result:     d.TicketStatus,
			Stake:      d.Stake,
			Payout:     d.Payout,
			BetTime:    d.TransTime.Time,
		}, nil

	case variantOutright:
		d := data.BetDetails[0]
		return &Enrichment{
			BetChoice:  placeholder,
			GameCode:   d.BetTypeName,
			SportsType: d.SportTypeName,
			Event:      d.LeagueName,
			Match:      placeholder,
			Hdp:        placeholder,
			Odds:       formatFloat(d.Odds),
			Result:     d.TicketStatus,
			Stake:      d.Stake,
			Payout:     d.Payout,
			BetTime:    d.TransTime.Time,
		}, nil

	case variantNumber:
		d := data.BetNumberDetails[0]
		return &Enrichment{
			BetChoice:  placeholder,
			GameCode:   "Number Game",
			SportsType: placeholder,
			Event:      placeholder,
			Match:      placeholder,
			Hdp:        placeholder,
			Odds:       formatFloat(d.Odds),
			Result:     d.TicketStatus,
			Stake:      d.Stake,
			Payout:     d.Payout,
			BetTime:    d.TransTime.Time,
		}, nil

	case variantVirtual:
		d := data.BetVirtualSportDetails[0]
		return &Enrichment{
			BetChoice:  orPlaceholder(d.HomeTeamName),
			GameCode:   d.BetTypeName,
			SportsType: d.SportTypeName,
			Event:      d.LeagueName,
			Match:      matchName(d.HomeTeamName, d.AwayTeamName),
			Hdp:        formatFloat(d.Hdp),
			Odds:       formatFloat(d.Odds),
			Result:     d.TicketStatus,
			Stake:      d.Stake,
			Payout:     d.Payout,
			BetTime:    d.TransTime.Time,
		}, nil

	default:
		d := data.BetDetails[0]
		return &Enrichment{
			BetChoice:  orPlaceholder(d.HomeTeamName),
			GameCode:   d.BetTypeName,
			SportsType: d.SportTypeName,
			Event:      d.LeagueName,
			Match:      matchName(d.HomeTeamName, d.AwayTeamName),
			Hdp:        formatFloat(d.Hdp),
			Odds:       formatFloat(d.Odds),
			Result:     d.TicketStatus,
			Stake:      d.Stake,
			Payout:     d.Payout,
			BetTime:    d.TransTime.Time,
		}, nil
	}
}

func matchName(home, away string) string {
	if home == "" && away == "" {
		return placeholder
	}
	return fmt.Sprintf("%s vs %s", home, away)
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func formatFloat(v *float64) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
