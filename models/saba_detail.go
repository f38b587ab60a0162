package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ===== Custom time parser for the SAB bet-detail API =====
// The API sends timestamps as 2006-01-02T15:04:05.000 with no zone.
type SabaTime struct {
	time.Time
}

func (st *SabaTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" || s == "0001-01-01T00:00:00" {
		return nil
	}
	layouts := []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05", time.RFC3339}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			st.Time = t
			return nil
		}
	}
	return nil
}

// ===== GetBetDetailByTransID response =====

type BetDetailResponse struct {
	ErrorCode int            `json:"error_code"`
	Message   string         `json:"message"`
	Data      *BetDetailData `json:"Data"`
}

// Exactly one of the three arrays is populated per ticket.
type BetDetailData struct {
	BetDetails             []BetDetail             `json:"BetDetails"`
	BetVirtualSportDetails []BetVirtualSportDetail `json:"BetVirtualSportDetails"`
	BetNumberDetails       []BetNumberDetail       `json:"BetNumberDetails"`
}

type BetDetail struct {
	TransID       string          `json:"trans_id"`
	VendorTransID string          `json:"vendor_trans_id"`
	BetType       int             `json:"bet_type"`
	BetTypeName   string          `json:"bet_type_name"`
	ParlayData    []ParlayLeg     `json:"ParlayData"`
	SportType     int             `json:"sport_type"`
	SportTypeName string          `json:"sport_type_name"`
	LeagueName    string          `json:"league_name"`
	HomeTeamName  string          `json:"home_team_name"`
	AwayTeamName  string          `json:"away_team_name"`
	BetTeam       string          `json:"bet_team"`
	Hdp           *float64        `json:"hdp"`
	Odds          *float64        `json:"odds"`
	Stake         decimal.Decimal `json:"stake"`
	Payout        decimal.Decimal `json:"payout"`
	TicketStatus  string          `json:"ticket_status"`
	Currency      string          `json:"currency"`
	TransTime     SabaTime        `json:"transaction_time"`
	SettleTime    SabaTime        `json:"settlement_time"`
}

type ParlayLeg struct {
	SportTypeName string   `json:"sport_type_name"`
	LeagueName    string   `json:"league_name"`
	HomeTeamName  string   `json:"home_team_name"`
	AwayTeamName  string   `json:"away_team_name"`
	BetTeam       string   `json:"bet_team"`
	Hdp           *float64 `json:"hdp"`
	Odds          *float64 `json:"odds"`
	TicketStatus  string   `json:"ticket_status"`
}

type BetVirtualSportDetail struct {
	TransID       string          `json:"trans_id"`
	BetType       int             `json:"bet_type"`
	BetTypeName   string          `json:"bet_type_name"`
	SportTypeName string          `json:"sport_type_name"`
	LeagueName    string          `json:"league_name"`
	HomeTeamName  string          `json:"home_team_name"`
	AwayTeamName  string          `json:"away_team_name"`
	Hdp           *float64        `json:"hdp"`
	Odds          *float64        `json:"odds"`
	Stake         decimal.Decimal `json:"stake"`
	Payout        decimal.Decimal `json:"payout"`
	TicketStatus  string          `json:"ticket_status"`
	TransTime     SabaTime        `json:"transaction_time"`
}

type BetNumberDetail struct {
	TransID      string          `json:"trans_id"`
	BetType      int             `json:"bet_type"`
	BetTypeName  string          `json:"bet_type_name"`
	GameName     string          `json:"game_name"`
	BetNum       *int            `json:"bet_num"`
	Odds         *float64        `json:"odds"`
	Stake        decimal.Decimal `json:"stake"`
	Payout       decimal.Decimal `json:"payout"`
	TicketStatus string          `json:"ticket_status"`
	TransTime    SabaTime        `json:"transaction_time"`
}
