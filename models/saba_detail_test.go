package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSabaTimeUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2026-01-02T15:04:05.123"`, time.Date(2026, 1, 2, 15, 4, 5, 123000000, time.UTC)},
		{`"2026-01-02T15:04:05"`, time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
		{`"0001-01-01T00:00:00"`, time.Time{}},
	}
	for _, tc := range cases {
		var st SabaTime
		if err := json.Unmarshal([]byte(tc.in), &st); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if !st.Time.Equal(tc.want) {
			t.Fatalf("unmarshal %s = %v, want %v", tc.in, st.Time, tc.want)
		}
	}
}

func TestBuildBetID(t *testing.T) {
	if got := BuildBetID(StageSettle, 3, "TRX-9"); got != "SETTLE-3-TRX-9" {
		t.Fatalf("BuildBetID = %q", got)
	}
}

func TestBetDetailResponseShapes(t *testing.T) {
	payload := `{
		"error_code": 0,
		"message": "",
		"Data": {
			"BetDetails": [{
				"trans_id": "T1",
				"bet_type": 29,
				"bet_type_name": "Mix Parlay",
				"ParlayData": [{"bet_team": "h", "odds": 1.9}],
				"odds": 7.41,
				"stake": 5,
				"payout": 37.05,
				"ticket_status": "win",
				"transaction_time": "2026-01-02T15:04:05.000"
			}]
		}
	}`

	var resp BetDetailResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data == nil || len(resp.Data.BetDetails) != 1 {
		t.Fatal("BetDetails not populated")
	}
	d := resp.Data.BetDetails[0]
	if d.ParlayData == nil || len(d.ParlayData) != 1 {
		t.Fatal("ParlayData not populated")
	}
	if d.Odds == nil || *d.Odds != 7.41 {
		t.Fatalf("odds = %v", d.Odds)
	}
	if d.TransTime.IsZero() {
		t.Fatal("transaction_time not parsed")
	}
}
