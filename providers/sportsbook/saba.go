package sportsbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wagergate/player"
	"wagergate/providers"

	"go.uber.org/zap"
)

// SabaLauncher logs a player into the SAB sportsbook and returns the
// redirect URL.
type SabaLauncher struct {
	APIURL   string
	VendorID string

	Players *player.Repository
	HTTP    *http.Client
	Log     *zap.Logger
}

func (p *SabaLauncher) StartGame(req providers.LaunchRequest) (string, error) {
	start := time.Now()

	pl, err := p.Players.FindByPlayID(req.PlayID)
	if err != nil {
		return "", fmt.Errorf("launch lookup: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"vendor_id":        p.VendorID,
		"vendor_member_id": pl.Username,
		"platform":         req.Platform,
	})
	if err != nil {
		return "", fmt.Errorf("marshal launch payload: %w", err)
	}

	httpClient := p.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Post(p.APIURL+"/GetSabaUrl", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("launch request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read launch response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("launch failed, status: %s", resp.Status)
	}

	var result struct {
		URL       string `json:"Data"`
		ErrorCode int    `json:"error_code"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode launch response: %w", err)
	}
	if result.ErrorCode != 0 {
		return "", fmt.Errorf("launch API error %d: %s", result.ErrorCode, result.Message)
	}
	if result.URL == "" {
		return "", errors.New("no launch URL returned")
	}

	lang := req.Lang
	if lang == "" {
		lang = "en"
	}
	finalURL := fmt.Sprintf("%s&lang=%s", result.URL, lang)

	p.Log.Info("saba launch",
		zap.String("play_id", pl.PlayID),
		zap.Duration("duration", time.Since(start)))
	return finalURL, nil
}
