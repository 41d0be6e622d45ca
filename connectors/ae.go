package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"archiver/models"
)

// aeConnector fetches replay URLs from the AE (Sexy) transaction history
// API: a form POST authenticated by the agent certificate.
type aeConnector struct {
	config aeConfig
	client *http.Client
}

type aeConfig struct {
	Host      string `json:"host"`
	Cert      string `json:"cert"`
	AgentID   string `json:"agentID"`
	SecretKey string `json:"secretKey"`
}

func newAEConnector(raw json.RawMessage, client *http.Client) (*aeConnector, error) {
	var cfg aeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse AE config: %w", err)
	}
	return &aeConnector{config: cfg, client: client}, nil
}

type aeHistoryResponse struct {
	Status string  `json:"status"`
	Desc   *string `json:"desc"`
	URL    *string `json:"url"`
}

const aeStatusSuccess = "0000"

func (c *aeConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	form := url.Values{}
	form.Set("cert", c.config.Cert)
	form.Set("agentId", c.config.AgentID)
	form.Set("userId", bet.Username)
	form.Set("platformTxId", bet.ProviderBetID)
	form.Set("platform", "SEXYBCRT")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.Host+"/getTransactionHistoryResult", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch AE history for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	var result aeHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode AE history response: %w", err)
	}

	if result.Status != aeStatusSuccess || result.URL == nil {
		desc := "empty"
		if result.Desc != nil {
			desc = *result.Desc
		}
		return nil, fmt.Errorf("AE history API returned an error: %s", desc)
	}

	return &models.BetDetail{
		BetID:  bet.ID,
		Replay: result.URL,
	}, nil
}
