package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"archiver/models"
)

// amebaConnector resolves game history URLs through the Ameba DMS API.
type amebaConnector struct {
	config amebaConfig
	client *http.Client
}

type amebaConfig struct {
	SecretKey string `json:"secretKey"`
	APIURL    string `json:"apiUrl"`
	SiteID    int64  `json:"siteID"`
}

func newAmebaConnector(raw json.RawMessage, client *http.Client) (*amebaConnector, error) {
	var cfg amebaConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse Ameba config: %w", err)
	}
	return &amebaConnector{config: cfg, client: client}, nil
}

type amebaHistoryResponse struct {
	ErrorCode      string `json:"error_code"`
	GameHistoryURL string `json:"game_history_url"`
}

func (c *amebaConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	form := url.Values{}
	form.Set("action", "get_game_history_url")
	form.Set("site_id", strconv.FormatInt(c.config.SiteID, 10))
	form.Set("account_name", bet.Username)
	form.Set("round_id", bet.ProviderBetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIURL+"/dms/api", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Ameba history for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	var result amebaHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Ameba history response: %w", err)
	}

	if result.ErrorCode != "OK" {
		return nil, fmt.Errorf("Ameba history API returned an error: %s", result.ErrorCode)
	}

	return detailResult(bet, result.GameHistoryURL), nil
}
