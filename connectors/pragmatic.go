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

// pragmaticConnector fetches round history URLs from the Pragmatic Play
// OpenHistoryExtended endpoint. Requests are signed with an MD5 hash over
// the url-encoded payload concatenated with the secret key.
type pragmaticConnector struct {
	config pragmaticConfig
	client *http.Client
}

type pragmaticConfig struct {
	CasinoName       string `json:"casinoName"`
	SecretKey        string `json:"secretKey"`
	ProviderID       string `json:"providerID"`
	APIURL           string `json:"apiUrl"`
	Username         string `json:"username"`
	SecureLogin      string `json:"secureLogin"`
	GameServerDomain string `json:"gameServerDomain"`
}

func newPragmaticConnector(raw json.RawMessage, client *http.Client) (*pragmaticConnector, error) {
	var cfg pragmaticConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse Pragmatic config: %w", err)
	}
	return &pragmaticConnector{config: cfg, client: client}, nil
}

const pragmaticErrorSuccess = 0

type pragmaticHistoryResponse struct {
	Description string `json:"description"`
	Error       int    `json:"error"`
	URL         string `json:"url"`
}

func (c *pragmaticConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	form := url.Values{}
	form.Set("gameId", bet.ProviderGameVendorID)
	form.Set("language", "en")
	form.Set("playerId", bet.UserID.String())
	form.Set("roundId", bet.ProviderBetID)
	form.Set("secureLogin", c.config.SecureLogin)
	form.Set("hash", md5Hex(form.Encode()+c.config.SecretKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIURL+"/OpenHistoryExtended/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Pragmatic history for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	var result pragmaticHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Pragmatic history response: %w", err)
	}

	if result.Error != pragmaticErrorSuccess {
		return nil, fmt.Errorf("Pragmatic history API returned an error: %s", result.Description)
	}

	return detailResult(bet, result.URL), nil
}
