package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"archiver/models"
)

// arcadiaConnector fetches game result URLs from the Arcadia API using a
// static authentication token carried in the request body.
type arcadiaConnector struct {
	config arcadiaConfig
	client *http.Client
}

type arcadiaConfig struct {
	APIURL         string `json:"apiUrl"`
	Authentication string `json:"authentication"`
}

func newArcadiaConnector(raw json.RawMessage, client *http.Client) (*arcadiaConnector, error) {
	var cfg arcadiaConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse Arcadia config: %w", err)
	}
	return &arcadiaConnector{config: cfg, client: client}, nil
}

type arcadiaResponse struct {
	ErrorCode    int64  `json:"ErrorCode"`
	ErrorMessage string `json:"ErrorMessage"`
	Data         struct {
		URL string `json:"Url"`
	} `json:"Data"`
}

func (c *arcadiaConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	payload, err := json.Marshal(map[string]string{
		"ALTransID":      bet.ProviderBetID,
		"Authentication": c.config.Authentication,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIURL+"/GetGameResult", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Arcadia result for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	var result arcadiaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Arcadia response: %w", err)
	}

	// The Arcadia API signals success with a non-zero code.
	if result.ErrorCode == 0 {
		return nil, fmt.Errorf("Arcadia result API returned an error: %s", result.ErrorMessage)
	}

	return detailResult(bet, result.Data.URL), nil
}
