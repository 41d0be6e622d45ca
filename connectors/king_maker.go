package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"archiver/models"
)

// kingMakerConnector fetches round history URLs from the KingMaker REST API.
type kingMakerConnector struct {
	config kingMakerConfig
	client *http.Client
}

type kingMakerConfig struct {
	APIURL           string `json:"apiUrl"`
	LobbyURL         string `json:"lobbyUrl"`
	GameProviderCode string `json:"gameProviderCode"`
	ClientID         string `json:"clientID"`
	ClientSecret     string `json:"clientSecret"`
}

func newKingMakerConnector(raw json.RawMessage, client *http.Client) (*kingMakerConnector, error) {
	var cfg kingMakerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse KingMaker config: %w", err)
	}
	return &kingMakerConnector{config: cfg, client: client}, nil
}

type kingMakerHistoryResponse struct {
	Err     *string  `json:"err"`
	ErrDesc *string  `json:"errdesc"`
	URLs    []string `json:"urls"`
}

func (c *kingMakerConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	endpoint := fmt.Sprintf("%s/history/providers/%s/rounds/%s/users/%s",
		c.config.APIURL, c.config.GameProviderCode,
		url.PathEscape(bet.ProviderBetID), url.PathEscape(bet.Username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch KingMaker history for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	var result kingMakerHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode KingMaker history response: %w", err)
	}

	if result.Err != nil {
		desc := ""
		if result.ErrDesc != nil {
			desc = *result.ErrDesc
		}
		return nil, fmt.Errorf("KingMaker history API returned an error: %s %s", *result.Err, desc)
	}
	if len(result.URLs) == 0 {
		return nil, fmt.Errorf("KingMaker history API returned no urls for bet '%s'", bet.ProviderBetID)
	}

	return detailResult(bet, result.URLs[0]), nil
}
