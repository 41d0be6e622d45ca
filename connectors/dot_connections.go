package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"archiver/models"
)

// dotConnectionsConnector resolves replay URLs through the DotConnections
// aggregator, which fronts several slot studios behind one getReplay API.
// The studio routing key comes from the bet's first transaction payload.
type dotConnectionsConnector struct {
	config dotConnectionsConfig
	client *http.Client
}

type dotConnectionsConfig struct {
	APIURL     string `json:"apiUrl"`
	BetDataURL string `json:"betDataUrl"`
	BrandID    string `json:"brandID"`
	APIKey     string `json:"apiKey"`
}

func newDotConnectionsConnector(raw json.RawMessage, client *http.Client) (*dotConnectionsConnector, error) {
	var cfg dotConnectionsConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse DotConnections config: %w", err)
	}
	return &dotConnectionsConnector{config: cfg, client: client}, nil
}

const dotConnectionsCodeOK = 1000

type dotConnectionsResponse struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Record string `json:"record"`
	} `json:"data"`
}

func (c *dotConnectionsConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	if len(bet.Transactions) == 0 {
		return nil, fmt.Errorf("empty transactions list on DotConnections bet '%s'", bet.ID)
	}

	var transaction struct {
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal([]byte(bet.Transactions[0]), &transaction); err != nil {
		return nil, fmt.Errorf("failed to parse transaction of DotConnections bet '%s': %w", bet.ID, err)
	}
	if transaction.Provider == "" {
		return nil, fmt.Errorf("no provider field in transaction of DotConnections bet '%s'", bet.ID)
	}

	payload, err := json.Marshal(map[string]string{
		"brand_id":  c.config.BrandID,
		"sign":      md5Hex(c.config.BrandID + bet.ProviderBetID + c.config.APIKey),
		"brand_uid": bet.Username,
		"currency":  bet.Currency,
		"round_id":  bet.ProviderBetID,
		"provider":  transaction.Provider,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIURL+"/dcs/getReplay", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch DotConnections replay for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	var result dotConnectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode DotConnections response: %w", err)
	}

	if result.Code != dotConnectionsCodeOK {
		return nil, fmt.Errorf("DotConnections replay API returned error %d: %s", result.Code, result.Msg)
	}

	return detailResult(bet, result.Data.Record), nil
}
