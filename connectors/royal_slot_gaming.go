package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"archiver/models"
)

// royalSlotGamingConnector fetches replay URLs from the RSG detail API.
// The JSON payload travels DES-CBC encrypted in a Msg form field, and every
// request carries an MD5 signature over client id, secret, timestamp and the
// ciphertext.
type royalSlotGamingConnector struct {
	config royalSlotGamingConfig
	client *http.Client
}

type royalSlotGamingConfig struct {
	WebID        string `json:"webId"`
	SystemCode   string `json:"systemCode"`
	ClientID     string `json:"clientID"`
	ClientSecret string `json:"clientSecret"`
	APIURL       string `json:"apiUrl"`
	DESKey       string `json:"desKey"`
	DESIV        string `json:"desIV"`
}

func newRoyalSlotGamingConnector(raw json.RawMessage, client *http.Client) (*royalSlotGamingConnector, error) {
	var cfg royalSlotGamingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse Royal Slot Gaming config: %w", err)
	}
	return &royalSlotGamingConnector{config: cfg, client: client}, nil
}

type royalSlotGamingPayload struct {
	UserID       string `json:"UserId"`
	GameID       uint64 `json:"GameId"`
	GameType     uint8  `json:"GameType"`
	Language     string `json:"Language"`
	SequenNumber string `json:"SequenNumber"`
	Currency     string `json:"Currency"`
	SystemCode   string `json:"SystemCode"`
	WebID        string `json:"WebId"`
}

type royalSlotGamingResponse struct {
	ErrorCode    int64  `json:"ErrorCode"`
	ErrorMessage string `json:"ErrorMessage"`
	Data         *struct {
		URL string `json:"URL"`
	} `json:"Data"`
}

func (c *royalSlotGamingConnector) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	gameID, err := strconv.ParseUint(bet.ProviderBetID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("expected a numeric Royal Slot Gaming bet id, got '%s': %w", bet.ProviderBetID, err)
	}

	payload, err := json.Marshal(royalSlotGamingPayload{
		UserID:       bet.Username,
		GameID:       gameID,
		GameType:     1,
		Language:     "en-US",
		SequenNumber: bet.ProviderBetID,
		Currency:     bet.Currency,
		SystemCode:   c.config.SystemCode,
		WebID:        c.config.WebID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize Royal Slot Gaming payload: %w", err)
	}

	encrypted, err := desCBCEncrypt(string(payload), c.config.DESKey, c.config.DESIV)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt Royal Slot Gaming payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIURL+"/Player/GetGameMinDetailURLTokenBySeq", strings.NewReader("Msg="+encrypted))
	if err != nil {
		return nil, err
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-API-ClientID", c.config.ClientID)
	req.Header.Set("X-API-Timestamp", timestamp)
	req.Header.Set("X-API-Signature", md5Hex(c.config.ClientID+c.config.ClientSecret+timestamp+encrypted))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Royal Slot Gaming detail for bet '%s': %w", bet.ProviderBetID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Royal Slot Gaming response: %w", err)
	}

	decrypted, err := desCBCDecrypt(string(body), c.config.DESKey, c.config.DESIV)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt Royal Slot Gaming response: %w", err)
	}

	var result royalSlotGamingResponse
	if err := json.Unmarshal([]byte(decrypted), &result); err != nil {
		return nil, fmt.Errorf("failed to decode Royal Slot Gaming response: %w", err)
	}

	if result.Data == nil {
		return nil, fmt.Errorf("Royal Slot Gaming detail API returned an error: %s", decrypted)
	}

	return detailResult(bet, result.Data.URL), nil
}
