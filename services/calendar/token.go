package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bookline/config"
)

// BrokerTokenProvider fetches per-owner Google OAuth tokens from the external
// identity broker over HTTP.
type BrokerTokenProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewBrokerTokenProvider builds a provider from the app configuration.
func NewBrokerTokenProvider() *BrokerTokenProvider {
	return &BrokerTokenProvider{
		BaseURL: config.AppConfig.TokenBrokerURL,
		APIKey:  config.AppConfig.TokenBrokerKey,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Token returns a calendar-scoped bearer token for the owner. A 404 from the
// broker means the owner never connected a calendar; a 200 without a token
// body is a broker-side grant problem. Both map to distinct error kinds so
// the worker can log them apart.
func (p *BrokerTokenProvider) Token(ctx context.Context, ownerID string) (string, error) {
	url := fmt.Sprintf("%s/connections/%s/token", p.BaseURL, ownerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", newExternalError("token", "failed to build broker request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", newExternalError("token", "identity broker unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough below
	case http.StatusNotFound:
		return "", ErrUserNotConnected
	default:
		return "", newExternalError("token", fmt.Sprintf("identity broker returned status %d", resp.StatusCode), nil)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", newExternalError("token", "failed to decode broker response", err)
	}
	if body.AccessToken == "" {
		return "", ErrNoToken
	}
	return body.AccessToken, nil
}
