package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"avatarsurvey/internal/config"
	"avatarsurvey/internal/model"
)

// AvatarClient creates avatar session tokens. The external avatar/WebRTC
// service (Anam) is an opaque collaborator: this client hands it a persona
// config plus the rendered system prompt and gets back a token the browser
// uses to open the media stream.
type AvatarClient interface {
	CreateSessionToken(ctx context.Context, persona model.PersonaConfig) (string, error)
	IsConfigured() bool
}

type avatarClient struct {
	config     *config.AvatarConfig
	httpClient *http.Client
	maxRetries int
}

// NewAvatarClient creates a new avatar service client
func NewAvatarClient(cfg *config.AvatarConfig) AvatarClient {
	if !cfg.IsEnabled() {
		log.Println("Warning: ANAM_API_KEY not set, avatar client will issue mock tokens")
	}
	return &avatarClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		maxRetries: 3,
	}
}

// sessionTokenRequest is the Anam session-token request body
type sessionTokenRequest struct {
	PersonaConfig personaPayload `json:"personaConfig"`
}

type personaPayload struct {
	Name         string `json:"name"`
	AvatarID     string `json:"avatarId"`
	VoiceID      string `json:"voiceId"`
	LLMID        string `json:"llmId"`
	SystemPrompt string `json:"systemPrompt"`
}

type sessionTokenResponse struct {
	SessionToken string `json:"sessionToken"`
}

// CreateSessionToken requests a session token for the given persona.
// The API key stays server-side; only the returned token reaches clients.
func (c *avatarClient) CreateSessionToken(ctx context.Context, persona model.PersonaConfig) (string, error) {
	if !c.IsConfigured() {
		// Offline development path
		return "mock-session-token", nil
	}

	llmID := persona.LLMID
	if llmID == "" {
		llmID = c.config.LLMID
	}

	body, err := json.Marshal(sessionTokenRequest{
		PersonaConfig: personaPayload{
			Name:         persona.Name,
			AvatarID:     persona.AvatarID,
			VoiceID:      persona.VoiceID,
			LLMID:        llmID,
			SystemPrompt: persona.SystemPrompt,
		},
	})
	if err != nil {
		return "", err
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, c.config.SessionTokenEndpoint(), body)
	if err != nil {
		return "", err
	}

	var tokenResp sessionTokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse session token response: %w", err)
	}
	if tokenResp.SessionToken == "" {
		return "", fmt.Errorf("session token not returned from avatar API")
	}

	return tokenResp.SessionToken, nil
}

// doRequest performs an HTTP request with retry and backoff on rate limits
func (c *avatarClient) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	log.Printf("[Avatar Client] %s %s", method, url)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[Avatar Client] Retry attempt %d/%d for %s", attempt, c.maxRetries, url)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[Avatar Client] ERROR: HTTP request failed (attempt %d): %v", attempt+1, err)
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[Avatar Client] ERROR: Failed to read response body: %v", err)
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			log.Printf("[Avatar Client] RATE LIMITED: retry %d/%d in %v", attempt+1, c.maxRetries, backoff)
			time.Sleep(backoff)
			lastErr = fmt.Errorf("rate limited")
			continue
		}

		if resp.StatusCode >= 400 {
			log.Printf("[Avatar Client] ERROR: API returned %d: %s", resp.StatusCode, string(respBody))
			return nil, fmt.Errorf("avatar API error %d: %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// IsConfigured returns true if the avatar API key is set
func (c *avatarClient) IsConfigured() bool {
	return c.config.IsEnabled()
}
