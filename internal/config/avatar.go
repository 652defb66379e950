package config

import "os"

// AvatarConfig holds configuration for the external avatar service (Anam)
type AvatarConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	LLMID     string `json:"llmId"` // default model when survey persona omits one
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultAvatarConfig returns the default avatar service configuration
func DefaultAvatarConfig() *AvatarConfig {
	return &AvatarConfig{
		APIKey:    os.Getenv("ANAM_API_KEY"),
		BaseURL:   getEnvOrDefault("ANAM_API_BASE", "https://api.anam.ai/v1"),
		LLMID:     getEnvOrDefault("ANAM_LLM_ID", "0934d97d-0c3a-4f33-91b0-5e136a0ef466"),
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if the avatar API is configured
func (c *AvatarConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// SessionTokenEndpoint returns the full session-token endpoint URL
func (c *AvatarConfig) SessionTokenEndpoint() string {
	return c.BaseURL + "/auth/session-token"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
