// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

// DefaultBaseURL is the public Twelve Data endpoint.
const DefaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey  string // API key for authentication
	BaseURL string // Base URL for the API; empty means DefaultBaseURL
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}
