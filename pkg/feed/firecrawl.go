package feed

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const firecrawlEndpoint = "https://api.firecrawl.dev/v1/extract"

// FirecrawlClient pulls article body text for URLs whose feed entry came
// without content. Strictly best-effort: every failure yields "".
type FirecrawlClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewFirecrawlClient(apiKey string) *FirecrawlClient {
	return &FirecrawlClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *FirecrawlClient) Extract(url string) string {
	if url == "" || c.apiKey == "" {
		return ""
	}

	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return ""
	}

	req, err := http.NewRequest(http.MethodPost, firecrawlEndpoint, bytes.NewReader(payload))
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("firecrawl failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("firecrawl non-OK response", "url", url, "status", resp.StatusCode)
		return ""
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Warn("firecrawl decode failed", "url", url, "error", err)
		return ""
	}

	return parsed.Text
}
