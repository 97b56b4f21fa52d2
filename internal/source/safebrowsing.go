package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const safeBrowsingEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

// VerdictCache holds previously computed reputation verdicts. Both methods
// are best-effort; a miss or a broken cache just means a live lookup.
type VerdictCache interface {
	GetVerdict(url string) (safe bool, found bool)
	SetVerdict(url string, safe bool)
}

// SafeBrowsingClient checks URLs against Google Safe Browsing. Every
// failure mode reads as safe: a broken reputation check must never stop
// ingestion.
type SafeBrowsingClient struct {
	apiKey     string
	httpClient *http.Client
	cache      VerdictCache
}

func NewSafeBrowsingClient(apiKey string, cache VerdictCache) *SafeBrowsingClient {
	return &SafeBrowsingClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
}

func (c *SafeBrowsingClient) IsSafe(url string) bool {
	if c.apiKey == "" || url == "" {
		return true
	}

	if c.cache != nil {
		if safe, found := c.cache.GetVerdict(url); found {
			return safe
		}
	}

	safe, err := c.lookup(url)
	if err != nil {
		slog.Error("safe browsing check failed", "url", url, "error", err)
		return true
	}

	if c.cache != nil {
		c.cache.SetVerdict(url, safe)
	}

	if !safe {
		slog.Warn("unsafe URL flagged by Safe Browsing", "url", url)
	}
	return safe
}

func (c *SafeBrowsingClient) lookup(url string) (bool, error) {
	body := map[string]interface{}{
		"client": map[string]string{
			"clientId":      "truelens-core",
			"clientVersion": "1.0",
		},
		"threatInfo": map[string]interface{}{
			"threatTypes": []string{
				"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE",
				"POTENTIALLY_HARMFUL_APPLICATION",
			},
			"platformTypes":    []string{"ANY_PLATFORM"},
			"threatEntryTypes": []string{"URL"},
			"threatEntries":    []map[string]string{{"url": url}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return false, fmt.Errorf("safe browsing marshal: %w", err)
	}

	resp, err := c.httpClient.Post(
		safeBrowsingEndpoint+"?key="+c.apiKey,
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return false, fmt.Errorf("safe browsing request: %w", err)
	}
	defer resp.Body.Close()

	// The API returns a "matches" field only when the URL is unsafe.
	var parsed struct {
		Matches []json.RawMessage `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("safe browsing decode: %w", err)
	}

	return len(parsed.Matches) == 0, nil
}
