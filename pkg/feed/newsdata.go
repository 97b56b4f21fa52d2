package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fuvad/TrueLens-core/internal/model"
	"github.com/fuvad/TrueLens-core/internal/source"
)

const newsDataEndpoint = "https://newsdata.io/api/1/news"

const defaultTitle = "Untitled"

// NewsDataClient fetches paginated news from NewsData.io, filtering each
// result through the source classifier and backfilling missing body text
// via the extractor.
type NewsDataClient struct {
	apiKey     string
	countries  string
	httpClient *http.Client
	filter     SourceFilter
	extractor  Extractor

	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	pagePause   time.Duration
}

func NewNewsDataClient(apiKey, countries string, filter SourceFilter, extractor Extractor) *NewsDataClient {
	return &NewsDataClient{
		apiKey:      apiKey,
		countries:   countries,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
		filter:      filter,
		extractor:   extractor,
		maxAttempts: 3,
		retryBase:   time.Second,
		retryCap:    10 * time.Second,
		pagePause:   1500 * time.Millisecond,
	}
}

func (c *NewsDataClient) Name() string {
	return "NewsData"
}

// Fetch accumulates up to limit candidates across pages. A missing API key
// or exhausted retries are soft failures: whatever accumulated so far is
// returned without an error so the run can continue.
func (c *NewsDataClient) Fetch(topic string, limit int) ([]Candidate, error) {
	if c.apiKey == "" {
		slog.Error("NEWSDATA_API_KEY missing")
		return nil, nil
	}

	var out []Candidate
	pageCursor := ""

	for {
		params := url.Values{}
		params.Set("apikey", c.apiKey)
		params.Set("q", topic)
		params.Set("language", "en")
		params.Set("country", c.countries)
		if pageCursor != "" {
			params.Set("page", pageCursor)
		}

		page, err := c.requestPage(params)
		if err != nil {
			slog.Error("NewsData error", "error", err, "accumulated", len(out))
			break
		}

		if page.Status != "success" {
			slog.Warn("NewsData reported non-success status", "status", page.Status)
			break
		}

		if len(page.Results) == 0 {
			break
		}

		for _, r := range page.Results {
			if len(out) >= limit {
				break
			}
			if candidate, ok := c.toCandidate(r); ok {
				out = append(out, candidate)
			}
		}

		if len(out) >= limit || page.NextPage == "" {
			break
		}

		pageCursor = page.NextPage
		time.Sleep(c.pagePause)
	}

	slog.Info("fetched articles", "count", len(out), "topic", topic)
	return out, nil
}

// requestPage retries transport and HTTP failures with exponential backoff
// before giving up on the whole fetch.
func (c *NewsDataClient) requestPage(params url.Values) (*newsDataResponse, error) {
	var lastErr error

	delay := c.retryBase
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
			if delay > c.retryCap {
				delay = c.retryCap
			}
		}

		page, err := c.getPage(params)
		if err != nil {
			lastErr = err
			continue
		}
		return page, nil
	}

	return nil, lastErr
}

func (c *NewsDataClient) getPage(params url.Values) (*newsDataResponse, error) {
	resp, err := c.httpClient.Get(newsDataEndpoint + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsdata fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsdata: HTTP %d", resp.StatusCode)
	}

	var raw newsDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsdata decode: %w", err)
	}
	return &raw, nil
}

func (c *NewsDataClient) toCandidate(r newsDataResult) (Candidate, bool) {
	articleURL := r.SourceURL
	if articleURL == "" {
		articleURL = r.Link
	}

	if !c.filter.IsAllowed(articleURL) {
		return Candidate{}, false
	}
	tag := c.filter.Classify(articleURL)

	title := r.Title
	if title == "" {
		title = defaultTitle
	}

	summary := r.Description
	content := r.Content
	if content == "" {
		content = summary
	}
	if content == "" && c.extractor != nil {
		content = c.extractor.Extract(articleURL)
	}

	var verified *bool
	if tag == model.TagTrusted {
		v := true
		verified = &v
	}

	return Candidate{
		Title:          title,
		URL:            articleURL,
		SourceDomain:   source.DomainFromURL(articleURL),
		Summary:        summary,
		Content:        content,
		PublishedAt:    parsePubDate(r.PubDate),
		ReliabilityTag: tag,
		Verified:       verified,
	}, true
}

// parsePubDate accepts the ISO-ish formats NewsData emits, normalizing to
// UTC. Anything unparseable becomes the ingestion time.
func parsePubDate(s string) time.Time {
	if s != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Now().UTC()
}

type newsDataResponse struct {
	Status   string           `json:"status"`
	Results  []newsDataResult `json:"results"`
	NextPage string           `json:"nextPage"`
}

type newsDataResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	SourceURL   string `json:"source_url"`
	Description string `json:"description"`
	Content     string `json:"content"`
	PubDate     string `json:"pubDate"`
}
