package feed

import (
	"context"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/fuvad/TrueLens-core/internal/model"
	"github.com/fuvad/TrueLens-core/internal/source"
)

// FinnHubClient adapts FinnHub market news into pipeline candidates,
// applying the same source filter as the primary feed. Market news has no
// pagination cursor, so a fetch is a single page.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
	filter SourceFilter
}

func NewFinnHubClient(apiKey string, filter SourceFilter) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client, filter: filter}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

var finnhubCategories = map[string]bool{
	"general": true,
	"forex":   true,
	"crypto":  true,
	"merger":  true,
}

func (c *FinnHubClient) Fetch(topic string, limit int) ([]Candidate, error) {
	category := "general"
	if finnhubCategories[topic] {
		category = topic
	}

	res, _, err := c.client.MarketNews(context.Background()).Category(category).Execute()
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, news := range res {
		if len(out) >= limit {
			break
		}

		var articleURL string
		if news.Url != nil {
			articleURL = *news.Url
		}

		if !c.filter.IsAllowed(articleURL) {
			continue
		}
		tag := c.filter.Classify(articleURL)

		title := defaultTitle
		if news.Headline != nil && *news.Headline != "" {
			title = *news.Headline
		}

		var summary string
		if news.Summary != nil {
			summary = *news.Summary
		}

		publishedAt := time.Now().UTC()
		if news.Datetime != nil {
			publishedAt = time.Unix(*news.Datetime, 0).UTC()
		}

		var verified *bool
		if tag == model.TagTrusted {
			v := true
			verified = &v
		}

		out = append(out, Candidate{
			Title:          title,
			URL:            articleURL,
			SourceDomain:   source.DomainFromURL(articleURL),
			Summary:        summary,
			Content:        summary,
			PublishedAt:    publishedAt,
			ReliabilityTag: tag,
			Verified:       verified,
		})
	}

	return out, nil
}
