package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fuvad/TrueLens-core/internal/model"
	"github.com/go-playground/assert/v2"
)

type fakeFilter struct {
	badDomains map[string]bool
	trusted    map[string]bool
}

func (f *fakeFilter) IsAllowed(url string) bool {
	if url == "" {
		return false
	}
	for d := range f.badDomains {
		if strings.Contains(url, d) {
			return false
		}
	}
	return true
}

func (f *fakeFilter) Classify(url string) string {
	for d := range f.badDomains {
		if strings.Contains(url, d) {
			return model.TagBad
		}
	}
	for d := range f.trusted {
		if strings.Contains(url, d) {
			return model.TagTrusted
		}
	}
	return model.TagUnverified
}

type fakeExtractor struct {
	text  string
	calls []string
}

func (f *fakeExtractor) Extract(url string) string {
	f.calls = append(f.calls, url)
	return f.text
}

func newTestNewsDataClient(srv *httptest.Server, filter SourceFilter, extractor Extractor) *NewsDataClient {
	client := &NewsDataClient{
		apiKey:      "test-key",
		countries:   "us,in,gb",
		httpClient:  srv.Client(),
		filter:      filter,
		extractor:   extractor,
		maxAttempts: 3,
		retryBase:   time.Millisecond,
		retryCap:    5 * time.Millisecond,
		pagePause:   time.Millisecond,
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func resultJSON(title, link, description, content, pubDate string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"link":        link,
		"description": description,
		"content":     content,
		"pubDate":     pubDate,
	}
}

func TestFetchFiltersBadSources(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			resultJSON("Good one", "https://fine.example/a", "desc a", "body a", "2026-02-26 11:02:00"),
			resultJSON("Propaganda", "https://rt.com/b", "desc b", "body b", "2026-02-26 11:03:00"),
			resultJSON("Also good", "https://reuters.com/c", "desc c", "body c", "2026-02-26 11:04:00"),
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	filter := &fakeFilter{
		badDomains: map[string]bool{"rt.com": true},
		trusted:    map[string]bool{"reuters.com": true},
	}
	client := newTestNewsDataClient(srv, filter, nil)

	articles, err := client.Fetch("ai", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Good one", articles[0].Title)
	assert.Equal(t, model.TagUnverified, articles[0].ReliabilityTag)
	assert.Equal(t, "Also good", articles[1].Title)
	assert.Equal(t, model.TagTrusted, articles[1].ReliabilityTag)
	if articles[1].Verified == nil || !*articles[1].Verified {
		t.Error("trusted article should be marked verified")
	}
	if articles[0].Verified != nil {
		t.Error("unverified article should leave Verified unset")
	}
}

func TestFetchPaginationAndLimit(t *testing.T) {
	pages := map[string]map[string]interface{}{
		"": {
			"status": "success",
			"results": []map[string]interface{}{
				resultJSON("One", "https://a.example/1", "d1", "c1", "2026-02-26T10:00:00Z"),
				resultJSON("Two", "https://a.example/2", "d2", "c2", "2026-02-26T10:01:00Z"),
			},
			"nextPage": "cursor-2",
		},
		"cursor-2": {
			"status": "success",
			"results": []map[string]interface{}{
				resultJSON("Three", "https://a.example/3", "d3", "c3", "2026-02-26T10:02:00Z"),
				resultJSON("Four", "https://a.example/4", "d4", "c4", "2026-02-26T10:03:00Z"),
			},
			"nextPage": "cursor-3",
		},
	}

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			t.Errorf("unexpected page cursor %q", r.URL.Query().Get("page"))
			page = map[string]interface{}{"status": "success"}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv, &fakeFilter{}, nil)

	articles, err := client.Fetch("latest", 3)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	assert.Equal(t, "Three", articles[2].Title)
	// limit hit mid-page: no request for cursor-3
	assert.Equal(t, 2, requests)
}

func TestFetchStopsOnCursorExhaustion(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			resultJSON("Only", "https://a.example/1", "d", "c", "2026-02-26T10:00:00Z"),
		},
		// no nextPage cursor
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv, &fakeFilter{}, nil)

	articles, err := client.Fetch("latest", 50)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
}

func TestFetchMissingAPIKey(t *testing.T) {
	client := NewNewsDataClient("", "us", &fakeFilter{}, nil)

	articles, err := client.Fetch("ai", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "error"})
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv, &fakeFilter{}, nil)

	articles, err := client.Fetch("ai", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"results": []map[string]interface{}{
				resultJSON("Recovered", "https://a.example/1", "d", "c", "2026-02-26T10:00:00Z"),
			},
		})
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv, &fakeFilter{}, nil)

	articles, err := client.Fetch("ai", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, 3, attempts)
}

func TestFetchReturnsAccumulatedAfterRetryExhaustion(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("page") == "cursor-2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"results": []map[string]interface{}{
				resultJSON("First", "https://a.example/1", "d", "c", "2026-02-26T10:00:00Z"),
			},
			"nextPage": "cursor-2",
		})
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv, &fakeFilter{}, nil)

	articles, err := client.Fetch("ai", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	// 1 success + 3 failed attempts on the second page
	assert.Equal(t, 4, requests)
}

func TestContentFallsBackToDescription(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			resultJSON("No body", "https://a.example/1", "the description", "", "2026-02-26T10:00:00Z"),
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	extractor := &fakeExtractor{text: "extracted"}
	client := newTestNewsDataClient(srv, &fakeFilter{}, extractor)

	articles, _ := client.Fetch("ai", 10)

	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "the description", articles[0].Content)
	assert.Equal(t, 0, len(extractor.calls))
}

func TestContentFallsBackToExtractor(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			resultJSON("Nothing at all", "https://a.example/1", "", "", "2026-02-26T10:00:00Z"),
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	extractor := &fakeExtractor{text: "extracted body"}
	client := newTestNewsDataClient(srv, &fakeFilter{}, extractor)

	articles, _ := client.Fetch("ai", 10)

	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "extracted body", articles[0].Content)
	assert.Equal(t, []string{"https://a.example/1"}, extractor.calls)
}

func TestDefaultTitleAndPubDateFallback(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			resultJSON("", "https://a.example/1", "d", "c", "not-a-date"),
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv, &fakeFilter{}, nil)

	before := time.Now().UTC()
	articles, _ := client.Fetch("ai", 10)

	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Untitled", articles[0].Title)
	if articles[0].PublishedAt.Before(before.Add(-time.Minute)) {
		t.Errorf("unparseable pubDate should fall back to now, got %v", articles[0].PublishedAt)
	}
}

func TestParsePubDate(t *testing.T) {
	got := parsePubDate("2026-02-26T07:53:24Z")
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 26, got.Day())
	assert.Equal(t, 7, got.Hour())

	got = parsePubDate("2026-02-26 07:53:24")
	assert.Equal(t, 53, got.Minute())
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
