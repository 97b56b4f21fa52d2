package source

import (
	"testing"

	"github.com/fuvad/TrueLens-core/internal/model"
	"github.com/go-playground/assert/v2"
)

type fakeSafety struct {
	unsafe map[string]bool
}

func (f *fakeSafety) IsSafe(url string) bool {
	return !f.unsafe[url]
}

func TestDomainFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain https", "https://bbc.com/news/article", "bbc.com"},
		{"strips www", "https://www.bbc.com/news", "bbc.com"},
		{"lowercases host", "https://WWW.Reuters.COM/world", "reuters.com"},
		{"keeps subdomain", "https://edition.cnn.com/politics", "edition.cnn.com"},
		{"drops port", "http://example.com:8080/x", "example.com"},
		{"empty input", "", ""},
		{"no scheme", "just-text", ""},
		{"unparseable", "http://[::1]:namedport", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DomainFromURL(tt.url)
			if got != tt.want {
				t.Errorf("DomainFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassifyTrusted(t *testing.T) {
	c := NewClassifier(&fakeSafety{}, nil, nil)

	assert.Equal(t, model.TagTrusted, c.Classify("https://www.reuters.com/world/story"))
	assert.Equal(t, model.TagTrusted, c.Classify("https://bbc.co.uk/news"))
}

func TestClassifyBadList(t *testing.T) {
	c := NewClassifier(&fakeSafety{}, nil, nil)

	assert.Equal(t, model.TagBad, c.Classify("https://www.infowars.com/show"))
	assert.Equal(t, false, c.IsAllowed("https://www.infowars.com/show"))
}

func TestClassifyUnverifiedDefault(t *testing.T) {
	c := NewClassifier(&fakeSafety{}, nil, nil)

	assert.Equal(t, model.TagUnverified, c.Classify("https://some-random-blog.net/post"))
	assert.Equal(t, true, c.IsAllowed("https://some-random-blog.net/post"))
}

func TestReputationGatePrecedesTrustList(t *testing.T) {
	url := "https://www.reuters.com/hacked-page"
	c := NewClassifier(&fakeSafety{unsafe: map[string]bool{url: true}}, nil, nil)

	assert.Equal(t, model.TagBad, c.Classify(url))
	assert.Equal(t, false, c.IsAllowed(url))
}

func TestBadListIgnoresReputationOutcome(t *testing.T) {
	// Even a clean reputation verdict cannot rescue a bad-listed domain.
	c := NewClassifier(&fakeSafety{}, nil, nil)

	assert.Equal(t, false, c.IsAllowed("https://rt.com/article"))
	assert.Equal(t, model.TagBad, c.Classify("https://rt.com/article"))
}

func TestClassifyEmptyDomain(t *testing.T) {
	c := NewClassifier(&fakeSafety{}, nil, nil)

	assert.Equal(t, model.TagUnverified, c.Classify(""))
	assert.Equal(t, false, c.IsAllowed(""))
}

func TestExtraDomains(t *testing.T) {
	c := NewClassifier(&fakeSafety{}, []string{"Example.org"}, []string{"shady.example"})

	assert.Equal(t, model.TagTrusted, c.Classify("https://example.org/a"))
	assert.Equal(t, model.TagBad, c.Classify("https://shady.example/b"))
	assert.Equal(t, false, c.IsAllowed("https://shady.example/b"))
}
