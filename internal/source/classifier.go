package source

import (
	"net/url"
	"strings"

	"github.com/fuvad/TrueLens-core/internal/model"
)

var defaultTrusted = []string{
	// Global
	"bbc.com", "bbc.co.uk", "reuters.com", "apnews.com", "theguardian.com",
	"aljazeera.com", "nytimes.com", "washingtonpost.com", "npr.org",
	"bloomberg.com", "financialtimes.com", "forbes.com", "time.com",
	"abcnews.go.com", "cbsnews.com", "nbcnews.com", "usatoday.com",
	"cnn.com", "theatlantic.com", "vox.com",

	// India
	"thehindu.com", "indiatoday.in", "ndtv.com", "hindustantimes.com",
	"timesofindia.indiatimes.com", "business-standard.com", "livemint.com",
	"scroll.in", "theprint.in", "news18.com",

	// Technology & science
	"techcrunch.com", "wired.com", "scientificamerican.com", "nature.com",
	"newscientist.com",
}

var defaultBad = []string{
	"theonion.com",          // satire
	"infowars.com",          // conspiracy / misinformation
	"beforeitsnews.com",     // conspiracy
	"worldtruth.tv",         // pseudoscience
	"naturalnews.com",       // health misinformation
	"sputniknews.com",       // propaganda-leaning
	"rt.com",                // state propaganda
	"yournewswire.com",      // fake news site
	"newsbreakapp.com",      // unreliable aggregation
	"clickbaitnews.example", // placeholder
	"rumorhub.example",      // placeholder
}

// SafetyChecker is the external reputation gate consulted before the
// static lists.
type SafetyChecker interface {
	IsSafe(url string) bool
}

// Classifier assigns a reliability tag to a URL's domain using the
// reputation gate plus static trusted/bad lists.
type Classifier struct {
	trusted map[string]struct{}
	bad     map[string]struct{}
	safety  SafetyChecker
}

func NewClassifier(safety SafetyChecker, extraTrusted, extraBad []string) *Classifier {
	c := &Classifier{
		trusted: make(map[string]struct{}, len(defaultTrusted)+len(extraTrusted)),
		bad:     make(map[string]struct{}, len(defaultBad)+len(extraBad)),
		safety:  safety,
	}

	for _, d := range defaultTrusted {
		c.trusted[d] = struct{}{}
	}
	for _, d := range extraTrusted {
		c.trusted[strings.ToLower(d)] = struct{}{}
	}
	for _, d := range defaultBad {
		c.bad[d] = struct{}{}
	}
	for _, d := range extraBad {
		c.bad[strings.ToLower(d)] = struct{}{}
	}

	return c
}

// DomainFromURL extracts the bare domain: lower-cased host with a leading
// "www." stripped. Returns "" for unparseable input.
func DomainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// Classify labels a URL's credibility. Precedence: reputation gate, then
// bad list, then trusted list, then unverified.
func (c *Classifier) Classify(rawURL string) string {
	d := DomainFromURL(rawURL)
	if d == "" {
		return model.TagUnverified
	}

	if !c.safety.IsSafe(rawURL) {
		return model.TagBad
	}

	if _, ok := c.trusted[d]; ok {
		return model.TagTrusted
	}
	if _, ok := c.bad[d]; ok {
		return model.TagBad
	}
	return model.TagUnverified
}

// IsAllowed rejects only explicit bad-list entries and reputation-flagged
// URLs. Unverified domains pass; the policy is deliberately permissive.
func (c *Classifier) IsAllowed(rawURL string) bool {
	d := DomainFromURL(rawURL)
	if d == "" {
		return false
	}
	if _, ok := c.bad[d]; ok {
		return false
	}
	return c.safety.IsSafe(rawURL)
}
