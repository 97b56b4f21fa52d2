package feed

import "time"

// Candidate is a validated article produced by a feed client, not yet
// persisted.
type Candidate struct {
	Title          string
	URL            string
	SourceDomain   string
	Summary        string
	Content        string
	PublishedAt    time.Time
	ReliabilityTag string
	Verified       *bool
}

// SourceFilter decides whether a URL may enter the pipeline and which
// reliability tag its domain carries.
type SourceFilter interface {
	Classify(url string) string
	IsAllowed(url string) bool
}

// Extractor backfills article body text when the feed response omits it.
type Extractor interface {
	Extract(url string) string
}

type FeedClient interface {
	Fetch(topic string, limit int) ([]Candidate, error)
	Name() string
}
