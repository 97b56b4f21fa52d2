package model

import "time"

// Reliability tags assigned per source domain.
const (
	TagTrusted    = "trusted"
	TagUnverified = "unverified"
	TagBad        = "bad"
)

type Article struct {
	ID             int64
	Title          string
	URL            string
	SourceDomain   string
	Summary        string
	Content        string
	PublishedAt    time.Time
	ReliabilityTag string
	Verified       *bool
}

type Source struct {
	Domain         string
	ReliabilityTag string
	LastSeen       time.Time
}

type Summary struct {
	ID             int64
	ArticleID      int64
	NeutralSummary string
	TrustIndex     int
	Reasoning      string
}

type Analysis struct {
	ID         int64
	ArticleID  int64
	BiasLabel  string
	BiasScore  float64
	FinalScore int
}

// ScoredArticle is the read-side join of an article with its summary and
// analysis rows, served by the dashboard API.
type ScoredArticle struct {
	Article
	NeutralSummary string
	TrustIndex     int
	Reasoning      string
	BiasLabel      string
	BiasScore      float64
	FinalScore     int
}
