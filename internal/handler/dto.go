package handler

type ArticleResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	SourceDomain   string  `json:"source_domain"`
	ReliabilityTag string  `json:"reliability_tag"`
	IsVerified     *bool   `json:"is_verified,omitempty"`
	Summary        string  `json:"summary"`
	PublishedAt    string  `json:"published_at"`
	NeutralSummary string  `json:"neutral_summary"`
	TrustIndex     int     `json:"trust_index"`
	Reasoning      string  `json:"reasoning"`
	BiasLabel      string  `json:"bias_label"`
	BiasScore      float64 `json:"bias_score"`
	FinalScore     int     `json:"final_score"`
}

type FeedResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type SourceResponse struct {
	Domain         string `json:"domain"`
	ReliabilityTag string `json:"reliability_tag"`
	LastSeen       string `json:"last_seen"`
}

type SourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
