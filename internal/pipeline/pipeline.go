package pipeline

import (
	"log/slog"

	"github.com/fuvad/TrueLens-core/internal/model"
	"github.com/fuvad/TrueLens-core/internal/scoring"
	"github.com/fuvad/TrueLens-core/pkg/enrich"
	"github.com/fuvad/TrueLens-core/pkg/feed"
)

// Store is the persistence collaborator. InsertArticle reports false for a
// pre-existing URL, which is the sole deduplication boundary.
type Store interface {
	UpsertSource(domain, tag string) error
	InsertArticle(article *model.Article) (bool, error)
	InsertSummary(summary *model.Summary) error
	InsertAnalysis(analysis *model.Analysis) error
}

// Runner drives one ingestion run: fetch, per-article enrichment, score
// fusion, idempotent persistence.
type Runner struct {
	sources    []feed.FeedClient
	summarizer enrich.Summarizer
	analyzer   enrich.BiasAnalyzer
	store      Store
}

func NewRunner(sources []feed.FeedClient, summarizer enrich.Summarizer, analyzer enrich.BiasAnalyzer, store Store) *Runner {
	return &Runner{
		sources:    sources,
		summarizer: summarizer,
		analyzer:   analyzer,
		store:      store,
	}
}

// Run processes up to limit articles across the configured feed sources,
// sequentially, threading the remaining budget through each source. No
// collaborator failure aborts the run.
func (r *Runner) Run(topic string, limit int) (saved, fetched int) {
	for _, src := range r.sources {
		remaining := limit - fetched
		if remaining <= 0 {
			break
		}

		candidates, err := src.Fetch(topic, remaining)
		if err != nil {
			slog.Error("error fetching articles", "source", src.Name(), "error", err)
			continue
		}

		fetched += len(candidates)

		for _, c := range candidates {
			if r.process(c) {
				saved++
			}
		}
	}

	slog.Info("ingestion run complete", "saved", saved, "fetched", fetched, "topic", topic)
	return saved, fetched
}

func (r *Runner) process(c feed.Candidate) bool {
	// Domain freshness tracking is independent of article dedup: the
	// source row is upserted even when the article turns out to be a
	// duplicate.
	if err := r.store.UpsertSource(c.SourceDomain, c.ReliabilityTag); err != nil {
		slog.Error("error upserting source", "domain", c.SourceDomain, "error", err)
	}

	article := &model.Article{
		Title:          c.Title,
		URL:            c.URL,
		SourceDomain:   c.SourceDomain,
		Summary:        c.Summary,
		Content:        c.Content,
		PublishedAt:    c.PublishedAt,
		ReliabilityTag: c.ReliabilityTag,
		Verified:       c.Verified,
	}

	inserted, err := r.store.InsertArticle(article)
	if err != nil {
		slog.Error("error saving article", "url", c.URL, "error", err)
		return false
	}

	if !inserted {
		slog.Info("duplicate article skipped", "url", c.URL)
		return false
	}

	summary, err := r.summarizer.Summarize(c.Content, c.ReliabilityTag)
	if err != nil {
		slog.Error("summarization failed", "article_id", article.ID, "error", err)
		summary = &enrich.SummaryResult{
			NeutralSummary: "",
			TrustIndex:     50,
			Reasoning:      "Error in summarizer",
		}
	}

	err = r.store.InsertSummary(&model.Summary{
		ArticleID:      article.ID,
		NeutralSummary: summary.NeutralSummary,
		TrustIndex:     summary.TrustIndex,
		Reasoning:      summary.Reasoning,
	})
	if err != nil {
		slog.Error("error saving summary", "article_id", article.ID, "error", err)
		return false
	}

	text := c.Content
	if text == "" {
		text = c.Summary
	}

	bias, err := r.analyzer.Analyze(text)
	if err != nil {
		slog.Error("bias analysis failed", "article_id", article.ID, "error", err)
		bias = &enrich.BiasResult{BiasLabel: "unknown", BiasScore: 0.0}
	}

	err = r.store.InsertAnalysis(&model.Analysis{
		ArticleID:  article.ID,
		BiasLabel:  bias.BiasLabel,
		BiasScore:  bias.BiasScore,
		FinalScore: scoring.Fuse(bias.BiasScore, summary.TrustIndex),
	})
	if err != nil {
		slog.Error("error saving analysis", "article_id", article.ID, "error", err)
		return false
	}

	return true
}
