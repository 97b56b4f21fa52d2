package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/fuvad/TrueLens-core/db"
	"github.com/fuvad/TrueLens-core/internal/config"
	"github.com/fuvad/TrueLens-core/internal/pipeline"
	"github.com/fuvad/TrueLens-core/internal/repository"
	"github.com/fuvad/TrueLens-core/internal/source"
	"github.com/fuvad/TrueLens-core/pkg/enrich"
	"github.com/fuvad/TrueLens-core/pkg/feed"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	topic := flag.String("topic", "latest", "topic to fetch news for")
	limit := flag.Int("limit", 20, "number of articles to process")
	flag.Parse()

	cfg := config.Load()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	// Redis only caches reputation verdicts; a missing cache never blocks
	// a run.
	var verdictCache *db.VerdictCache
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			slog.Warn("Redis unavailable, running without verdict cache", "error", err)
		} else {
			defer db.CloseRedis()
			verdictCache = db.NewVerdictCache(db.Redis)
		}
	}

	safety := source.NewSafeBrowsingClient(cfg.SafeBrowsingAPIKey, verdictCache)
	classifier := source.NewClassifier(safety, cfg.ExtraTrustedDomains, cfg.ExtraBadDomains)
	extractor := feed.NewFirecrawlClient(cfg.FirecrawlAPIKey)

	sources := []feed.FeedClient{
		feed.NewNewsDataClient(cfg.NewsDataAPIKey, cfg.Countries, classifier, extractor),
	}
	if cfg.FinnhubAPIKey != "" {
		sources = append(sources, feed.NewFinnHubClient(cfg.FinnhubAPIKey, classifier))
	}

	summarizer := enrich.NewOpenAISummarizer(cfg.OpenAIAPIKey)
	analyzer := enrich.NewAnthropicBiasAnalyzer(cfg.AnthropicAPIKey)

	repo := repository.NewArticleRepository(db.DB)
	runner := pipeline.NewRunner(sources, summarizer, analyzer, repo)

	saved, fetched := runner.Run(*topic, *limit)

	slog.Info("ingested articles", "saved", saved, "total", fetched, "topic", *topic)
}
