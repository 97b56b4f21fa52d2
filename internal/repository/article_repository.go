package repository

import (
	"database/sql"

	"github.com/fuvad/TrueLens-core/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// UpsertSource records the most recently observed reliability tag for a
// domain, last write wins.
func (r *ArticleRepository) UpsertSource(domain, tag string) error {
	_, err := r.db.Exec(`
		INSERT INTO sources(domain, reliability_tag, last_seen)
		VALUES($1, $2, NOW())
		ON CONFLICT (domain) DO UPDATE SET
			reliability_tag = EXCLUDED.reliability_tag,
			last_seen = NOW()
	`, domain, tag)
	return err
}

// InsertArticle inserts a new article row. Returns false when the URL
// already exists; the duplicate is a skip signal, not an error.
func (r *ArticleRepository) InsertArticle(article *model.Article) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO articles(title, url, source_domain, summary, content, published_at, is_verified)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.URL, article.SourceDomain, article.Summary,
		article.Content, article.PublishedAt, article.Verified).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

func (r *ArticleRepository) InsertSummary(summary *model.Summary) error {
	return r.db.QueryRow(`
		INSERT INTO summaries(article_id, neutral_summary, trust_index, reasoning)
		VALUES($1, $2, $3, $4)
		RETURNING id
	`, summary.ArticleID, summary.NeutralSummary, summary.TrustIndex, summary.Reasoning).Scan(&summary.ID)
}

func (r *ArticleRepository) InsertAnalysis(analysis *model.Analysis) error {
	return r.db.QueryRow(`
		INSERT INTO analysis(article_id, bias_label, bias_score, final_score)
		VALUES($1, $2, $3, $4)
		RETURNING id
	`, analysis.ArticleID, analysis.BiasLabel, analysis.BiasScore, analysis.FinalScore).Scan(&analysis.ID)
}

func (r *ArticleRepository) GetScoredFeed(limit, offset int) ([]model.ScoredArticle, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.title, a.url, a.source_domain, a.summary, a.published_at, a.is_verified,
			COALESCE(src.reliability_tag, 'unverified'),
			COALESCE(s.neutral_summary, ''), COALESCE(s.trust_index, 0), COALESCE(s.reasoning, ''),
			COALESCE(an.bias_label, 'unknown'), COALESCE(an.bias_score, 0), COALESCE(an.final_score, 0)
		FROM articles a
		LEFT JOIN sources src ON src.domain = a.source_domain
		LEFT JOIN summaries s ON s.article_id = a.id
		LEFT JOIN analysis an ON an.article_id = a.id
		ORDER BY a.published_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.ScoredArticle
	for rows.Next() {
		a, err := scanScored(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) GetScoredByID(id int64) (*model.ScoredArticle, error) {
	row := r.db.QueryRow(`
		SELECT a.id, a.title, a.url, a.source_domain, a.summary, a.published_at, a.is_verified,
			COALESCE(src.reliability_tag, 'unverified'),
			COALESCE(s.neutral_summary, ''), COALESCE(s.trust_index, 0), COALESCE(s.reasoning, ''),
			COALESCE(an.bias_label, 'unknown'), COALESCE(an.bias_score, 0), COALESCE(an.final_score, 0)
		FROM articles a
		LEFT JOIN sources src ON src.domain = a.source_domain
		LEFT JOIN summaries s ON s.article_id = a.id
		LEFT JOIN analysis an ON an.article_id = a.id
		WHERE a.id = $1
	`, id)

	a, err := scanScored(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScored(row rowScanner) (*model.ScoredArticle, error) {
	var a model.ScoredArticle
	var verified sql.NullBool

	err := row.Scan(
		&a.ID, &a.Title, &a.URL, &a.SourceDomain, &a.Article.Summary, &a.PublishedAt, &verified,
		&a.ReliabilityTag,
		&a.NeutralSummary, &a.TrustIndex, &a.Reasoning,
		&a.BiasLabel, &a.BiasScore, &a.FinalScore,
	)
	if err != nil {
		return nil, err
	}

	if verified.Valid {
		a.Verified = &verified.Bool
	}
	return &a, nil
}

func (r *ArticleRepository) GetScoredTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&total)
	return total, err
}

func (r *ArticleRepository) GetSources(limit, offset int) ([]model.Source, error) {
	rows, err := r.db.Query(`
		SELECT domain, reliability_tag, last_seen
		FROM sources
		ORDER BY last_seen DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var s model.Source
		if err := rows.Scan(&s.Domain, &s.ReliabilityTag, &s.LastSeen); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sources, nil
}

func (r *ArticleRepository) GetSourcesTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sources`).Scan(&total)
	return total, err
}
