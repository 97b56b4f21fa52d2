package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fuvad/TrueLens-core/internal/model"
)

type ArticleStore interface {
	GetScoredFeed(limit, offset int) ([]model.ScoredArticle, error)
	GetScoredTotal() (int, error)
	GetScoredByID(id int64) (*model.ScoredArticle, error)
	GetSources(limit, offset int) ([]model.Source, error)
	GetSourcesTotal() (int, error)
}

type ArticleHandler struct {
	repository ArticleStore
}

func NewArticleHandler(repository ArticleStore) *ArticleHandler {
	return &ArticleHandler{repository: repository}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	articles, err := h.repository.GetScoredFeed(limit, offset)
	if err != nil {
		slog.Error("error fetching articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetScoredTotal()
	if err != nil {
		slog.Error("error fetching article total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var articleRes []ArticleResponse
	for _, a := range articles {
		articleRes = append(articleRes, toArticleResponse(&a))
	}

	c.JSON(http.StatusOK, FeedResponse{
		Articles: articleRes,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")

	articleID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid article id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.repository.GetScoredByID(articleID)
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", articleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) GetSources(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	sources, err := h.repository.GetSources(limit, offset)
	if err != nil {
		slog.Error("error fetching sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetSourcesTotal()
	if err != nil {
		slog.Error("error fetching source total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var sourceRes []SourceResponse
	for _, s := range sources {
		sourceRes = append(sourceRes, SourceResponse{
			Domain:         s.Domain,
			ReliabilityTag: s.ReliabilityTag,
			LastSeen:       s.LastSeen.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, SourcesResponse{
		Sources: sourceRes,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toArticleResponse(a *model.ScoredArticle) ArticleResponse {
	return ArticleResponse{
		ID:             a.ID,
		Title:          a.Title,
		URL:            a.URL,
		SourceDomain:   a.SourceDomain,
		ReliabilityTag: a.ReliabilityTag,
		IsVerified:     a.Verified,
		Summary:        a.Article.Summary,
		PublishedAt:    a.PublishedAt.Format(time.RFC3339),
		NeutralSummary: a.NeutralSummary,
		TrustIndex:     a.TrustIndex,
		Reasoning:      a.Reasoning,
		BiasLabel:      a.BiasLabel,
		BiasScore:      a.BiasScore,
		FinalScore:     a.FinalScore,
	}
}

func getQueryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
