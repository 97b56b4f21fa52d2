package enrich

import (
	"math"
	"strings"

	"github.com/fuvad/TrueLens-core/internal/model"
)

type SummaryResult struct {
	NeutralSummary string
	TrustIndex     int
	Reasoning      string
}

type BiasResult struct {
	BiasLabel string
	BiasScore float64
}

type Summarizer interface {
	Summarize(text, reliabilityHint string) (*SummaryResult, error)
}

type BiasAnalyzer interface {
	Analyze(text string) (*BiasResult, error)
}

const (
	maxSummaryInput = 2000
	maxBiasInput    = 512
)

// trustIndexFor derives the baseline trust index from the source's
// reliability tag: base 60, +20 trusted, -20 bad, clamped to [0,100].
func trustIndexFor(reliabilityHint string) int {
	trustIndex := 60
	switch reliabilityHint {
	case model.TagTrusted:
		trustIndex += 20
	case model.TagBad:
		trustIndex -= 20
	}
	if trustIndex < 0 {
		trustIndex = 0
	}
	if trustIndex > 100 {
		trustIndex = 100
	}
	return trustIndex
}

// signedBiasScore maps a label plus confidence onto the signed [-1,1]
// bias scale: negative sentiment points down, positive up, neutral is zero.
func signedBiasScore(label string, confidence float64) float64 {
	confidence = math.Abs(confidence)
	if confidence > 1 {
		confidence = 1
	}

	var score float64
	switch label {
	case "negative":
		score = -confidence
	case "positive":
		score = confidence
	}
	return math.Round(score*1000) / 1000
}

func normalizeBiasLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "negative":
		return "negative"
	case "neutral":
		return "neutral"
	case "positive":
		return "positive"
	}
	return "unknown"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
