package enrich

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const biasSystemPrompt = `You are a sentiment classifier for news articles. Classify the overall sentiment skew of the text.

Output as JSON only, no other text:
{
  "label": "one of: negative, neutral, positive",
  "score": confidence between 0.0 and 1.0
}`

// AnthropicBiasAnalyzer classifies the sentiment skew of an article and
// converts it into the signed bias score the fusion step consumes.
type AnthropicBiasAnalyzer struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicBiasAnalyzer(apiKey string) *AnthropicBiasAnalyzer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicBiasAnalyzer{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicBiasAnalyzer) Analyze(text string) (*BiasResult, error) {
	if text == "" {
		return &BiasResult{BiasLabel: "unknown", BiasScore: 0.0}, nil
	}

	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: biasSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(truncate(text, maxBiasInput))),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	label := normalizeBiasLabel(parsed.Label)

	return &BiasResult{
		BiasLabel: label,
		BiasScore: signedBiasScore(label, parsed.Score),
	}, nil
}
