package enrich

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const summarizeSystemPrompt = `You are a neutral news editor. Given an article, write a factual summary and assess how trustworthy the content reads.

Rules:
1. The summary is 3-4 sentences, strictly factual, no opinion
2. Keep all numbers, names, dates, percentages
3. The reasoning briefly explains why the content seems trustworthy or questionable

Output as JSON only, no other text:
{
  "summary": "3-4 sentence factual summary",
  "reasoning": "why the content seems trustworthy or questionable"
}`

// OpenAISummarizer produces the neutral summary and reasoning for an
// article. The trust index itself comes from the reliability heuristic,
// not from the model.
type OpenAISummarizer struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAISummarizer(apiKey string) *OpenAISummarizer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAISummarizer{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAISummarizer) Summarize(text, reliabilityHint string) (*SummaryResult, error) {
	if text == "" {
		return &SummaryResult{
			NeutralSummary: "",
			TrustIndex:     50,
			Reasoning:      "No content provided",
		}, nil
	}

	userPrompt := fmt.Sprintf("Article:\n%s", truncate(text, maxSummaryInput))

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarizeSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		Summary   string `json:"summary"`
		Reasoning string `json:"reasoning"`
	}

	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	reasoning := parsed.Reasoning
	if reasoning == "" {
		reasoning = "Model did not provide explicit reasoning."
	}

	return &SummaryResult{
		NeutralSummary: parsed.Summary,
		TrustIndex:     trustIndexFor(reliabilityHint),
		Reasoning:      reasoning,
	}, nil
}
