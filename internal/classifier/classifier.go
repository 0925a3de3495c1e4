// Package classifier turns cleaned transcripts into fraud verdicts.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voice-fraud-go/internal/logger"
	"voice-fraud-go/internal/types"
)

// maxReasonLen bounds the reason text carried over from an unparseable response.
const maxReasonLen = 200

const parseFallbackReason = "Failed to parse LLM response"

// Verdicter is implemented by anything able to judge a transcript.
type Verdicter interface {
	Classify(ctx context.Context, cleanedText string) types.Verdict
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Mock    bool
}

// Classifier calls the LLM gateway once per transcript with deterministic
// sampling. It never returns an error: every failure mode degrades to an
// "Unknown" verdict, so callers have nothing to recover.
type Classifier struct {
	client *openai.Client
	model  string
	mock   bool
	log    *logger.Logger
}

func New(cfg Config) *Classifier {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Classifier{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		mock:   cfg.Mock,
		log:    logger.New(),
	}
}

func (c *Classifier) Classify(ctx context.Context, cleanedText string) types.Verdict {
	if c.mock {
		return mockVerdict(cleanedText)
	}

	prompt := fmt.Sprintf(detectPrompt, cleanedText)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	})
	if err != nil {
		c.log.WithError(err).Warn("classification call failed")
		return types.Verdict{
			Label:      types.LabelUnknown,
			Confidence: 0,
			Reason:     "Error during classification call: " + err.Error(),
		}
	}
	if len(resp.Choices) == 0 {
		return types.Verdict{Label: types.LabelUnknown, Confidence: 0, Reason: parseFallbackReason}
	}
	return parseVerdict(strings.TrimSpace(resp.Choices[0].Message.Content))
}

// parseVerdict decodes the raw model output, tolerating markdown fences and
// surrounding prose. A response that cannot be decoded becomes an "Unknown"
// verdict carrying the start of the raw text.
func parseVerdict(content string) types.Verdict {
	raw := extractJSON(content)
	var v types.Verdict
	if raw == "" || json.Unmarshal([]byte(raw), &v) != nil || v.Label == "" {
		reason := truncate(content, maxReasonLen)
		if reason == "" {
			reason = parseFallbackReason
		}
		return types.Verdict{Label: types.LabelUnknown, Confidence: 0, Reason: reason}
	}
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
	return v
}

// extractJSON finds the first balanced JSON object in a string. It strips the
// markdown fences LLMs commonly wrap around output.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// mockVerdict keeps demos deterministic without a gateway. A transcript
// asking for credentials is flagged, everything else passes.
func mockVerdict(text string) types.Verdict {
	lower := strings.ToLower(text)
	for _, tok := range []string{"otp", "cvv", "pin", "password", "verify"} {
		if strings.Contains(lower, tok) {
			return types.Verdict{
				Label:      types.LabelFraud,
				Confidence: 0.92,
				Reason:     "caller asks for sensitive credentials",
			}
		}
	}
	return types.Verdict{
		Label:      types.LabelGenuine,
		Confidence: 0.8,
		Reason:     "no sensitive request or pressure detected",
	}
}
