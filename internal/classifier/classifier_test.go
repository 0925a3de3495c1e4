package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-fraud-go/internal/types"
)

// chatStub serves an OpenAI-shaped chat completion whose content is fixed.
func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))

		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClassifier(baseURL string) *Classifier {
	return New(Config{APIKey: "test-key", BaseURL: baseURL + "/v1", Model: "gpt-test"})
}

func TestClassifyParsesVerdict(t *testing.T) {
	srv := chatStub(t, `{"label":"Fraud","confidence":0.93,"reason":"caller demands an otp"}`)
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "share your otp now")

	assert.Equal(t, types.LabelFraud, v.Label)
	assert.InDelta(t, 0.93, v.Confidence, 1e-9)
	assert.Equal(t, "caller demands an otp", v.Reason)
}

func TestClassifyStripsMarkdownFences(t *testing.T) {
	srv := chatStub(t, "```json\n{\"label\":\"Genuine\",\"confidence\":0.7,\"reason\":\"routine support call\"}\n```")
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "when does my order arrive")

	assert.Equal(t, types.LabelGenuine, v.Label)
	assert.InDelta(t, 0.7, v.Confidence, 1e-9)
}

func TestClassifyNonJSONResponse(t *testing.T) {
	srv := chatStub(t, "sorry, cannot help")
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "anything")

	assert.Equal(t, types.LabelUnknown, v.Label)
	assert.Zero(t, v.Confidence)
	assert.Equal(t, "sorry, cannot help", v.Reason)
}

func TestClassifyTruncatesLongGarbage(t *testing.T) {
	srv := chatStub(t, strings.Repeat("x", 500))
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "anything")

	assert.Equal(t, types.LabelUnknown, v.Label)
	assert.Len(t, v.Reason, maxReasonLen)
}

func TestClassifyServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "anything")

	assert.Equal(t, types.LabelUnknown, v.Label)
	assert.Zero(t, v.Confidence)
	assert.True(t, strings.HasPrefix(v.Reason, "Error during classification call: "), v.Reason)
}

func TestClassifyNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClassifier(srv.URL)
	srv.Close()

	v := c.Classify(context.Background(), "anything")

	assert.Equal(t, types.LabelUnknown, v.Label)
	assert.True(t, strings.HasPrefix(v.Reason, "Error during classification call: "), v.Reason)
}

func TestClassifyClampsConfidence(t *testing.T) {
	srv := chatStub(t, `{"label":"Fraud","confidence":3.2,"reason":"overconfident model"}`)
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "anything")

	assert.Equal(t, 1.0, v.Confidence)
}

func TestClassifyEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	v := newTestClassifier(srv.URL).Classify(context.Background(), "anything")

	assert.Equal(t, types.LabelUnknown, v.Label)
	assert.Equal(t, parseFallbackReason, v.Reason)
}

func TestMockClassifierIsDeterministic(t *testing.T) {
	c := New(Config{Mock: true})

	fraud := c.Classify(context.Background(), "share your otp now")
	assert.Equal(t, types.LabelFraud, fraud.Label)

	genuine := c.Classify(context.Background(), "the delivery arrives tomorrow")
	assert.Equal(t, types.LabelGenuine, genuine.Label)

	again := c.Classify(context.Background(), "share your otp now")
	assert.Equal(t, fraud, again)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"surrounding prose", `Here you go: {"a":1} hope that helps`, `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"no object", "nothing here", ""},
		{"unbalanced", `{"a":1`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}
