package transcription

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIWhisper transcribes via the hosted Whisper API.
type OpenAIWhisper struct {
	client *openai.Client
	model  string
}

func NewOpenAIWhisper(client *openai.Client, model string) *OpenAIWhisper {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIWhisper{client: client, model: model}
}

func (ow *OpenAIWhisper) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	resp, err := ow.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    ow.model,
		FilePath: inputFilePath,
	})
	if err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	return strings.TrimSpace(resp.Text), nil
}
