package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperServerConfig configures the HTTP client for a local whisper server
// (faster-whisper-server or whisper.cpp server). Model, device and precision
// are engine-side configuration; the client only names the model.
type WhisperServerConfig struct {
	BaseURL       string
	InferencePath string
	HealthPath    string
	Model         string
	Language      string
	Timeout       time.Duration
}

type whisperSegment struct {
	ID    int     `json:"id"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperResponse struct {
	Text     string           `json:"text,omitempty"`
	Language string           `json:"language,omitempty"`
	Segments []whisperSegment `json:"segments,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// WhisperServer transcribes audio over HTTP against a whisper server instance.
// Safe for concurrent use; all workers may share one handle.
type WhisperServer struct {
	config WhisperServerConfig
	client *http.Client
}

func NewWhisperServer(config WhisperServerConfig) *WhisperServer {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.HealthPath == "" {
		config.HealthPath = "/health"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	return &WhisperServer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Transcript uploads the file and joins the returned segments, in engine
// order, with single spaces. One attempt per call; any fault surfaces
// as *Error.
func (ws *WhisperServer) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	f, err := os.Open(inputFilePath)
	if err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	defer f.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	part, err := w.CreateFormFile("file", filepath.Base(inputFilePath))
	if err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	w.WriteField("response_format", "verbose_json")
	w.WriteField("temperature", "0")
	if ws.config.Model != "" {
		w.WriteField("model", ws.config.Model)
	}
	if ws.config.Language != "" {
		w.WriteField("language", ws.config.Language)
	}
	_ = w.Close()

	endpoint := strings.TrimRight(ws.config.BaseURL, "/") + ws.config.InferencePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &b)
	if err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := ws.client.Do(req)
	if err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Path: inputFilePath, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			Path: inputFilePath,
			Err:  fmt.Errorf("whisper server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var parsed whisperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &Error{Path: inputFilePath, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != "" {
		return "", &Error{Path: inputFilePath, Err: errors.New(parsed.Error)}
	}
	return joinSegments(parsed), nil
}

// Ping verifies the server is reachable with its model loaded.
func (ws *WhisperServer) Ping(ctx context.Context) error {
	endpoint := strings.TrimRight(ws.config.BaseURL, "/") + ws.config.HealthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := ws.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whisper server health status %d", resp.StatusCode)
	}
	return nil
}

func joinSegments(r whisperResponse) string {
	if len(r.Segments) == 0 {
		return strings.TrimSpace(r.Text)
	}
	parts := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
