// Package downloader fetches whisper model weights for the local engine.
package downloader

import (
	"fmt"
	"strings"
)

type ModelOption struct {
	ID        string
	FileName  string
	URL       string
	SizeLabel string
}

var catalog = []ModelOption{
	{
		ID:        "tiny",
		FileName:  "ggml-tiny.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin",
		SizeLabel: "~75 MB",
	},
	{
		ID:        "base",
		FileName:  "ggml-base.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
		SizeLabel: "~142 MB",
	},
	{
		ID:        "small",
		FileName:  "ggml-small.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		SizeLabel: "~466 MB",
	},
	{
		ID:        "medium",
		FileName:  "ggml-medium.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin",
		SizeLabel: "~1.5 GB",
	},
	{
		ID:        "large-v3",
		FileName:  "ggml-large-v3.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin",
		SizeLabel: "~2.9 GB",
	},
}

// Lookup resolves a model ID from the catalog.
func Lookup(id string) (ModelOption, error) {
	for _, m := range catalog {
		if m.ID == id {
			return m, nil
		}
	}
	return ModelOption{}, fmt.Errorf("unknown model %q (available: %s)", id, strings.Join(IDs(), ", "))
}

// IDs lists the downloadable model identifiers in catalog order.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, m := range catalog {
		ids = append(ids, m.ID)
	}
	return ids
}
