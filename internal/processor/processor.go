// Package processor runs the per-file pipeline: transcribe, clean, classify.
package processor

import (
	"context"
	"path/filepath"
	"time"

	"voice-fraud-go/internal/classifier"
	"voice-fraud-go/internal/logger"
	"voice-fraud-go/internal/textnorm"
	"voice-fraud-go/internal/transcription"
	"voice-fraud-go/internal/types"
)

type FileProcessor struct {
	inputDir          string
	transcriber       transcription.Transcriber
	verdicter         classifier.Verdicter
	transcribeTimeout time.Duration
	classifyTimeout   time.Duration
	log               *logger.Logger
}

func New(inputDir string, t transcription.Transcriber, v classifier.Verdicter, transcribeTimeout, classifyTimeout time.Duration) *FileProcessor {
	if transcribeTimeout <= 0 {
		transcribeTimeout = 120 * time.Second
	}
	if classifyTimeout <= 0 {
		classifyTimeout = 60 * time.Second
	}
	return &FileProcessor{
		inputDir:          inputDir,
		transcriber:       t,
		verdicter:         v,
		transcribeTimeout: transcribeTimeout,
		classifyTimeout:   classifyTimeout,
		log:               logger.New(),
	}
}

// Process never fails: any stage fault is folded into the returned record so
// one bad file cannot take down the batch.
func (p *FileProcessor) Process(ctx context.Context, filename string) types.ResultRecord {
	log := p.log.WithField("audio_file", filename)
	log.Info("processing started")

	path := filepath.Join(p.inputDir, filename)

	tctx, cancel := context.WithTimeout(ctx, p.transcribeTimeout)
	text, err := p.transcriber.Transcript(tctx, path)
	cancel()
	if err != nil {
		log.WithError(err).Error("transcription failed")
		return types.ResultRecord{
			AudioFile: filename,
			Verdict: types.Verdict{
				Label:  types.LabelError,
				Reason: err.Error(),
			},
		}
	}
	log.Info("transcription complete")

	cleaned := textnorm.Normalize(text)

	cctx, cancel := context.WithTimeout(ctx, p.classifyTimeout)
	verdict := p.verdicter.Classify(cctx, cleaned)
	cancel()
	log.WithField("label", verdict.Label).Info("classification complete")

	return types.ResultRecord{
		AudioFile:  filename,
		Transcript: cleaned,
		Verdict:    verdict,
	}
}
