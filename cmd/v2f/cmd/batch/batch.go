package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	orchestrator "voice-fraud-go/internal/batch"
	"voice-fraud-go/internal/classifier"
	"voice-fraud-go/internal/config"
	"voice-fraud-go/internal/logger"
	"voice-fraud-go/internal/processor"
	"voice-fraud-go/internal/transcription"
)

var (
	inputDir   string
	outputFile string
	parallel   int
	noProgress bool
)

var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every audio file in a directory and write the verdict report",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory with audio files (default $AUDIO_DIR or "+config.DefaultInputDir+")")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "report destination, .csv or .xlsx (default $OUTPUT_FILE or "+config.DefaultOutputPath+")")
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "worker pool size (default $NUM_WORKERS or 4)")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputFile != "" {
		cfg.OutputPath = outputFile
	}
	if parallel > 0 {
		cfg.Concurrency = parallel
	}

	manager := transcription.NewManager(func() (transcription.Transcriber, error) {
		return buildTranscriber(cfg)
	})
	t, err := manager.Get()
	if err != nil {
		return err
	}

	cls := classifier.New(classifier.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.LLMModel,
		Mock:    cfg.MockLLM,
	})

	proc := processor.New(cfg.InputDir, t, cls, cfg.TranscribeTimeout, cfg.ClassifyTimeout)
	showProgress := !noProgress && orchestrator.ShouldShowProgress()
	orch := orchestrator.NewOrchestrator(proc, cfg.Concurrency, showProgress)

	rep, err := orch.Run(cmd.Context(), cfg.InputDir, cfg.OutputPath)
	if err != nil {
		log.WithError(err).Error("batch failed")
		return err
	}

	fmt.Printf("All results saved to: %s (%d rows)\n", rep.OutputPath, len(rep.Records))
	return nil
}

func buildTranscriber(cfg config.Config) (transcription.Transcriber, error) {
	if cfg.MockTranscribe {
		return transcription.NewMock(), nil
	}
	switch cfg.Transcriber {
	case "openai":
		clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			clientConfig.BaseURL = cfg.OpenAIBaseURL
		}
		return transcription.NewOpenAIWhisper(openai.NewClientWithConfig(clientConfig), ""), nil
	default:
		ws := transcription.NewWhisperServer(transcription.WhisperServerConfig{
			BaseURL:  cfg.WhisperServerURL,
			Model:    cfg.WhisperModel,
			Language: cfg.Language,
			Timeout:  cfg.TranscribeTimeout,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := transcription.WarmUp(ctx, ws, 20*time.Second); err != nil {
			return nil, fmt.Errorf("whisper server not ready: %w", err)
		}
		return ws, nil
	}
}
