package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voice-fraud-go/cmd/v2f/cmd/batch"
	"voice-fraud-go/cmd/v2f/cmd/download"
	"voice-fraud-go/cmd/v2f/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "v2f",
	Short: "Classify voice-call recordings as fraudulent or genuine",
	Long: `Classify voice-call recordings as fraudulent or genuine.
- Transcribes each audio file with a whisper engine
- Normalizes the transcript and asks an LLM for a structured verdict
- Writes one report row per discovered file, failures included.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(download.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
