package download

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voice-fraud-go/internal/downloader"
)

var (
	modelID string
	destDir string
)

var Cmd = &cobra.Command{
	Use:   "download",
	Short: "Download whisper model weights for the local engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := downloader.Lookup(modelID)
		if err != nil {
			return err
		}
		path, err := downloader.Fetch(cmd.Context(), model, destDir, true)
		if err != nil {
			return err
		}
		fmt.Printf("Model ready at %s\n", path)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&modelID, "model", "m", "tiny", "model to download ("+strings.Join(downloader.IDs(), ", ")+")")
	Cmd.Flags().StringVarP(&destDir, "dir", "d", "models", "destination directory")
}
