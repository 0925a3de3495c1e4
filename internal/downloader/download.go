package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"voice-fraud-go/internal/logger"
)

// Fetch downloads the model into destDir, skipping a file already present.
// Transient HTTP failures are retried with exponential backoff; the payload
// goes to a temp file renamed into place so a torn download never looks
// complete.
func Fetch(ctx context.Context, model ModelOption, destDir string, showProgress bool) (string, error) {
	log := logger.New().WithField("model", model.ID)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create models dir: %w", err)
	}
	dest := filepath.Join(destDir, model.FileName)
	if _, err := os.Stat(dest); err == nil {
		log.WithField("path", dest).Info("model already downloaded")
		return dest, nil
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	var lastErr error
	op := func() error {
		err := downloadOnce(ctx, client, model, dest, showProgress)
		if err != nil {
			lastErr = err
			log.WithField("error", err.Error()).Warn("model download attempt failed")
		}
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 5 * time.Minute
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", fmt.Errorf("download %s: %w", model.ID, lastErr)
	}
	log.WithField("path", dest).Info("model downloaded")
	return dest, nil
}

func downloadOnce(ctx context.Context, client *http.Client, model ModelOption, dest string, showProgress bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, model.URL, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(statusErr)
		}
		return statusErr
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), model.FileName+".part-*")
	if err != nil {
		return backoff.Permanent(err)
	}
	defer os.Remove(tmp.Name())

	var src io.Reader = resp.Body
	var container *mpb.Progress
	if showProgress && resp.ContentLength > 0 {
		container = mpb.New(mpb.WithOutput(os.Stderr))
		bar := container.AddBar(resp.ContentLength,
			mpb.PrependDecorators(
				decor.Name(model.FileName+" "),
				decor.CountersKibiByte("% .1f / % .1f"),
			),
			mpb.AppendDecorators(decor.NewPercentage("%d")),
		)
		src = bar.ProxyReader(resp.Body)
	}

	_, copyErr := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if container != nil {
		container.Wait()
	}
	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return closeErr
	}
	return os.Rename(tmp.Name(), dest)
}
