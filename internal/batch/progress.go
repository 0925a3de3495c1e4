package batch

import (
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressBar is a thin wrapper so the orchestrator can stay silent when
// progress output would not be readable.
type progressBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
}

func newProgressBar(total int, description string, enabled bool) *progressBar {
	if !enabled {
		return &progressBar{}
	}
	container := mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" "),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
		),
	)
	return &progressBar{container: container, bar: bar, enabled: true}
}

func (p *progressBar) increment() {
	if p.enabled && p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progressBar) wait() {
	if p.enabled && p.container != nil {
		p.container.Wait()
	}
}

func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// ShouldShowProgress enables the bar for interactive runs only.
func ShouldShowProgress() bool {
	return isTTY(os.Stderr) || isTTY(os.Stdout)
}
