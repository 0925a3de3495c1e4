package transcription

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Manager lazily constructs one engine handle shared by all workers. The
// first construction failure is cached as ErrModelUnavailable instead of
// being retried per call.
type Manager struct {
	build func() (Transcriber, error)
	once  sync.Once
	t     Transcriber
	err   error
}

func NewManager(build func() (Transcriber, error)) *Manager {
	return &Manager{build: build}
}

func (m *Manager) Get() (Transcriber, error) {
	m.once.Do(func() {
		m.t, m.err = m.build()
		if m.err != nil {
			m.err = fmt.Errorf("%w: %v", ErrModelUnavailable, m.err)
		}
	})
	return m.t, m.err
}

// WarmUp probes a server-backed engine until it answers, bounded by maxWait.
// Only this readiness probe is retried; transcription calls never are.
func WarmUp(ctx context.Context, ws *WhisperServer, maxWait time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait
	return backoff.Retry(func() error {
		return ws.Ping(ctx)
	}, backoff.WithContext(bo, ctx))
}
