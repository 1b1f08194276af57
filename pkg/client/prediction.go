package client

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/synexa-ai/synexa-go/pkg/config"
	"github.com/synexa-ai/synexa-go/pkg/types"
)

// Prediction tracks one remote prediction. It is not safe for concurrent
// use; the goroutine that created it owns it.
type Prediction struct {
	api      API
	timeouts config.TimeoutConfig
	logger   *slog.Logger
	snapshot types.Prediction
}

func newPrediction(api API, snapshot *types.Prediction, timeouts config.TimeoutConfig, logger *slog.Logger) *Prediction {
	return &Prediction{
		api:      api,
		timeouts: timeouts,
		logger:   logger,
		snapshot: *snapshot,
	}
}

// ID returns the prediction ID
func (p *Prediction) ID() string {
	return p.snapshot.ID
}

// Status returns the last known status
func (p *Prediction) Status() types.Status {
	return p.snapshot.Status
}

// Snapshot returns a copy of the last fetched state
func (p *Prediction) Snapshot() types.Prediction {
	return p.snapshot
}

// Reload refreshes the prediction from the API, replacing every field.
func (p *Prediction) Reload(ctx context.Context) error {
	fresh, err := p.api.GetPrediction(ctx, p.snapshot.ID)
	if err != nil {
		return err
	}
	p.snapshot = *fresh
	return nil
}

// Wait reloads the prediction every poll interval until it succeeds,
// fails, or timeout elapses. A zero timeout uses the configured default.
// The first reload always happens, whatever the timeout.
func (p *Prediction) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.timeouts.WaitTimeout
	}
	deadline := time.Now().Add(timeout)
	poll := newPoller(p.timeouts.PollInterval)

	p.logger.Debug("waiting for prediction", "prediction_id", p.ID(), "timeout", timeout)

	for pollCount := 1; ; pollCount++ {
		limit := deadline
		if pollCount == 1 {
			limit = time.Time{}
		}

		ok, err := poll.next(ctx, limit)
		if err != nil {
			return err
		}
		if !ok {
			p.logger.Debug("wait timed out", "prediction_id", p.ID(), "polls", pollCount-1)
			return &TimeoutError{Timeout: timeout, Prediction: p.snapshot}
		}

		if err := p.Reload(ctx); err != nil {
			return err
		}

		p.logger.Debug("polled prediction", "prediction_id", p.ID(), "poll", pollCount, "status", p.snapshot.Status)

		switch p.snapshot.Status {
		case types.StatusSucceeded:
			return nil
		case types.StatusFailed:
			return newModelError(p.snapshot)
		}
	}
}

// Stream reloads the prediction every stream interval and yields its logs
// while it runs. On success each output locator is yielded in order and the
// sequence ends; on failure a *ModelError is yielded. Each call polls from
// the current remote state.
func (p *Prediction) Stream(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		poll := newPoller(p.timeouts.StreamInterval)
		for {
			if _, err := poll.next(ctx, time.Time{}); err != nil {
				yield("", err)
				return
			}

			if err := p.Reload(ctx); err != nil {
				yield("", err)
				return
			}

			switch p.snapshot.Status {
			case types.StatusSucceeded:
				for _, output := range p.snapshot.Output {
					if !yield(output, nil) {
						return
					}
				}
				return
			case types.StatusFailed:
				yield("", newModelError(p.snapshot))
				return
			}

			if p.snapshot.Logs != "" {
				if !yield(p.snapshot.Logs, nil) {
					return
				}
			}
		}
	}
}
