package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunResult is delivered by RunAsync
type RunResult struct {
	Output *Output
	Err    error
}

// RunAsync runs the prediction on its own goroutine and delivers the single
// result on the returned channel, which is then closed. Each call owns its
// prediction, so any number may run at once.
func (s *Synexa) RunAsync(ctx context.Context, model string, input map[string]interface{}, opts RunOptions) <-chan RunResult {
	ch := make(chan RunResult, 1)
	go func() {
		defer close(ch)
		out, err := s.Run(ctx, model, input, opts)
		if err != nil {
			s.logger.Debug("async run failed", "model", model, "error", err)
		}
		ch <- RunResult{Output: out, Err: err}
	}()
	return ch
}

// RunRequest is one entry for RunAll
type RunRequest struct {
	Model string
	Input map[string]interface{}
}

// RunAll runs every request concurrently and returns the outputs in request
// order. The first error cancels the remaining waits and is returned.
func (s *Synexa) RunAll(ctx context.Context, requests []RunRequest, opts RunOptions) ([]*Output, error) {
	results := make([]*Output, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		g.Go(func() error {
			out, err := s.Run(gctx, req.Model, req.Input, opts)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
