package client

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"time"

	"github.com/synexa-ai/synexa-go/pkg/config"
	"github.com/synexa-ai/synexa-go/pkg/logger"
)

// Synexa is the entry point for running models. Construct one with New or
// NewFromConfig and pass it to whatever needs it.
type Synexa struct {
	predictions *Predictions
	httpClient  *http.Client
	logger      *slog.Logger
}

type options struct {
	api        API
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	timeouts   *config.TimeoutConfig
}

// Option customises a Synexa client
type Option func(*options)

// WithHTTPClient sets the HTTP client used for API calls and output downloads
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAPI replaces the HTTP transport, typically with a MockClient
func WithAPI(api API) Option {
	return func(o *options) { o.api = api }
}

// WithBaseURL overrides the API endpoint
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithTimeouts overrides the wait timeout and polling intervals
func WithTimeouts(t config.TimeoutConfig) Option {
	return func(o *options) { o.timeouts = &t }
}

// New creates a client. apiKey may be empty, in which case SYNEXA_API_KEY
// is used; if neither is set a *ConfigError is returned.
func New(apiKey string, opts ...Option) (*Synexa, error) {
	cfg, err := config.LoadConfig(apiKey)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a client from an already loaded configuration
func NewFromConfig(cfg *config.Config, opts ...Option) (*Synexa, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	c := *cfg
	if o.baseURL != "" {
		c.BaseURL = o.baseURL
	}
	if o.timeouts != nil {
		c.Timeouts = *o.timeouts
	}
	if err := c.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if o.logger == nil {
		if c.Debug {
			o.logger = logger.New(true)
		} else {
			o.logger = logger.Discard()
		}
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: c.HTTPTimeout}
	}
	if o.api == nil {
		o.api = NewHTTPClient(c.APIKey, c.BaseURL, o.httpClient, o.logger)
	}

	return &Synexa{
		predictions: &Predictions{
			api:      o.api,
			timeouts: c.Timeouts,
			logger:   o.logger,
		},
		httpClient: o.httpClient,
		logger:     o.logger,
	}, nil
}

// Predictions returns the low-level prediction interface
func (s *Synexa) Predictions() *Predictions {
	return s.predictions
}

// RunOptions controls how Run waits and what it returns
type RunOptions struct {
	// NoWait returns as soon as the prediction is created. The prediction
	// keeps running on the server.
	NoWait bool

	// Timeout bounds the wait; zero means the configured default (60s).
	Timeout time.Duration

	// URLsOnly skips building FileOutput handles.
	URLsOnly bool
}

// Output is the result of a run
type Output struct {
	PredictionID string
	URLs         []string
	Files        []*FileOutput
}

// Run creates a prediction and waits for it. On success the output
// locators are returned as URLs and, unless URLsOnly is set, as FileOutput
// handles. Failed predictions return *ModelError, slow ones *TimeoutError.
func (s *Synexa) Run(ctx context.Context, model string, input map[string]interface{}, opts RunOptions) (*Output, error) {
	prediction, err := s.predictions.Create(ctx, model, input)
	if err != nil {
		return nil, err
	}

	if opts.NoWait {
		return &Output{PredictionID: prediction.ID()}, nil
	}

	if err := prediction.Wait(ctx, opts.Timeout); err != nil {
		return nil, err
	}

	return s.buildOutput(prediction, opts), nil
}

func (s *Synexa) buildOutput(prediction *Prediction, opts RunOptions) *Output {
	snapshot := prediction.Snapshot()
	out := &Output{
		PredictionID: snapshot.ID,
		URLs:         snapshot.Output,
	}
	if opts.URLsOnly {
		return out
	}
	out.Files = make([]*FileOutput, 0, len(snapshot.Output))
	for _, location := range snapshot.Output {
		out.Files = append(out.Files, NewFileOutput(location, s.httpClient))
	}
	return out
}

// Stream creates a prediction and returns the sequence of its logs and
// outputs. See Prediction.Stream.
func (s *Synexa) Stream(ctx context.Context, model string, input map[string]interface{}) (iter.Seq2[string, error], error) {
	return s.predictions.CreateStream(ctx, model, input)
}
