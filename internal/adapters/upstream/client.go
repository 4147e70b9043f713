// Package upstream holds the HTTP clients for the third-party providers the
// relay forwards to.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/relay/pkg/logger"
	"github.com/okian/relay/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
	tracerName     = "github.com/okian/relay/internal/adapters/upstream"
)

// Option configures a provider client.
type Option func(*base)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) {
		if c != nil {
			b.httpClient = c
		}
	}
}

// WithTimeout bounds each outbound call. Ignored when not positive.
func WithTimeout(d time.Duration) Option {
	return func(b *base) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(b *base) {
		if tp != nil {
			b.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.logger = l
		}
	}
}

// base holds what every provider client shares: one http.Client, safe for
// concurrent use, and the per-call plumbing.
type base struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
	logger     logger.Logger
}

func newBase(provider, baseURL string, opts []Option) base {
	b := base{
		provider:   provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// getJSON issues a GET for path+query relative to baseURL and decodes a 2xx
// body into out. Query values are never included in errors or spans since
// they may carry credentials.
func (b *base) getJSON(ctx context.Context, path string, query url.Values, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	ctx, span := b.tracer.Start(ctx, b.provider+" GET", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		metrics.RecordUpstreamCall(b.provider, outcome, float64(time.Since(start).Milliseconds()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
	}()

	u := b.baseURL + path
	span.SetAttributes(
		attribute.String("upstream.provider", b.provider),
		attribute.String("http.request.method", http.MethodGet),
		attribute.String("url.full", u),
	)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%w: %s: build request: %w", ErrTransport, b.provider, redact(err))
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := b.httpClient.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%w: %s: %w", ErrTransport, b.provider, redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		outcome = metrics.OutcomeStatus
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Provider: b.provider, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = metrics.OutcomeMalformed
		return fmt.Errorf("%w: %s: %w", ErrDecode, b.provider, err)
	}

	b.logger.Debug(ctx, "upstream call succeeded",
		logger.String("provider", b.provider),
		logger.String("path", path),
		logger.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// redact strips the request URL from *url.Error so query credentials do not
// leak into logs.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
