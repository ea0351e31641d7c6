// Package transport serves mock responses from an http.RoundTripper.
//
// A Transport sits where a client's real transport would. When mocking is
// enabled, for the transport or per request through WithOptions, requests
// are answered from a literal response, from a manifest match or from the
// factory default, and never reach the network. Disabled requests pass
// through to Next.
//
//	client := &http.Client{Transport: &transport.Transport{
//		Enabled:  true,
//		Manifest: "mocks/api.yml",
//		StubsDir: "mocks/stubs",
//	}}
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/mockroute/pkg/logging"
	"github.com/getmockd/mockroute/pkg/manifest"
	"github.com/getmockd/mockroute/pkg/response"
	"github.com/getmockd/mockroute/pkg/util"
)

// ErrNoNextTransport is returned for requests that are not mocked when the
// transport has nothing to delegate to.
var ErrNoNextTransport = errors.New("mocking disabled and no next transport configured")

// Outcome describes how a request was answered.
type Outcome string

// Outcomes, also used as the metrics "outcome" label.
const (
	OutcomePassthrough Outcome = "passthrough"
	OutcomeResponse    Outcome = "response"
	OutcomeMatched     Outcome = "matched"
	OutcomeDefault     Outcome = "default"
	OutcomeError       Outcome = "error"
)

// Stats describes one mocked request.
type Stats struct {
	RequestID string
	Method    string
	URL       string
	Outcome   Outcome
	// Pattern and Route are set when a manifest definition matched.
	Pattern    string
	Route      string
	StatusCode int
	// Response is the mock response served, with headers in authored order.
	// It is nil when the request failed.
	Response *response.Response
	Duration time.Duration
	Err      error
}

// Matched reports whether a manifest definition produced the response.
func (s Stats) Matched() bool {
	return s.Outcome == OutcomeMatched
}

// Transport is an http.RoundTripper answering requests from mocks.
// The zero value mocks nothing and has no Next, so it rejects every request
// with ErrNoNextTransport.
type Transport struct {
	// Enabled turns mocking on for requests without an explicit setting.
	Enabled bool
	// Manifest is the default manifest source; anything manifest.Load accepts.
	Manifest any
	// StubsDir is the default stubs directory.
	StubsDir string

	// Next handles requests that are not mocked.
	Next http.RoundTripper
	// Cache holds loaded manifests. One is created on first use when nil.
	Cache *manifest.Cache
	// Factory builds responses. Defaults to response.NewFactory("").
	Factory response.Factory

	// OnStats is called after every mocked request.
	OnStats func(Stats)
	// Metrics records request counts and match latency when set.
	Metrics *Metrics
	// Logger receives debug logs. Defaults to logging.Nop().
	Logger *slog.Logger
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	initOnce sync.Once
}

func (t *Transport) init() {
	t.initOnce.Do(func() {
		t.Logger = logging.OrNop(t.Logger)
		if t.Factory == nil {
			t.Factory, _ = response.NewFactory("", response.WithFactoryLogger(t.Logger))
		}
		if t.Cache == nil {
			t.Cache = manifest.NewCache(manifest.WithFactory(t.Factory), manifest.WithLogger(t.Logger))
		}
		if t.Clock == nil {
			t.Clock = time.Now
		}
	})
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.init()

	opts, _ := OptionsFrom(req.Context())
	enabled := t.Enabled
	if opts.Enabled != nil {
		enabled = *opts.Enabled
	}
	if !enabled {
		return t.passthrough(req)
	}
	closeRequestBody(req)

	start := t.Clock()
	stats := Stats{
		RequestID: uuid.NewString(),
		Method:    req.Method,
		URL:       req.URL.String(),
	}

	resp, err := t.respond(req, opts, &stats)
	if err == nil && opts.Sink != nil {
		if _, werr := opts.Sink.Write(resp.Body); werr != nil {
			err = fmt.Errorf("writing response to sink: %w", werr)
		}
	}
	stats.Duration = t.Clock().Sub(start)

	if err != nil {
		stats.Outcome = OutcomeError
		stats.Err = err
		t.report(stats)
		t.Logger.Debug("mock request failed", "id", stats.RequestID, "method", stats.Method, "url", stats.URL, "error", err)
		return nil, err
	}

	stats.StatusCode = resp.StatusCode
	stats.Response = resp
	t.report(stats)
	t.Logger.Debug("mock response",
		"id", stats.RequestID,
		"method", stats.Method,
		"url", stats.URL,
		"outcome", stats.Outcome,
		"pattern", stats.Pattern,
		"status", resp.StatusCode,
		"body", util.TruncateBody(resp.Body, util.MaxLogBodySize),
	)
	return resp.HTTPResponse(req), nil
}

// respond picks the response for an enabled request: an explicit response
// first, then a manifest match, then the factory default.
func (t *Transport) respond(req *http.Request, opts Options, stats *Stats) (*response.Response, error) {
	if opts.Response != nil {
		stats.Outcome = OutcomeResponse
		return opts.Response, nil
	}

	source := t.Manifest
	if opts.Manifest != nil {
		source = opts.Manifest
	}
	stubsDir := t.StubsDir
	if opts.StubsDir != "" {
		stubsDir = opts.StubsDir
	}

	if source != nil {
		m, err := t.Cache.Get(source)
		if err != nil {
			return nil, err
		}
		if res, ok := m.Find(manifest.RequestFromHTTP(req)); ok {
			stats.Outcome = OutcomeMatched
			stats.Pattern = res.Pattern
			stats.Route = res.Route
			return manifest.Resolve(t.Factory, res.Definition, manifest.DefaultStatus(req.Method), stubsDir)
		}
	}

	stats.Outcome = OutcomeDefault
	return t.Factory.Default(), nil
}

func (t *Transport) passthrough(req *http.Request) (*http.Response, error) {
	if t.Next == nil {
		closeRequestBody(req)
		return nil, ErrNoNextTransport
	}
	if t.Metrics != nil {
		t.Metrics.observe(req.Method, OutcomePassthrough, 0)
	}
	return t.Next.RoundTrip(req)
}

func (t *Transport) report(stats Stats) {
	if t.Metrics != nil {
		t.Metrics.observe(stats.Method, stats.Outcome, stats.Duration)
	}
	if t.OnStats != nil {
		t.OnStats(stats)
	}
}

func closeRequestBody(req *http.Request) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}
}

type optionsKey struct{}

// Options override the transport defaults for one request.
type Options struct {
	// Enabled forces mocking on or off.
	Enabled *bool
	// Manifest replaces the transport's manifest source.
	Manifest any
	// StubsDir replaces the transport's stubs directory.
	StubsDir string
	// Response is returned as-is, bypassing the manifest.
	Response *response.Response
	// Sink receives a copy of the response body.
	Sink io.Writer
}

// WithOptions attaches per-request options to ctx.
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// OptionsFrom returns the options attached to ctx.
func OptionsFrom(ctx context.Context) (Options, bool) {
	opts, ok := ctx.Value(optionsKey{}).(Options)
	return opts, ok
}

// Enable returns a pointer for Options.Enabled.
func Enable(on bool) *bool {
	return &on
}
