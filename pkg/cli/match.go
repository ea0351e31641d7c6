package cli

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockroute/internal/matching"
	"github.com/getmockd/mockroute/pkg/manifest"
	"github.com/getmockd/mockroute/pkg/transport"
	"github.com/getmockd/mockroute/pkg/value"
)

// mockBaseURL prefixes request URLs given without scheme and host.
const mockBaseURL = "http://mock.local"

type matchOptions struct {
	manifest   string
	stubs      string
	strict     bool
	include    bool
	selectPath string
}

// MatchOutput is the JSON form of a match result.
type MatchOutput struct {
	RequestID string              `json:"request_id"`
	Method    string              `json:"method"`
	URL       string              `json:"url"`
	Matched   bool                `json:"matched"`
	Pattern   string              `json:"pattern,omitempty"`
	Route     string              `json:"route,omitempty"`
	Status    int                 `json:"status"`
	Headers   map[string][]string `json:"headers"`
	Body      string              `json:"body"`
	Selection []value.Value       `json:"selection,omitempty"`
}

func (a *app) matchCommand() *cobra.Command {
	var opts matchOptions
	cmd := &cobra.Command{
		Use:   "match METHOD URL",
		Short: "Resolve a request against the manifest and print the response",
		Long: `Resolve a request against the manifest and print the mock response.

URL may be absolute or a path such as /users/1?active=true. When no route
matches, the default response is printed, or the command fails with --strict.`,
		Example: `  mockroute match GET /users/1 --manifest mocks/api.yml
  mockroute match POST /users -i --stubs mocks/stubs
  mockroute match GET /users --select '$[*].name'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMatch(cmd, args[0], args[1], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.manifest, "manifest", "m", "", "Manifest file or glob (default: manifest from config)")
	f.StringVar(&opts.stubs, "stubs", "", "Stubs directory (default: stubs from config)")
	f.BoolVar(&opts.strict, "strict", false, "Fail when no route matches")
	f.BoolVarP(&opts.include, "include", "i", false, "Print response headers")
	f.StringVar(&opts.selectPath, "select", "", "JSONPath expression applied to a JSON body")
	return cmd
}

func (a *app) runMatch(cmd *cobra.Command, method, rawURL string, opts matchOptions) error {
	source, err := a.manifestSource(a.manifestPath(opts.manifest))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(cmd.Context(), strings.ToUpper(method), requestURL(rawURL), nil)
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	var stats transport.Stats
	rt := &transport.Transport{
		Enabled:  true,
		Manifest: source,
		StubsDir: a.stubsDir(opts.stubs),
		Cache:    manifest.NewCache(a.manifestOptions()...),
		Logger:   a.log,
		OnStats:  func(s transport.Stats) { stats = s },
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if opts.strict && !stats.Matched() {
		return fmt.Errorf("%w: %s %s", errNoMatch, req.Method, req.URL)
	}

	var selection []value.Value
	if opts.selectPath != "" {
		doc, err := value.ParseJSON(body)
		if err != nil {
			return fmt.Errorf("--select needs a JSON body: %w", err)
		}
		selection, err = matching.SelectJSONPath(doc, opts.selectPath)
		if err != nil {
			return err
		}
	}

	if stats.Matched() {
		a.log.Info("route matched", "route", stats.Route, "pattern", stats.Pattern, "status", resp.StatusCode)
	} else {
		a.log.Info("no route matched", "method", req.Method, "url", req.URL.String())
	}

	out := MatchOutput{
		RequestID: stats.RequestID,
		Method:    req.Method,
		URL:       req.URL.String(),
		Matched:   stats.Matched(),
		Pattern:   stats.Pattern,
		Route:     stats.Route,
		Status:    resp.StatusCode,
		Headers:   resp.Header,
		Body:      string(body),
		Selection: selection,
	}
	if out.Headers == nil {
		out.Headers = map[string][]string{}
	}

	return a.printResult(out, func() error {
		a.colors.Status(resp.StatusCode).Fprintf(a.stdout, "%s %s\n", resp.Proto, resp.Status)
		if opts.include && stats.Response != nil {
			h := stats.Response.Header
			for _, k := range h.Keys() {
				for _, v := range h.Values(k) {
					fmt.Fprintf(a.stdout, "%s: %s\n", a.colors.HeaderKey.Sprint(k), v)
				}
			}
		}
		fmt.Fprintln(a.stdout)

		if opts.selectPath != "" {
			for _, v := range selection {
				data, err := v.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, string(data))
			}
			return nil
		}
		if len(body) > 0 {
			_, _ = a.stdout.Write(body)
			if body[len(body)-1] != '\n' {
				fmt.Fprintln(a.stdout)
			}
		}
		return nil
	})
}

// requestURL makes rawURL absolute. Paths are resolved against mockBaseURL.
func requestURL(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	if !strings.HasPrefix(rawURL, "/") {
		rawURL = "/" + rawURL
	}
	return mockBaseURL + rawURL
}
