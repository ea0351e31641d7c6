package manifest

import (
	"net/http"
	"strings"

	"github.com/getmockd/mockroute/internal/matching"
	"github.com/getmockd/mockroute/pkg/response"
	"github.com/getmockd/mockroute/pkg/value"
)

// Request is the part of an inbound request that matching looks at.
type Request struct {
	Method   string
	Path     string
	RawQuery string
}

// RequestFromHTTP describes r for matching.
func RequestFromHTTP(r *http.Request) Request {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	return Request{
		Method:   method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}

// MatchResult identifies the definition selected for a request.
type MatchResult struct {
	// Pattern is the route as written in the manifest.
	Pattern string
	// Route is the pattern with the definition's variables substituted.
	Route      string
	Definition *Definition
}

// Find returns the first definition, in specificity order, that matches req.
func (m *Manifest) Find(req Request) (MatchResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := strings.Trim(req.Path, "/")
	var query *value.Object
	for _, pattern := range m.order {
		for _, def := range m.routes[pattern] {
			route, ok := def.applies(pattern, req.Method, path, func() *value.Object {
				if query == nil {
					query = matching.ParseQuery(req.RawQuery)
				}
				return query
			})
			if ok {
				return MatchResult{Pattern: pattern, Route: route, Definition: def}, true
			}
		}
	}
	return MatchResult{}, false
}

// applies checks one definition against a request. The query is parsed
// lazily since most definitions carry no query conditions.
func (d *Definition) applies(pattern, method, path string, query func() *value.Object) (string, bool) {
	if d.Match == nil {
		return pattern, !strings.Contains(pattern, "{") && matching.MatchGlob(pattern, path)
	}

	route := PopulateVariables(pattern, d.Match.Variables)
	if strings.Contains(route, "{") {
		return route, false
	}
	if d.Match.Method != "" && !strings.EqualFold(d.Match.Method, method) {
		return route, false
	}
	if !matching.MatchGlob(route, path) {
		return route, false
	}
	if d.Match.Query != nil && !matching.EvaluateConditions(d.Match.Query, query()) {
		return route, false
	}
	return route, true
}

// Match resolves the response for req, or returns nil when nothing matches.
// A non-empty stubsDir overrides the factory's stubs directory.
func (m *Manifest) Match(req Request, stubsDir string) (*response.Response, error) {
	res, ok := m.Find(req)
	if !ok {
		m.log.Debug("no route matched", "method", req.Method, "path", req.Path)
		return nil, nil
	}
	m.log.Debug("route matched", "method", req.Method, "path", req.Path, "pattern", res.Pattern, "route", res.Route)
	return Resolve(m.factory, res.Definition, DefaultStatus(req.Method), stubsDir)
}

// MatchHTTP is Match for an *http.Request.
func (m *Manifest) MatchHTTP(r *http.Request, stubsDir string) (*response.Response, error) {
	return m.Match(RequestFromHTTP(r), stubsDir)
}
