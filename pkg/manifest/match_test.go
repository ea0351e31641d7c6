package manifest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/getmockd/mockroute/pkg/response"
)

const stubsDir = "testdata/stubs"

func mustLoad(t *testing.T, src any) *Manifest {
	t.Helper()
	m, err := Load(src)
	require.NoError(t, err)
	return m
}

// matchedID returns the "id" custom field carried by the data header.
func matchedID(t *testing.T, m *Manifest, method, target string) string {
	t.Helper()
	resp, err := m.MatchHTTP(httptest.NewRequest(method, target, nil), stubsDir)
	require.NoError(t, err)
	if resp == nil {
		return ""
	}
	return gjson.Get(resp.Header.Get(DataHeader), "id").String()
}

func TestMatch_Syntax(t *testing.T) {
	m := mustLoad(t, "testdata/syntax.yml")

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{name: "short code", method: http.MethodGet, target: "/short-code", status: 100},
		{name: "short content", method: http.MethodGet, target: "/short-content", status: 200, body: "body"},
		{name: "short stub", method: http.MethodGet, target: "/short-stub", status: 200, body: "body"},
		{name: "short empty", method: http.MethodGet, target: "/short-empty", status: 200},
		{name: "rest get", method: http.MethodGet, target: "/rest", status: 200, body: "body"},
		{name: "rest post", method: http.MethodPost, target: "/rest", status: 204},
		{name: "trailing slash", method: http.MethodGet, target: "/rest/", status: 200, body: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.MatchHTTP(httptest.NewRequest(tt.method, tt.target, nil), stubsDir)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, strings.TrimSpace(string(resp.Body)))
		})
	}

	t.Run("unmatched method", func(t *testing.T) {
		resp, err := m.MatchHTTP(httptest.NewRequest(http.MethodPut, "/rest", nil), stubsDir)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})
}

func TestMatch_RouteSpecificity(t *testing.T) {
	m := mustLoad(t, "testdata/specificity-routes.yml")

	tests := []struct {
		target string
		body   string
	}{
		{target: "/route/specificity/200", body: "static-200"},
		{target: "/route/specificity/100", body: "detail-100"},
		{target: "/route/specificity/300", body: "static-id"},
		{target: "/route/specificity/other", body: "static-wildcard"},
		{target: "/route/specificity", body: "static"},
		{target: "/route/other", body: "wildcard"},
		{target: "/route/a/b/c", body: "wildcard"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, err := m.Match(Request{Method: http.MethodGet, Path: tt.target}, "")
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.body, string(resp.Body))
		})
	}
}

func TestMatch_Conditions(t *testing.T) {
	m := mustLoad(t, "testdata/conditions.yml")

	tests := []struct {
		name   string
		method string
		target string
		want   string
	}{
		{name: "static", target: "/route/matching/static", want: "static"},
		{name: "method", method: http.MethodPut, target: "/route/matching/method", want: "method-put"},
		{name: "method fallback", target: "/route/matching/method", want: "method-any"},
		{name: "variables", target: "/route/matching/static/200", want: "var"},
		{name: "query literal", target: "/route/matching/query?id=bar", want: "query-bar"},
		{name: "query one of", target: "/route/matching/query?id=2", want: "query-in"},
		{name: "query no condition holds", target: "/route/matching/query?id=9", want: "query-default"},
		{name: "glob", target: "/route/matching/non-existent", want: "glob"},
		{name: "isset", target: "/query/comparisons/special?isset=true", want: "isset"},
		{name: "isset absent", target: "/query/comparisons/special"},
		{name: "missing", target: "/query/comparisons/missing", want: "missing"},
		{name: "missing present", target: "/query/comparisons/missing?foo=1"},
		{name: "true", target: "/query/comparisons/types?true=1", want: "booly-true"},
		{name: "false", target: "/query/comparisons/types?false=0", want: "booly-false"},
		{name: "bool", target: "/query/comparisons/types?bool=yes", want: "booly"},
		{name: "string", target: "/query/comparisons/types?string=word", want: "string"},
		{name: "numeric", target: "/query/comparisons/types?numeric=1.2", want: "numeric"},
		{name: "int", target: "/query/comparisons/types?int=10", want: "int"},
		{name: "float", target: "/query/comparisons/types?float=1.2", want: "float"},
		{name: "array", target: "/query/comparisons/types?array%5B0%5D=1&array%5B1%5D=2", want: "array"},
		{name: "no type matches", target: "/query/comparisons/types?other=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			assert.Equal(t, tt.want, matchedID(t, m, method, tt.target))
		})
	}
}

func TestMatch_StatusVariables(t *testing.T) {
	m := mustLoad(t, "testdata/simple.json")

	for _, code := range []int{200, 400} {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "/status/" + strconv.Itoa(code)}, "")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, code, resp.StatusCode)
	}

	for _, path := range []string{"/status/300", "/status/{id}", "/status", "/status/200/x"} {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: path}, "")
		require.NoError(t, err)
		assert.Nil(t, resp, path)
	}
}

func TestMatch_QueryOrderIrrelevant(t *testing.T) {
	m := mustLoad(t, `{"q": {"match": {"query": {"a": "1", "b": "2"}}, "content": "both"}}`)

	for _, raw := range []string{"a=1&b=2", "b=2&a=1", "b=2&c=3&a=1"} {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "q", RawQuery: raw}, "")
		require.NoError(t, err)
		require.NotNil(t, resp, raw)
		assert.Equal(t, "both", string(resp.Body))
	}
}

func TestMatch_UnresolvedVariablesSkipped(t *testing.T) {
	m := mustLoad(t, `{
		"items/{id}": [
			{"content": "unbound"},
			{"match": {"other": 1}, "content": "wrong binding"}
		],
		"items/*": "fallback"
	}`)

	resp, err := m.Match(Request{Method: http.MethodGet, Path: "/items/1"}, "")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "fallback", string(resp.Body))
}

func TestMatch_DefaultStatus(t *testing.T) {
	m := mustLoad(t, `{"anything": "ok"}`)

	tests := map[string]int{
		http.MethodGet:     200,
		http.MethodHead:    200,
		http.MethodOptions: 200,
		http.MethodPost:    201,
		http.MethodPut:     202,
		http.MethodPatch:   202,
		http.MethodDelete:  202,
		"post":             201,
	}

	for method, want := range tests {
		t.Run(method, func(t *testing.T) {
			resp, err := m.Match(Request{Method: method, Path: "anything"}, "")
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, want, resp.StatusCode)
		})
	}
}

func TestMatch_Content(t *testing.T) {
	m := mustLoad(t, "testdata/content.yml")

	t.Run("object", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/object"}, stubsDir)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, "{\n    \"foo\": \"bar\",\n    \"list\": [\n        1,\n        2\n    ]\n}", string(resp.Body))
	})

	t.Run("stub", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/stub"}, stubsDir)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, "stub", gjson.GetBytes(resp.Body, "name").String())
	})

	t.Run("stub without directory", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/stub"}, "")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "data.json", string(resp.Body))
	})

	t.Run("string", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/string"}, stubsDir)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "Foobar", string(resp.Body))
		assert.False(t, resp.Header.Has("Content-Type"))
	})

	t.Run("headers and data", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/headers"}, "")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "one", resp.Header.Get("x-test"))
		assert.Equal(t, []string{"a", "b"}, resp.Header.Values("X-Multi"))
		assert.Equal(t, `{"id":"custom","tags":["x"]}`, resp.Header.Get(DataHeader))
		assert.Equal(t, []string{"X-Test", "X-Multi", DataHeader}, resp.Header.Keys())
	})

	t.Run("explicit data header wins", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/data-header"}, "")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "explicit", resp.Header.Get(DataHeader))
	})

	t.Run("version and reason", func(t *testing.T) {
		resp, err := m.Match(Request{Method: http.MethodGet, Path: "content/full"}, "")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 418, resp.StatusCode)
		assert.Equal(t, "2.0", resp.Proto)
		assert.Equal(t, "Short And Stout", resp.Reason)
		assert.Equal(t, "teapot", string(resp.Body))
	})

	t.Run("invalid stubs directory", func(t *testing.T) {
		_, err := m.Match(Request{Method: http.MethodGet, Path: "content/string"}, "testdata/no-such-dir")
		assert.ErrorIs(t, err, response.ErrInvalidStubsDirectory)
	})
}

func TestMatch_NoMatch(t *testing.T) {
	m := mustLoad(t, "testdata/conditions.yml")

	resp, err := m.Match(Request{Method: http.MethodGet, Path: "/nowhere"}, "")
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, ok := m.Find(Request{Method: http.MethodGet, Path: "/nowhere"})
	assert.False(t, ok)
}

func TestFind_ReportsRoute(t *testing.T) {
	m := mustLoad(t, "testdata/simple.json")

	res, ok := m.Find(Request{Method: http.MethodGet, Path: "/status/400/"})
	require.True(t, ok)
	assert.Equal(t, "status/{id}", res.Pattern)
	assert.Equal(t, "status/400", res.Route)
	assert.Equal(t, 400, res.Definition.Code)
}

func TestMatch_DoesNotMutate(t *testing.T) {
	m := mustLoad(t, "testdata/conditions.yml")
	before, err := m.ToJSON()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, target := range []string{"/route/matching/static/200", "/query/comparisons/types?int=10", "/route/matching/x"} {
				_, _ = m.MatchHTTP(httptest.NewRequest(http.MethodGet, target, nil), "")
			}
		}()
	}
	wg.Wait()

	after, err := m.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, http.StatusCreated, DefaultStatus("POST"))
	assert.Equal(t, http.StatusAccepted, DefaultStatus("delete"))
	assert.Equal(t, http.StatusOK, DefaultStatus(""))
}

func TestRequestFromHTTP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPatch, "http://example.com/a/b?x=1&y=2", nil)
	req := RequestFromHTTP(r)
	assert.Equal(t, Request{Method: http.MethodPatch, Path: "/a/b", RawQuery: "x=1&y=2"}, req)
}
