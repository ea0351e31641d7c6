// Package response builds HTTP responses from resolved mock definitions.
//
// A Factory turns a status code, content and headers into a Response. The
// standard factory treats string content naming an existing file (directly
// or under the stubs directory) as a stub to load, serializes structured
// content as JSON, and uses any other content verbatim.
package response

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// DefaultVersion is the protocol version used when a definition sets none.
const DefaultVersion = "1.1"

// Response is a fully resolved mock response.
type Response struct {
	StatusCode int
	// Reason overrides the standard reason phrase when non-empty.
	Reason string
	// Proto is the HTTP version without prefix, e.g. "1.1".
	Proto  string
	Header *Header
	Body   []byte
}

// Status returns the status line tail, e.g. "404 Not Found".
func (r *Response) Status() string {
	reason := r.Reason
	if reason == "" {
		reason = http.StatusText(r.StatusCode)
	}
	if reason == "" {
		return strconv.Itoa(r.StatusCode)
	}
	return fmt.Sprintf("%d %s", r.StatusCode, reason)
}

// HTTPResponse converts r into a fresh *http.Response for req.
// Each call returns an independent body reader.
func (r *Response) HTTPResponse(req *http.Request) *http.Response {
	proto := r.Proto
	if proto == "" {
		proto = DefaultVersion
	}
	major, minor, ok := http.ParseHTTPVersion("HTTP/" + proto)
	if !ok {
		major, minor = 1, 1
	}

	return &http.Response{
		Status:        r.Status(),
		StatusCode:    r.StatusCode,
		Proto:         "HTTP/" + proto,
		ProtoMajor:    major,
		ProtoMinor:    minor,
		Header:        r.Header.HTTP(),
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}
