package response

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/getmockd/mockroute/pkg/logging"
	"github.com/getmockd/mockroute/pkg/util"
	"github.com/getmockd/mockroute/pkg/value"
)

var (
	// ErrInvalidStubsDirectory is returned when a configured stubs directory
	// does not exist or is not a directory.
	ErrInvalidStubsDirectory = errors.New("stubs directory must exist and be a directory")

	// ErrStubRead is returned when a located stub file cannot be read.
	ErrStubRead = errors.New("failed to read stub file")
)

// jsonIndent is the indent used for structured content bodies.
const jsonIndent = "    "

// Factory creates responses from resolved definition fields.
type Factory interface {
	// Create builds a response. A non-empty stubsDir overrides the factory's
	// own stubs directory for this call.
	Create(status int, content value.Value, header *Header, version, reason, stubsDir string) (*Response, error)

	// Default returns the response used when nothing matched.
	Default() *Response
}

// StubFactory is the standard Factory. It loads stub files for string
// content that names an existing file.
type StubFactory struct {
	mu       sync.RWMutex
	stubsDir string
	log      *slog.Logger
}

// FactoryOption configures a StubFactory.
type FactoryOption func(*StubFactory)

// WithFactoryLogger sets the logger used for stub resolution messages.
func WithFactoryLogger(log *slog.Logger) FactoryOption {
	return func(f *StubFactory) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFactory returns a factory resolving stubs relative to stubsDir.
// An empty stubsDir disables directory-relative lookups.
func NewFactory(stubsDir string, opts ...FactoryOption) (*StubFactory, error) {
	f := &StubFactory{log: logging.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.SetStubsDirectory(stubsDir); err != nil {
		return nil, err
	}
	return f, nil
}

// SetStubsDirectory replaces the default stubs directory.
func (f *StubFactory) SetStubsDirectory(dir string) error {
	if err := checkStubsDirectory(dir); err != nil {
		return err
	}
	f.mu.Lock()
	f.stubsDir = dir
	f.mu.Unlock()
	return nil
}

// StubsDirectory returns the default stubs directory.
func (f *StubFactory) StubsDirectory() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.stubsDir
}

// Default returns an empty 200 response.
func (f *StubFactory) Default() *Response {
	return &Response{
		StatusCode: 200,
		Proto:      DefaultVersion,
		Header:     NewHeader(),
	}
}

// Create implements Factory.
func (f *StubFactory) Create(status int, content value.Value, header *Header, version, reason, stubsDir string) (*Response, error) {
	dir := stubsDir
	if dir == "" {
		dir = f.StubsDirectory()
	} else if err := checkStubsDirectory(dir); err != nil {
		return nil, err
	}
	if version == "" {
		version = DefaultVersion
	}

	resp := &Response{
		StatusCode: status,
		Reason:     reason,
		Proto:      version,
		Header:     header.Clone(),
	}

	switch content.Kind() {
	case value.Null:
	case value.String:
		text, _ := content.AsString()
		path, found := f.locateStub(text, dir)
		if !found {
			resp.Body = []byte(text)
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStubRead, path, err)
		}
		resp.Body = data
		if !resp.Header.Has("Content-Type") {
			resp.Header.Set("Content-Type", mimetype.Detect(data).String())
		}
		f.log.Debug("loaded stub", "path", path, "bytes", len(data))
	case value.List, value.Map:
		data, err := value.MarshalIndent(content, jsonIndent)
		if err != nil {
			return nil, fmt.Errorf("encoding content: %w", err)
		}
		resp.Body = data
		if !resp.Header.Has("Content-Type") {
			resp.Header.Set("Content-Type", "application/json")
		}
	default:
		resp.Body = []byte(content.Text())
	}

	return resp, nil
}

// locateStub returns the file named by content, first as given and then
// relative to dir. Only regular files qualify.
func (f *StubFactory) locateStub(content, dir string) (string, bool) {
	if content == "" {
		return "", false
	}
	if p, ok := util.CleanPath(content); ok && isRegularFile(p) {
		return p, true
	}
	if dir == "" {
		return "", false
	}
	if p, ok := util.JoinWithin(dir, content); ok && isRegularFile(p) {
		return p, true
	}
	return "", false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func checkStubsDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidStubsDirectory, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidStubsDirectory, dir)
	}
	return nil
}
