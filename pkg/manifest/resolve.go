package manifest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/mockroute/pkg/response"
	"github.com/getmockd/mockroute/pkg/value"
)

// DataHeader carries the JSON encoding of a definition's custom fields.
const DataHeader = "data"

// DefaultStatus returns the status used when a definition has no code.
func DefaultStatus(method string) int {
	switch strings.ToUpper(method) {
	case http.MethodPost:
		return http.StatusCreated
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return http.StatusAccepted
	default:
		return http.StatusOK
	}
}

// Resolve turns def into a response using factory. defaultStatus applies
// when def has no code. A non-empty stubsDir overrides the factory's own.
func Resolve(factory response.Factory, def *Definition, defaultStatus int, stubsDir string) (*response.Response, error) {
	status := defaultStatus
	if def.HasCode {
		status = def.Code
	}

	header, err := buildHeader(def)
	if err != nil {
		return nil, err
	}
	return factory.Create(status, def.Content, header, def.Version, def.Reason, stubsDir)
}

func buildHeader(def *Definition) (*response.Header, error) {
	h := response.NewHeader()
	def.Headers.Range(func(name string, v value.Value) bool {
		if items, ok := v.AsList(); ok {
			for _, item := range items {
				h.Add(name, item.Text())
			}
			return true
		}
		if !v.IsNull() {
			h.Set(name, v.Text())
		}
		return true
	})

	if def.Extra.Len() > 0 && !h.Has(DataHeader) {
		data, err := value.MapOf(def.Extra).MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding %s header: %w", DataHeader, err)
		}
		h.Set(DataHeader, string(data))
	}
	return h, nil
}
