package manifest

import (
	"errors"

	"github.com/getmockd/mockroute/pkg/parser"
)

// Sentinel errors returned by loading and normalization. Returned errors wrap
// one of these with context; test with errors.Is.
var (
	// ErrUnsupportedFormat is returned for manifest files with an unknown extension.
	ErrUnsupportedFormat = parser.ErrUnsupportedFormat

	// ErrManifestParse is returned when a manifest source cannot be read or decoded.
	ErrManifestParse = errors.New("failed to load mock manifest")

	// ErrInvalidManifestType is returned when the decoded document is not a map
	// of routes, or the source is of an unsupported Go type.
	ErrInvalidManifestType = errors.New("invalid manifest type")

	// ErrInvalidDefinition is returned for definitions that are not maps or
	// carry fields of the wrong type.
	ErrInvalidDefinition = errors.New("invalid route definition")

	// ErrDuplicateRouteVariable is returned when a route names a variable twice.
	ErrDuplicateRouteVariable = errors.New("duplicate route variable")

	// ErrNumericVariableName is returned for variables such as {1}.
	ErrNumericVariableName = errors.New("route variable names must not be numeric")

	// ErrManifestSchema is returned when schema validation rejects a document.
	ErrManifestSchema = errors.New("manifest does not match schema")
)
