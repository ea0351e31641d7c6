package cli

import "errors"

var (
	errNoManifest       = errors.New("no manifest: pass --manifest or set manifest in mockroute.yaml")
	errNoMatch          = errors.New("no route matched")
	errValidationFailed = errors.New("validation failed")
)
