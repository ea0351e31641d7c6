// Package cli provides the command-line interface for mockroute.
//
// Commands:
//   - match: resolve one request against a manifest and print the response
//   - routes: list routes in matching order with their definitions
//   - validate: check manifest files against the manifest schema
//   - export: print the normalized manifest as JSON or YAML
//   - version: show build information
//
// Settings come from a mockroute.yaml file (see package config), the
// MOCKROUTE_LOG_LEVEL and MOCKROUTE_LOG_FORMAT environment variables, and
// flags, in increasing order of precedence.
//
// Usage:
//
//	mockroute match GET /users/1 --manifest mocks/api.yml --stubs mocks/stubs
//	mockroute match POST /users --json
//	mockroute routes --manifest 'mocks/**/*.yml'
//	mockroute validate mocks/*.yml
//	mockroute export --format yaml > normalized.yml
package cli
