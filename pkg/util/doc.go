// Package util holds small helpers shared by the engine and the CLI:
// path cleaning for stub lookups and body truncation for log output.
package util
