// Package matching provides the request matching primitives of the routing
// engine.
//
// It covers:
//
//   - Query conditions: sentinel expressions (__isset__, __int__, ...) and
//     literal or one-of comparisons against a parsed query string
//   - Query parsing: bracketed keys building lists and nested maps
//   - Route globbing: shell-style patterns where "*" spans path separators
//   - Specificity ordering: routes by depth and last segment, definitions by
//     how much of a match block they declare
//
// Nothing in this package holds request state. Compiled globs are cached
// process-wide and are safe for concurrent use.
package matching
