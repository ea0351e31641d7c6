// Package manifest loads mock manifests and matches requests against them.
//
// A manifest maps route patterns to response definitions:
//
//	users/{id}:
//	  - match: {id: 1, method: GET}
//	    content: users/1.json
//	  - match: {id: 2, query: {verbose: __true__}}
//	    code: 404
//	users/*:
//	  GET: users.json
//	  POST: 204
//
// Routes may contain {name} placeholders, bound by each definition's match
// block, and "*" globs. Loading expands shorthand (a bare string is the
// content, a bare number the code) and method maps, then sorts routes and
// definitions from most to least specific. Match walks that order and
// resolves the first definition whose route, method and query conditions
// all hold.
package manifest
