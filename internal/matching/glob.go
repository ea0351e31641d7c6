package matching

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// globCache holds compiled route globs keyed by pattern.
// Failed compilations are cached as nil.
var globCache sync.Map

// MatchGlob reports whether path matches the shell-style pattern.
//
// Both sides are trimmed of surrounding slashes. "*" matches any run of
// characters including "/", "?" matches one character and bracket
// expressions match character classes. Invalid patterns never match.
func MatchGlob(pattern, path string) bool {
	pattern = strings.Trim(pattern, "/")
	path = strings.Trim(path, "/")

	if !strings.ContainsAny(pattern, `*?[\`) {
		return pattern == path
	}
	g := compileGlob(pattern)
	if g == nil {
		return false
	}
	return g.Match(path)
}

func compileGlob(pattern string) glob.Glob {
	if cached, ok := globCache.Load(pattern); ok {
		g, _ := cached.(glob.Glob)
		return g
	}
	// Alternation braces are not part of route syntax.
	g, err := glob.Compile(escapeBraces(pattern))
	if err != nil {
		globCache.Store(pattern, nil)
		return nil
	}
	globCache.Store(pattern, g)
	return g
}

func escapeBraces(pattern string) string {
	if !strings.ContainsAny(pattern, "{}") {
		return pattern
	}
	var b strings.Builder
	escaped := false
	for _, r := range pattern {
		if !escaped && (r == '{' || r == '}') {
			b.WriteByte('\\')
		}
		escaped = !escaped && r == '\\'
		b.WriteRune(r)
	}
	return b.String()
}
