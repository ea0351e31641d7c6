package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getmockd/mockroute/pkg/value"
)

var variablePattern = regexp.MustCompile(`\{(\w+)\}`)

// ExtractVariables returns the names of the {name} placeholders in route,
// in order of appearance.
func ExtractVariables(route string) ([]string, error) {
	matches := variablePattern.FindAllStringSubmatch(route, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		name := m[1]
		if isDigits(name) {
			return nil, fmt.Errorf("%w: {%s} in %q", ErrNumericVariableName, name, route)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: {%s} in %q", ErrDuplicateRouteVariable, name, route)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// PopulateVariables substitutes each {name} placeholder that has a binding.
// Bindings are applied in order, each to the result of the previous one.
func PopulateVariables(route string, vars *value.Object) string {
	vars.Range(func(name string, v value.Value) bool {
		route = strings.ReplaceAll(route, "{"+name+"}", v.Text())
		return true
	})
	return route
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
