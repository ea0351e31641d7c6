package matching

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortRoutes returns route patterns ordered from most to least specific.
// The input is not modified and the sort is stable.
func SortRoutes(routes []string) []string {
	sorted := slices.Clone(routes)
	if len(sorted) < 2 {
		return sorted
	}
	// Collators are not safe for concurrent use.
	cmp := routeComparator{col: collate.New(language.Und, collate.IgnoreCase, collate.Numeric)}
	slices.SortStableFunc(sorted, cmp.compare)
	return sorted
}

// CompareRoutes orders two route patterns by specificity. A negative result
// means a is more specific than b.
func CompareRoutes(a, b string) int {
	cmp := routeComparator{col: collate.New(language.Und, collate.IgnoreCase, collate.Numeric)}
	return cmp.compare(a, b)
}

type routeComparator struct {
	col *collate.Collator
}

func (c routeComparator) compare(a, b string) int {
	segsA := strings.Split(a, "/")
	segsB := strings.Split(b, "/")

	// Deeper routes first.
	if len(segsA) != len(segsB) {
		if len(segsA) > len(segsB) {
			return -1
		}
		return 1
	}

	// Equal depth: the last segment decides. When both carry a wildcard at
	// the same offset, earlier segments break the tie.
	for i := len(segsA) - 1; i >= 0; i-- {
		result, tiedWildcards := c.compareSegment(segsA[i], segsB[i])
		if !tiedWildcards {
			return result
		}
	}
	return 0
}

// compareSegment compares two segments at the same depth. The second result
// reports a wildcard tie that should fall through to the previous segment.
func (c routeComparator) compareSegment(a, b string) (int, bool) {
	varA, varB := strings.IndexByte(a, '{'), strings.IndexByte(b, '{')
	wildA, wildB := strings.IndexByte(a, '*'), strings.IndexByte(b, '*')

	switch {
	case varA >= 0 && varB >= 0:
		return 0, false
	case wildA >= 0 || wildB >= 0:
		if wildA == wildB {
			return 0, true
		}
		if wildA < wildB {
			return -1, false
		}
		return 1, false
	case varA >= 0 || varB >= 0:
		if varA < varB {
			return -1, false
		}
		return 1, false
	default:
		return -c.col.CompareString(a, b), false
	}
}

// Specificity summarizes the match block of a definition.
type Specificity struct {
	HasMatch  bool
	HasMethod bool
	HasQuery  bool
	QueryKeys int
}

// CompareDefinitions orders two definitions of one route. A negative result
// means a should be tried before b.
func CompareDefinitions(a, b Specificity) int {
	switch {
	case a.HasMatch != b.HasMatch:
		return preferTrue(a.HasMatch)
	case a.HasMethod != b.HasMethod:
		return preferTrue(a.HasMethod)
	case a.HasQuery != b.HasQuery:
		return preferTrue(a.HasQuery)
	case a.HasQuery:
		return b.QueryKeys - a.QueryKeys
	default:
		return 0
	}
}

func preferTrue(a bool) int {
	if a {
		return -1
	}
	return 1
}
