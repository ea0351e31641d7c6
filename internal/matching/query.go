package matching

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/getmockd/mockroute/pkg/value"
)

// ParseQuery decodes a raw query string into an ordered map.
//
// Keys may carry bracket suffixes to build arrays and nested maps:
// "a[]=1&a[]=2" yields a list and "f[x]=1" a map. A container whose keys are
// exactly 0..n-1 in order becomes a list. Repeated plain keys keep the last
// value at the position of the first occurrence.
func ParseQuery(raw string) *value.Object {
	root := newQueryNode()
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(part, "=")
		segs := splitQueryKey(unescapeQuery(rawKey))
		if segs == nil {
			continue
		}
		root.set(segs, unescapeQuery(rawVal))
	}
	obj, _ := root.toValue(false).AsMap()
	return obj
}

func unescapeQuery(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return strings.ReplaceAll(s, "+", " ")
}

// splitQueryKey turns "a[b][]" into ["a", "b", ""].
// Keys without a base name are dropped.
func splitQueryKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if key == "" {
			return nil
		}
		return []string{key}
	}
	if open == 0 {
		return nil
	}
	segs := []string{key[:open]}
	rest := key[open:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segs = append(segs, rest[1:end])
		rest = rest[end+1:]
	}
	return segs
}

type queryNode struct {
	scalar   *string
	keys     []string
	children map[string]*queryNode
	next     int
}

func newQueryNode() *queryNode {
	return &queryNode{children: make(map[string]*queryNode)}
}

func (n *queryNode) set(segs []string, val string) {
	key := segs[0]
	if key == "" {
		key = strconv.Itoa(n.next)
	}
	if idx, err := strconv.Atoi(key); err == nil && strconv.Itoa(idx) == key && idx >= n.next {
		n.next = idx + 1
	}

	if len(segs) == 1 {
		n.put(key, &queryNode{scalar: &val})
		return
	}
	child, ok := n.children[key]
	if !ok || child.scalar != nil {
		child = newQueryNode()
		n.put(key, child)
	}
	child.set(segs[1:], val)
}

func (n *queryNode) put(key string, child *queryNode) {
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

func (n *queryNode) toValue(allowList bool) value.Value {
	if n.scalar != nil {
		return value.StringOf(*n.scalar)
	}
	if allowList && n.isSequential() {
		items := make([]value.Value, 0, len(n.keys))
		for _, k := range n.keys {
			items = append(items, n.children[k].toValue(true))
		}
		return value.ListOf(items...)
	}
	obj := value.NewObject()
	for _, k := range n.keys {
		obj.Set(k, n.children[k].toValue(true))
	}
	return value.MapOf(obj)
}

func (n *queryNode) isSequential() bool {
	for i, k := range n.keys {
		if k != strconv.Itoa(i) {
			return false
		}
	}
	return true
}
