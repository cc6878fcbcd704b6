package store

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	pathSeparator = "."
	wildcard      = "*"
)

// ParsePath splits a dot path into segments
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrMalformedPath)
	}
	segs := strings.Split(path, pathSeparator)
	for i, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: empty segment %d in %q", ErrMalformedPath, i, path)
		}
	}
	return segs, nil
}

func joinPath(segs []string) string {
	return strings.Join(segs, pathSeparator)
}

// Join builds a dot path from parts, formatting integers as indices
func Join(parts ...any) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			segs = append(segs, v)
		case int:
			segs = append(segs, strconv.Itoa(v))
		default:
			segs = append(segs, fmt.Sprint(v))
		}
	}
	return joinPath(segs)
}

// MatchPattern reports whether a concrete path matches a pattern with
// single-segment wildcards. Segment counts must be equal.
func MatchPattern(pattern, path string) bool {
	p, err := ParsePath(pattern)
	if err != nil {
		return false
	}
	c, err := ParsePath(path)
	if err != nil {
		return false
	}
	return len(p) == len(c) && prefixMatches(p, c)
}

// prefixMatches reports whether the first min(len) segments agree
func prefixMatches(pattern, path []string) bool {
	n := min(len(pattern), len(path))
	for i := 0; i < n; i++ {
		if pattern[i] != wildcard && path[i] != wildcard && pattern[i] != path[i] {
			return false
		}
	}
	return true
}

// lookup walks segs from node. Slices are addressed by decimal index.
func lookup(node any, segs []string) (any, bool) {
	cur := node
	for _, seg := range segs {
		switch n := cur.(type) {
		case map[string]any:
			v, ok := n[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil, false
			}
			cur = n[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// setIn returns a copy of node with value written at segs. Only the
// containers along the path are copied; everything else is shared.
func setIn(node any, segs []string, value any) (any, error) {
	if len(segs) == 0 {
		return value, nil
	}
	seg, rest := segs[0], segs[1:]

	switch n := node.(type) {
	case map[string]any:
		child, err := setIn(n[seg], rest, value)
		if err != nil {
			return nil, err
		}
		cp := make(map[string]any, len(n)+1)
		for k, v := range n {
			cp[k] = v
		}
		cp[seg] = child
		return cp, nil
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an index", ErrIndexOutOfRange, seg)
		}
		if idx < 0 || idx >= len(n) {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, idx, len(n))
		}
		child, err := setIn(n[idx], rest, value)
		if err != nil {
			return nil, err
		}
		cp := slices.Clone(n)
		cp[idx] = child
		return cp, nil
	default:
		// absent or scalar: create the intermediate container
		child, err := setIn(nil, rest, value)
		if err != nil {
			return nil, err
		}
		return map[string]any{seg: child}, nil
	}
}

// expand resolves pattern against the trees, constrained to agree with
// fixed on the shared prefix. It returns every concrete path present in
// at least one tree.
func expand(pattern, fixed []string, trees ...any) [][]string {
	var out [][]string
	seen := make(map[string]struct{})

	var walk func(i int, prefix []string, nodes []any)
	walk = func(i int, prefix []string, nodes []any) {
		if i == len(pattern) {
			key := joinPath(prefix)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				out = append(out, slices.Clone(prefix))
			}
			return
		}

		var keys []string
		switch {
		case i < len(fixed) && fixed[i] != wildcard:
			keys = []string{fixed[i]}
		case pattern[i] != wildcard:
			keys = []string{pattern[i]}
		default:
			keys = childKeys(nodes)
		}

		for _, k := range keys {
			next := make([]any, 0, len(nodes))
			present := false
			for _, n := range nodes {
				v, ok := lookup(n, []string{k})
				if ok {
					present = true
				}
				next = append(next, v)
			}
			if !present {
				continue
			}
			walk(i+1, append(prefix, k), next)
		}
	}
	walk(0, nil, trees)

	slices.SortFunc(out, comparePaths)
	return out
}

// comparePaths orders paths segment by segment, numerically for indices
func comparePaths(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareSegments(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareSegments(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai - bi
	}
	return strings.Compare(a, b)
}

func childKeys(nodes []any) []string {
	set := make(map[string]struct{})
	for _, n := range nodes {
		switch v := n.(type) {
		case map[string]any:
			for k := range v {
				set[k] = struct{}{}
			}
		case []any:
			for i := range v {
				set[strconv.Itoa(i)] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSegments)
	return keys
}
