package middleware

import "strings"

// PathMatcher decides whether a request path is publicly reachable.
//
// A pattern matches its exact path; a pattern ending in "/*" also matches
// everything below it ("/static/*" matches "/static" and "/static/a.css").
type PathMatcher struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewPathMatcher compiles patterns.
func NewPathMatcher(patterns []string) *PathMatcher {
	m := &PathMatcher{exact: make(map[string]struct{}, len(patterns))}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if base, ok := strings.CutSuffix(pattern, "/*"); ok {
			m.prefixes = append(m.prefixes, base)
			continue
		}
		m.exact[pattern] = struct{}{}
	}

	return m
}

// Match reports whether path is public.
func (m *PathMatcher) Match(path string) bool {
	if _, ok := m.exact[path]; ok {
		return true
	}

	for _, base := range m.prefixes {
		if path == base || strings.HasPrefix(path, base+"/") {
			return true
		}
	}
	return false
}
