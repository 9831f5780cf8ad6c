package router

import (
	"sort"

	"github.com/enola-dev/enola-sub007/errors"
)

// Match is a successful routing result.
type Match[T any] struct {
	Pattern  string
	Payload  T
	Captures map[string]string
}

type entry[T any] struct {
	tmpl    *Template
	payload T
}

// Router dispatches paths to the payload of the most specific template.
//
// When several templates match, the longest pattern string wins; patterns of
// equal length are ordered lexicographically. The result never depends on
// registration order.
//
// A Router is built then frozen: finish every Add before sharing it between
// goroutines. Match takes no locks.
type Router[T any] struct {
	entries []entry[T]
	byText  map[string]int
}

// New returns an empty router.
func New[T any]() *Router[T] {
	return &Router[T]{byText: make(map[string]int)}
}

// Add registers pattern. Duplicate and malformed patterns are rejected.
func (r *Router[T]) Add(pattern string, payload T) error {
	if r.byText == nil {
		r.byText = make(map[string]int)
	}
	if _, dup := r.byText[pattern]; dup {
		return errors.Invalidf(errors.ErrInvalidData, "Router", "Add", "duplicate pattern %q", pattern)
	}
	tmpl, err := Compile(pattern)
	if err != nil {
		return err
	}

	r.entries = append(r.entries, entry[T]{tmpl: tmpl, payload: payload})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return before(r.entries[i].tmpl.pattern, r.entries[j].tmpl.pattern)
	})
	for i, e := range r.entries {
		r.byText[e.tmpl.pattern] = i
	}
	return nil
}

// before is the specificity order: longer patterns first, then lexicographic.
func before(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

// Match returns the most specific template matching the whole path. No match
// is reported with ok false, never an error.
func (r *Router[T]) Match(path string) (Match[T], bool) {
	for _, e := range r.entries {
		if captures, ok := e.tmpl.Match(path); ok {
			return Match[T]{Pattern: e.tmpl.pattern, Payload: e.payload, Captures: captures}, true
		}
	}
	return Match[T]{}, false
}

// Lookup returns the payload registered under the exact pattern text.
func (r *Router[T]) Lookup(pattern string) (T, bool) {
	i, ok := r.byText[pattern]
	if !ok {
		var zero T
		return zero, false
	}
	return r.entries[i].payload, true
}

// Expand builds a path from the template registered under pattern.
func (r *Router[T]) Expand(pattern string, vars map[string]string) (string, error) {
	i, ok := r.byText[pattern]
	if !ok {
		return "", errors.Invalidf(errors.ErrNoMatch, "Router", "Expand", "pattern %q", pattern)
	}
	return r.entries[i].tmpl.Expand(vars)
}

// Patterns lists the registered patterns in specificity order.
func (r *Router[T]) Patterns() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.tmpl.pattern
	}
	return out
}

// Len returns the number of registered templates.
func (r *Router[T]) Len() int { return len(r.entries) }
