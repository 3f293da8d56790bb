package links

import "sort"

// Set is a deduplicated collection of absolute URL strings. Order is
// insignificant; use Sorted for a stable view.
type Set map[string]struct{}

func New(urls ...string) Set {
	s := make(Set, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

func (s Set) Add(url string) {
	s[url] = struct{}{}
}

func (s Set) Contains(url string) bool {
	_, ok := s[url]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Diff returns the elements of s that are not in other.
func (s Set) Diff(other Set) Set {
	d := New()
	for u := range s {
		if !other.Contains(u) {
			d.Add(u)
		}
	}
	return d
}

// Sorted returns the elements in ascending lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
