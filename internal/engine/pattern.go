package engine

import (
	"fmt"
	"sort"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Route is one declared API path, possibly containing a templated
// segment such as {id}. Routes are immutable after compilation.
type Route struct {
	Path        string
	IsTemplated bool
}

// PatternKind distinguishes how a route's literal is matched.
type PatternKind int

const (
	// PatternExact matches the literal path bounded by non-identifier characters.
	PatternExact PatternKind = iota
	// PatternPrefix matches the templated route's literal prefix followed by a segment.
	PatternPrefix
)

// Pattern is the matchable form of a route. A pattern belongs to
// exactly one route.
type Pattern struct {
	Literal string
	Kind    PatternKind
	Route   *Route
}

// Matcher is the compiled pattern set. Read-only after Compile, safe
// for concurrent use by any number of scanners.
type Matcher struct {
	routes   []*Route
	patterns []Pattern
	ac       ahocorasick.AhoCorasick
}

// Routes returns the compiled routes in declaration order.
func (m *Matcher) Routes() []*Route {
	return m.routes
}

// Compile turns declared route paths into a Matcher. Malformed and
// duplicate routes are excluded with a warning; compilation itself
// never fails.
func Compile(paths []string) (*Matcher, []Warning) {
	var warnings []Warning
	var routes []*Route
	var patterns []Pattern

	seen := make(map[string]bool, len(paths))
	owned := make(map[string]string, len(paths)) // pattern literal -> owning route path

	for _, path := range paths {
		if path == "" {
			warnings = append(warnings, Warning{
				Severity: SeverityWarn,
				Code:     CodeRouteMalformed,
				Text:     "route with empty path excluded from matching",
			})
			continue
		}
		if !strings.HasPrefix(path, "/") {
			warnings = append(warnings, Warning{
				Severity: SeverityWarn,
				Code:     CodeRouteMalformed,
				Text:     fmt.Sprintf("route %q has no leading slash, excluded from matching", path),
			})
			continue
		}
		if seen[path] {
			warnings = append(warnings, Warning{
				Severity: SeverityWarn,
				Code:     CodeRouteDuplicate,
				Text:     fmt.Sprintf("route %q declared more than once, occurrences collapsed", path),
			})
			continue
		}
		seen[path] = true

		route := &Route{Path: path}
		literal := path
		kind := PatternExact

		if i := strings.IndexByte(path, '{'); i >= 0 {
			route.IsTemplated = true
			kind = PatternPrefix
			literal = path[:i]
			if !strings.HasSuffix(literal, "/") {
				warnings = append(warnings, Warning{
					Severity: SeverityWarn,
					Code:     CodeRouteMalformed,
					Text:     fmt.Sprintf("templated route %q: parameter must follow a slash, excluded from matching", path),
				})
				continue
			}
		}

		if owner, ok := owned[literal]; ok {
			warnings = append(warnings, Warning{
				Severity: SeverityWarn,
				Code:     CodeRouteAmbiguous,
				Text:     fmt.Sprintf("route %q compiles to the same pattern as %q, excluded from matching", path, owner),
			})
			continue
		}
		owned[literal] = path

		routes = append(routes, route)
		patterns = append(patterns, Pattern{Literal: literal, Kind: kind, Route: route})
	}

	m := &Matcher{routes: routes, patterns: patterns}
	if len(patterns) > 0 {
		dict := make([]string, len(patterns))
		for i, p := range patterns {
			dict[i] = p.Literal
		}
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			MatchKind: ahocorasick.StandardMatch,
			DFA:       true,
		})
		m.ac = builder.Build(dict)
	}
	return m, warnings
}

// LineMatch is one occurrence attributed to exactly one route.
type LineMatch struct {
	Route *Route
	Start int
	End   int
}

// MatchLine runs the full pattern set over one line of comment-stripped
// text. Overlapping candidates are resolved most-specific-first: an
// exact route's occurrence never also counts toward a templated route
// sharing its prefix.
func (m *Matcher) MatchLine(line string) []LineMatch {
	if len(m.patterns) == 0 || line == "" {
		return nil
	}

	type candidate struct {
		pattern Pattern
		start   int
		end     int
	}
	var candidates []candidate

	iter := m.ac.IterOverlapping(line)
	for next := iter.Next(); next != nil; next = iter.Next() {
		p := m.patterns[next.Pattern()]
		start, end := next.Start(), next.End()
		if !p.validAt(line, start, end) {
			continue
		}
		candidates = append(candidates, candidate{pattern: p, start: start, end: end})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		li, lj := candidates[i].end-candidates[i].start, candidates[j].end-candidates[j].start
		if li != lj {
			return li > lj
		}
		return candidates[i].pattern.Kind == PatternExact && candidates[j].pattern.Kind == PatternPrefix
	})

	var out []LineMatch
	attributed := 0 // end of the last attributed span
	for _, c := range candidates {
		if c.start < attributed {
			continue
		}
		out = append(out, LineMatch{Route: c.pattern.Route, Start: c.start, End: c.end})
		attributed = c.end
	}
	return out
}

// validAt applies the boundary rules for a raw automaton hit.
func (p Pattern) validAt(line string, start, end int) bool {
	if start > 0 && isIdentChar(line[start-1]) {
		return false
	}
	switch p.Kind {
	case PatternExact:
		// /users/login must not match inside /users/login2
		return end >= len(line) || !isIdentChar(line[end])
	case PatternPrefix:
		// the prefix must be followed by a real path segment
		return end < len(line) && isSegmentChar(line[end])
	}
	return false
}

func isIdentChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isSegmentChar(b byte) bool {
	switch b {
	case '/', ' ', '\t', '"', '\'', '`':
		return false
	}
	return true
}
