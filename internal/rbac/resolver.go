package rbac

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
)

var placeholderToken = regexp.MustCompile(`\{[^/{}]+\}`)

// compiledRoute is a route pattern containing placeholders, compiled so
// each placeholder matches one non-slash segment.
type compiledRoute struct {
	pattern string
	re      *regexp.Regexp
	methods map[string]string
}

// routeTable is the immutable lookup state built from a validated Config.
// Reloads swap the whole table; readers never observe partial state.
type routeTable struct {
	routes   map[string]map[string]string
	patterns []compiledRoute
}

// Resolver maps (request path, HTTP method) to a required permission name.
// Resolution order: exact path match, normalized-path match, then
// placeholder pattern match. No match means no requirement beyond
// authentication, not an error.
type Resolver struct {
	table atomic.Pointer[routeTable]
}

func NewResolver(cfg Config) (*Resolver, error) {
	table, err := buildTable(cfg)
	if err != nil {
		return nil, err
	}

	r := &Resolver{}
	r.table.Store(table)
	return r, nil
}

// MustNewResolver creates a Resolver and panics on invalid config
func MustNewResolver(cfg Config) *Resolver {
	r, err := NewResolver(cfg)
	if err != nil {
		panic(fmt.Sprintf("rbac.MustNewResolver: %v", err))
	}
	return r
}

// Reload atomically replaces the route table. Concurrent Resolve calls
// see either the old table or the new one, never a mix.
func (r *Resolver) Reload(cfg Config) error {
	table, err := buildTable(cfg)
	if err != nil {
		return err
	}
	r.table.Store(table)
	return nil
}

// Resolve returns the permission required for the raw path and method,
// and whether any table entry matched.
func (r *Resolver) Resolve(rawPath, method string) (string, bool) {
	table := r.table.Load()

	if methods, ok := table.routes[rawPath]; ok {
		if permission, ok := methods[method]; ok {
			return permission, true
		}
		return "", false
	}

	normalized := NormalizePath(rawPath)
	if methods, ok := table.routes[normalized]; ok {
		if permission, ok := methods[method]; ok {
			return permission, true
		}
		return "", false
	}

	for _, route := range table.patterns {
		if route.re.MatchString(rawPath) {
			if permission, ok := route.methods[method]; ok {
				return permission, true
			}
			return "", false
		}
	}

	return "", false
}

func buildTable(cfg Config) (*routeTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table := &routeTable{
		routes: make(map[string]map[string]string, len(cfg.Routes)),
	}

	for pattern, methods := range cfg.Routes {
		copied := make(map[string]string, len(methods))
		for method, permission := range methods {
			copied[method] = permission
		}
		table.routes[pattern] = copied

		if !strings.Contains(pattern, "{") {
			continue
		}

		re, err := compilePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf(errCompileRoutePatternFmt, pattern, err)
		}
		table.patterns = append(table.patterns, compiledRoute{
			pattern: pattern,
			re:      re,
			methods: copied,
		})
	}

	// Map iteration order is random; fix the pattern-stage order so
	// overlapping patterns resolve the same way in every process.
	sort.Slice(table.patterns, func(i, j int) bool {
		return table.patterns[i].pattern < table.patterns[j].pattern
	})

	return table, nil
}

// compilePattern converts a route pattern to an anchored regexp where each
// placeholder matches a single non-slash segment. Literal parts are quoted.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	last := 0
	for _, loc := range placeholderToken.FindAllStringIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString(`[^/]+`)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")

	return regexp.Compile(b.String())
}
