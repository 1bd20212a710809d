package catalog

import (
	"sort"
	"strings"
	"sync"
)

// DefaultSuggestLimit caps Suggest results when the caller passes no limit.
const DefaultSuggestLimit = 5

// Registry holds the discovered package catalog in memory.
//
// Load replaces the whole collection under the write lock and queries copy
// the slice header under the read lock, so readers never observe a
// partially updated catalog. All queries are synchronous and perform no
// I/O.
type Registry struct {
	mu       sync.RWMutex
	packages []Package
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Load replaces the catalog wholesale. There are no incremental updates;
// a fresh discovery run is the only way to refresh the contents.
func (r *Registry) Load(packages []Package) {
	r.mu.Lock()
	r.packages = packages
	r.mu.Unlock()
}

// snapshot returns the current package slice. The slice is never mutated
// after Load, so holding it outside the lock is safe.
func (r *Registry) snapshot() []Package {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.packages
}

// All returns every package in catalog order. Callers must not mutate the
// returned slice.
func (r *Registry) All() []Package {
	return r.snapshot()
}

// Count returns the number of packages. Callers use a zero count to tell
// an unpopulated registry apart from an empty query result.
func (r *Registry) Count() int {
	return len(r.snapshot())
}

// RepoForLanguage returns the source repository configuration serving a
// language.
func (r *Registry) RepoForLanguage(lang Language) (RepoConfig, bool) {
	return RepoFor(lang)
}

// GetByName resolves a package by any of its common spellings. Matching is
// case-insensitive and tries, in order: the exact published name, the name
// without its npm scope, the directory name, and a normalized form of the
// query (underscores to hyphens, optional crate prefix stripped) against
// the directory name. The last step lets a noir identifier like "lean_imt"
// or a rust crate like "zk-kit-lean-imt" resolve to the same logical
// package as its typescript sibling.
func (r *Registry) GetByName(query string) (Package, bool) {
	pkgs := r.snapshot()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Package{}, false
	}
	for _, p := range pkgs {
		if strings.ToLower(p.Name) == q {
			return p, true
		}
	}
	for _, p := range pkgs {
		if stripScope(strings.ToLower(p.Name)) == q {
			return p, true
		}
	}
	for _, p := range pkgs {
		if strings.ToLower(p.DirName) == q {
			return p, true
		}
	}
	normalized := strings.ReplaceAll(q, "_", "-")
	unprefixed := strings.TrimPrefix(normalized, cratePrefix+"-")
	for _, p := range pkgs {
		dir := strings.ToLower(p.DirName)
		if dir == normalized || dir == unprefixed {
			return p, true
		}
	}
	return Package{}, false
}

// stripScope removes an npm-style "@scope/" prefix from a package name.
func stripScope(name string) string {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			return name[i+1:]
		}
	}
	return name
}

// Suggest returns up to limit packages whose name or directory name
// contains every whitespace-separated term of the query. Terms combine
// conjunctively; each term may match either field. Results keep catalog
// order, with no further ranking.
func (r *Registry) Suggest(query string, limit int) []Package {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}
	var out []Package
	for _, p := range r.snapshot() {
		if matchesAllTerms(terms, strings.ToLower(p.Name), strings.ToLower(p.DirName)) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// matchesAllTerms reports whether every term is a substring of at least one
// field.
func matchesAllTerms(terms []string, fields ...string) bool {
	for _, t := range terms {
		matched := false
		for _, f := range fields {
			if strings.Contains(f, t) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Search filters by language and category (both optional, AND-combined) and
// ranks by query relevance. Each term scores 3 for a name match, 2 for a
// directory-name match and 1 for a description match, additively; a term
// matching none of the three excludes the package. Results sort by score
// descending with a stable tie-break on catalog order. Without a query the
// filtered set is returned in catalog order.
func (r *Registry) Search(query, language, category string) []Package {
	pkgs := r.snapshot()
	lang := strings.ToLower(strings.TrimSpace(language))
	cat := strings.ToLower(strings.TrimSpace(category))

	filtered := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if lang != "" && string(p.Language) != lang {
			continue
		}
		if cat != "" && string(p.Category) != cat {
			continue
		}
		filtered = append(filtered, p)
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return filtered
	}

	type scored struct {
		pkg   Package
		score int
	}
	matches := make([]scored, 0, len(filtered))
	for _, p := range filtered {
		name := strings.ToLower(p.Name)
		dir := strings.ToLower(p.DirName)
		desc := strings.ToLower(p.Description)
		total := 0
		qualified := true
		for _, t := range terms {
			s := 0
			if strings.Contains(name, t) {
				s += 3
			}
			if strings.Contains(dir, t) {
				s += 2
			}
			if strings.Contains(desc, t) {
				s += 1
			}
			if s == 0 {
				qualified = false
				break
			}
			total += s
		}
		if !qualified {
			continue
		}
		matches = append(matches, scored{p, total})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Package, len(matches))
	for i, m := range matches {
		out[i] = m.pkg
	}
	return out
}
