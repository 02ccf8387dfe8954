package filter

import (
	"fmt"
	"regexp"
	"strings"

	"meshweld/internal/mesh"
)

// Exclude drops input meshes by name before they reach the welder.
//
// Plain patterns match as case-insensitive substrings. Patterns with a
// "re:" prefix are regular expressions, case-insensitive as well.
type Exclude struct {
	substrings []string
	regexps    []*regexp.Regexp
}

// NewExclude compiles patterns. Empty patterns are ignored.
func NewExclude(patterns []string) (*Exclude, error) {
	ex := &Exclude{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if expr, ok := strings.CutPrefix(p, "re:"); ok {
			re, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, fmt.Errorf("filter: pattern %q: %w", p, err)
			}
			ex.regexps = append(ex.regexps, re)
			continue
		}
		ex.substrings = append(ex.substrings, strings.ToLower(p))
	}
	return ex, nil
}

// Empty reports whether no pattern is configured.
func (ex *Exclude) Empty() bool {
	return ex == nil || len(ex.substrings)+len(ex.regexps) == 0
}

// Match reports whether a mesh with this name should be excluded.
func (ex *Exclude) Match(name string) bool {
	if ex.Empty() {
		return false
	}
	lower := strings.ToLower(name)
	for _, s := range ex.substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	for _, re := range ex.regexps {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Apply returns the meshes not matched by ex, in order, and the number
// dropped.
func (ex *Exclude) Apply(meshes []mesh.Mesh) ([]mesh.Mesh, int) {
	if ex.Empty() {
		return meshes, 0
	}
	kept := make([]mesh.Mesh, 0, len(meshes))
	for _, m := range meshes {
		if ex.Match(m.Name) {
			continue
		}
		kept = append(kept, m)
	}
	return kept, len(meshes) - len(kept)
}
