// Package placeholder finds and substitutes {{token}} markers. Tokens are
// flat names (letters, digits, '.', '_' and '-'); surrounding whitespace
// inside the braces is ignored. Unknown tokens are always left verbatim.
package placeholder

import (
	"regexp"
	"sort"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`)

// Lookup resolves one token name.
type Lookup func(name string) (string, bool)

// Expand replaces every token lookup knows. The replacement text is not
// scanned again.
func Expand(text string, lookup Lookup) string {
	if lookup == nil {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := tokenPattern.FindStringSubmatch(match)[1]
		if v, ok := lookup(name); ok {
			return v
		}
		return match
	})
}

// Tokens returns the distinct token names in text, sorted.
func Tokens(text string) []string {
	seen := map[string]bool{}
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether text contains at least one token.
func Has(text string) bool {
	return tokenPattern.MatchString(text)
}

// MapLookup adapts a map.
func MapLookup(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Chain tries each lookup in order and returns the first hit.
func Chain(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l(name); ok {
				return v, true
			}
		}
		return "", false
	}
}

// MaxPasses bounds ResolveAll.
const MaxPasses = 16

// ResolveAll expands references between the values of props until nothing
// changes or MaxPasses is reached. Each pass reads the values left by the
// previous one, so the result does not depend on map order. A key that
// references itself, directly or through a cycle, is never substituted: its
// value and every reference to it stay verbatim. The input is not modified.
func ResolveAll(props map[string]string) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	cyclic := cyclicKeys(props)

	for pass := 0; pass < MaxPasses; pass++ {
		prev := make(map[string]string, len(out))
		for k, v := range out {
			prev[k] = v
		}

		changed := false
		for k, v := range prev {
			if cyclic[k] || !Has(v) {
				continue
			}
			next := Expand(v, func(name string) (string, bool) {
				if cyclic[name] {
					return "", false
				}
				return MapLookup(prev)(name)
			})
			if next != v {
				out[k] = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return out
}

// cyclicKeys returns the keys of props that can reach themselves through
// their references.
func cyclicKeys(props map[string]string) map[string]bool {
	refs := make(map[string][]string, len(props))
	for k, v := range props {
		for _, t := range Tokens(v) {
			if _, ok := props[t]; ok {
				refs[k] = append(refs[k], t)
			}
		}
	}

	cyclic := make(map[string]bool)
	for start := range refs {
		seen := map[string]bool{}
		stack := append([]string(nil), refs[start]...)
		for len(stack) > 0 {
			k := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if k == start {
				cyclic[start] = true
				break
			}
			if seen[k] {
				continue
			}
			seen[k] = true
			stack = append(stack, refs[k]...)
		}
	}
	return cyclic
}
