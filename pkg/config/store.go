package config

import (
	"sort"
)

// Store is the read-only configuration the engine consumes.
type Store interface {
	// Property returns a flat, load-time resolved property.
	Property(key string) (string, bool)

	// Properties returns a copy of every flat property.
	Properties() map[string]string

	// DynamicProperties returns the settings for (typ, name), falling back
	// to the type-level entry. ok is false when the pair is not configured.
	DynamicProperties(typ, name string) (Properties, bool)

	// CompoundList returns the ordered groups declared for a compound name.
	// An empty list means the name has no compound definition.
	CompoundList(name string) CompoundList
}

// Properties are the dynamic properties for one (type, name) pair.
type Properties struct {
	Runner       string
	SourceFolder string
	TargetFolder string
	TargetName   string
	Extensions   []string
	Templates    []string

	// Values is the auxiliary bag copied onto the Resource.
	Values map[string]string
}

// Clone deep-copies p.
func (p Properties) Clone() Properties {
	c := p
	c.Extensions = append([]string(nil), p.Extensions...)
	c.Templates = append([]string(nil), p.Templates...)
	c.Values = make(map[string]string, len(p.Values))
	for k, v := range p.Values {
		c.Values[k] = v
	}
	return c
}

// CompoundGroup is one sub-type of a compound with its member names, in
// declaration order.
type CompoundGroup struct {
	Type  string   `koanf:"type" toml:"type" yaml:"type" json:"type" validate:"required"`
	Names []string `koanf:"names" toml:"names" yaml:"names" json:"names" validate:"required,min=1,dive,required"`
}

// CompoundList is the ordered expansion of a compound.
type CompoundList []CompoundGroup

// Member is one (type, name) pair of a compound.
type Member struct {
	Type string
	Name string
}

// Members flattens the list in declaration order, dropping repeated pairs
// after their first occurrence.
func (l CompoundList) Members() []Member {
	seen := make(map[Member]bool)
	var out []Member
	for _, g := range l {
		for _, n := range g.Names {
			m := Member{Type: g.Type, Name: n}
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Empty reports whether the list declares no members at all.
func (l CompoundList) Empty() bool {
	for _, g := range l {
		if len(g.Names) > 0 {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
