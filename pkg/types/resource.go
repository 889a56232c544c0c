package types

import (
	"sort"
	"strings"
)

// MaxExpansionDepth bounds how many compounds may nest inside each other.
const MaxExpansionDepth = 8

// Resource describes one generation request. It is owned by the runner acting
// on it and is cloned, never shared, when a compound fans out.
type Resource struct {
	Type             string
	SourceName       string
	SourceFolderPath string
	TargetName       string
	TargetFolderPath string

	// Props is the auxiliary bag copied in from configuration.
	Props map[string]string

	// Outputs lists the files written for this resource, in write order.
	Outputs []string

	// trail holds the keys of the compounds this resource was expanded from,
	// outermost first.
	trail []string
}

// NewResource creates a request for the given type and name.
func NewResource(typ, name string) *Resource {
	return &Resource{
		Type:       typ,
		SourceName: name,
		Props:      make(map[string]string),
	}
}

// Key identifies the resource as "type/name".
func (r *Resource) Key() string {
	return ResourceKey(r.Type, r.SourceName)
}

// ResourceKey formats a (type, name) pair the way Resource.Key does.
func ResourceKey(typ, name string) string {
	if name == "" {
		return typ
	}
	return typ + "/" + name
}

// EffectiveTargetName is TargetName, falling back to SourceName.
func (r *Resource) EffectiveTargetName() string {
	if r.TargetName != "" {
		return r.TargetName
	}
	return r.SourceName
}

func (r *Resource) Prop(key string) (string, bool) {
	v, ok := r.Props[key]
	return v, ok
}

func (r *Resource) SetProp(key, value string) {
	if r.Props == nil {
		r.Props = make(map[string]string)
	}
	r.Props[key] = value
}

// PropKeys returns the auxiliary property names sorted.
func (r *Resource) PropKeys() []string {
	keys := make([]string, 0, len(r.Props))
	for k := range r.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Resource) AddOutput(path string) {
	r.Outputs = append(r.Outputs, path)
}

// Clone returns a deep copy. Mutating the copy never affects r.
func (r *Resource) Clone() *Resource {
	c := *r
	c.Props = make(map[string]string, len(r.Props))
	for k, v := range r.Props {
		c.Props[k] = v
	}
	if r.Outputs != nil {
		c.Outputs = append([]string(nil), r.Outputs...)
	}
	if r.trail != nil {
		c.trail = append([]string(nil), r.trail...)
	}
	return &c
}

// Child clones r for a compound member: the clone takes the member's type and
// name, starts with no outputs and no target name, and remembers r as its
// parent. A target name set on a compound names the compound only.
func (r *Resource) Child(typ, name string) *Resource {
	c := r.Clone()
	c.Type = typ
	c.SourceName = name
	c.TargetName = ""
	c.Outputs = nil
	c.trail = append(c.trail, r.Key())
	return c
}

// Trail returns the compound keys this resource was expanded from.
func (r *Resource) Trail() []string {
	return append([]string(nil), r.trail...)
}

// Depth is the number of compounds above this resource.
func (r *Resource) Depth() int {
	return len(r.trail)
}

// Revisits reports whether r's own key already appears among its ancestors.
func (r *Resource) Revisits() bool {
	key := r.Key()
	for _, k := range r.trail {
		if k == key {
			return true
		}
	}
	return false
}

// TrailString renders the ancestry, ending with r itself: "a -> b -> c".
func (r *Resource) TrailString() string {
	return strings.Join(append(r.Trail(), r.Key()), " -> ")
}
