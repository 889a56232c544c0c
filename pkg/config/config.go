package config

import (
	"strings"

	"github.com/arthur-debert/devgen/pkg/placeholder"
)

// Well known property keys.
const (
	KeySourceTypes          = "source.types"
	KeyPlaceholderExtension = "files.placeholder.extensions"
	KeyGoRoot               = "target.go.root"
	KeyGoModule             = "target.go.module"
	KeyUIRoot               = "target.ui.root"
)

// DefaultExtensions applies when files.placeholder.extensions is unset.
var DefaultExtensions = []string{"go", "xml", "html", "md", "txt", "json", "yaml", "toml"}

// Entry is a type or name level block of dynamic properties.
type Entry struct {
	Runner       string            `koanf:"runner" toml:"runner,omitempty" yaml:"runner,omitempty" json:"runner,omitempty" validate:"omitempty,runnerid"`
	SourceFolder string            `koanf:"source_folder" toml:"source_folder,omitempty" yaml:"source_folder,omitempty" json:"source_folder,omitempty"`
	TargetFolder string            `koanf:"target_folder" toml:"target_folder,omitempty" yaml:"target_folder,omitempty" json:"target_folder,omitempty"`
	TargetName   string            `koanf:"target_name" toml:"target_name,omitempty" yaml:"target_name,omitempty" json:"target_name,omitempty"`
	Extensions   []string          `koanf:"extensions" toml:"extensions,omitempty" yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Props        map[string]string `koanf:"props" toml:"props,omitempty" yaml:"props,omitempty" json:"props,omitempty"`
}

// TypeEntry is the [types.<type>] block. Runner is mandatory here.
type TypeEntry struct {
	Entry     `koanf:",squash" yaml:",inline"`
	Templates []string         `koanf:"templates" toml:"templates,omitempty" yaml:"templates,omitempty" json:"templates,omitempty"`
	Names     map[string]Entry `koanf:"names" toml:"names,omitempty" yaml:"names,omitempty" json:"names,omitempty" validate:"dive"`
}

// Config is the loaded Store.
type Config struct {
	// Path is the user file merged over the defaults, empty when none.
	Path string

	props     map[string]string
	types     map[string]TypeEntry
	compounds map[string]CompoundList
}

var _ Store = (*Config)(nil)

func (c *Config) Property(key string) (string, bool) {
	v, ok := c.props[key]
	return v, ok
}

func (c *Config) Properties() map[string]string {
	out := make(map[string]string, len(c.props))
	for k, v := range c.props {
		out[k] = v
	}
	return out
}

// PropertyKeys returns the flat property names sorted.
func (c *Config) PropertyKeys() []string {
	return sortedKeys(c.props)
}

// TypeNames returns the configured types sorted.
func (c *Config) TypeNames() []string {
	return sortedKeys(c.types)
}

// TemplateNames returns the names declared for typ: the name level entries
// plus the type level allow-list, sorted and de-duplicated.
func (c *Config) TemplateNames(typ string) []string {
	te, ok := c.types[typ]
	if !ok {
		return nil
	}
	set := make(map[string]bool)
	for n := range te.Names {
		set[n] = true
	}
	for _, n := range te.Templates {
		set[n] = true
	}
	return sortedKeys(set)
}

// CompoundNames returns the declared compounds sorted.
func (c *Config) CompoundNames() []string {
	return sortedKeys(c.compounds)
}

// DynamicProperties resolves (typ, name). A name level entry is merged over
// the type level one. Without one, the type level entry applies when its
// templates allow-list is empty or contains name.
func (c *Config) DynamicProperties(typ, name string) (Properties, bool) {
	te, ok := c.types[typ]
	if !ok {
		return Properties{}, false
	}

	entry := te.Entry
	if ne, ok := te.Names[name]; ok && name != "" {
		entry = merge(entry, ne)
	} else if name != "" && len(te.Templates) > 0 && !contains(te.Templates, name) {
		return Properties{}, false
	}

	p := Properties{
		Runner:       entry.Runner,
		SourceFolder: entry.SourceFolder,
		TargetFolder: entry.TargetFolder,
		TargetName:   entry.TargetName,
		Extensions:   entry.Extensions,
		Templates:    te.Templates,
		Values:       entry.Props,
	}
	if len(p.Extensions) == 0 {
		p.Extensions = c.PlaceholderExtensions()
	}
	return p.Clone(), true
}

func (c *Config) CompoundList(name string) CompoundList {
	list := c.compounds[name]
	out := make(CompoundList, len(list))
	for i, g := range list {
		out[i] = CompoundGroup{Type: g.Type, Names: append([]string(nil), g.Names...)}
	}
	return out
}

// PlaceholderExtensions parses files.placeholder.extensions.
func (c *Config) PlaceholderExtensions() []string {
	raw, ok := c.props[KeyPlaceholderExtension]
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), DefaultExtensions...)
	}
	var out []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// merge overlays the non-empty fields of over onto base.
func merge(base, over Entry) Entry {
	out := base
	if over.Runner != "" {
		out.Runner = over.Runner
	}
	if over.SourceFolder != "" {
		out.SourceFolder = over.SourceFolder
	}
	if over.TargetFolder != "" {
		out.TargetFolder = over.TargetFolder
	}
	if over.TargetName != "" {
		out.TargetName = over.TargetName
	}
	if len(over.Extensions) > 0 {
		out.Extensions = over.Extensions
	}
	if len(over.Props) > 0 {
		props := make(map[string]string, len(base.Props)+len(over.Props))
		for k, v := range base.Props {
			props[k] = v
		}
		for k, v := range over.Props {
			props[k] = v
		}
		out.Props = props
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// expandEntry resolves {{property}} references in every string field.
func expandEntry(e Entry, lookup placeholder.Lookup) Entry {
	e.SourceFolder = placeholder.Expand(e.SourceFolder, lookup)
	e.TargetFolder = placeholder.Expand(e.TargetFolder, lookup)
	e.TargetName = placeholder.Expand(e.TargetName, lookup)
	if len(e.Props) > 0 {
		props := make(map[string]string, len(e.Props))
		for k, v := range e.Props {
			props[k] = placeholder.Expand(v, lookup)
		}
		e.Props = props
	}
	return e
}
