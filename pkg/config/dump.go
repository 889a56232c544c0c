package config

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/arthur-debert/devgen/pkg/errors"
)

// Snapshot is the resolved configuration in a serializable shape.
type Snapshot struct {
	Properties map[string]string       `toml:"properties" yaml:"properties" json:"properties"`
	Types      map[string]TypeSnapshot `toml:"types" yaml:"types" json:"types"`
	Compounds  map[string]CompoundList `toml:"compounds,omitempty" yaml:"compounds,omitempty" json:"compounds,omitempty"`
}

// TypeSnapshot flattens TypeEntry for encoders that do not inline embedded
// structs the same way.
type TypeSnapshot struct {
	Runner       string            `toml:"runner" yaml:"runner" json:"runner"`
	SourceFolder string            `toml:"source_folder,omitempty" yaml:"source_folder,omitempty" json:"source_folder,omitempty"`
	TargetFolder string            `toml:"target_folder,omitempty" yaml:"target_folder,omitempty" json:"target_folder,omitempty"`
	TargetName   string            `toml:"target_name,omitempty" yaml:"target_name,omitempty" json:"target_name,omitempty"`
	Extensions   []string          `toml:"extensions,omitempty" yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Templates    []string          `toml:"templates,omitempty" yaml:"templates,omitempty" json:"templates,omitempty"`
	Props        map[string]string `toml:"props,omitempty" yaml:"props,omitempty" json:"props,omitempty"`
	Names        map[string]Entry  `toml:"names,omitempty" yaml:"names,omitempty" json:"names,omitempty"`
}

func (c *Config) Snapshot() Snapshot {
	s := Snapshot{
		Properties: c.Properties(),
		Types:      make(map[string]TypeSnapshot, len(c.types)),
		Compounds:  make(map[string]CompoundList, len(c.compounds)),
	}
	for name, te := range c.types {
		s.Types[name] = TypeSnapshot{
			Runner:       te.Runner,
			SourceFolder: te.SourceFolder,
			TargetFolder: te.TargetFolder,
			TargetName:   te.TargetName,
			Extensions:   te.Extensions,
			Templates:    te.Templates,
			Props:        te.Props,
			Names:        te.Names,
		}
	}
	for name := range c.compounds {
		s.Compounds[name] = c.CompoundList(name)
	}
	return s
}

// WriteText prints the resolved properties as sorted key=value lines under a
// header naming the source file.
func (c *Config) WriteText(w io.Writer) error {
	source := c.Path
	if source == "" {
		source = "embedded defaults"
	}
	if _, err := fmt.Fprintf(w, "# devgen configuration (%s)\n", source); err != nil {
		return err
	}
	for _, k := range c.PropertyKeys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, c.props[k]); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes the snapshot as toml, yaml or json.
func (c *Config) Marshal(format string) ([]byte, error) {
	s := c.Snapshot()
	switch format {
	case "toml":
		return toml.Marshal(s)
	case "yaml", "yml":
		return yamlv3.Marshal(s)
	case "json":
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format).
			WithDetail("supported", []string{"text", "toml", "yaml", "json"})
	}
}
