package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/placeholder"
)

// EnvConfig names the environment variable pointing at a config file.
const EnvConfig = "DEVGEN_CONFIG"

// LocalConfigFiles are tried in the working directory, in order.
var LocalConfigFiles = []string{"devgen.toml", ".devgen.toml", "devgen.yaml", ".devgen.yaml"}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is an explicit config file. It must exist.
	Path string

	// NoDiscovery skips DEVGEN_CONFIG, the working directory and XDG.
	NoDiscovery bool

	// Overrides are flat properties applied last, e.g. from --set.
	Overrides map[string]string
}

// Load merges the embedded defaults, the discovered user file and the
// overrides, then resolves {{property}} references and validates the
// result.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	path := opts.Path
	if path == "" && !opts.NoDiscovery {
		found, err := FindConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user configuration")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(overrideMap(opts.Overrides), "\x00"), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := build(k)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	logger.Debug().
		Int("properties", len(cfg.props)).
		Int("types", len(cfg.types)).
		Int("compounds", len(cfg.compounds)).
		Msg("Configuration ready")
	return cfg, nil
}

// LoadBytes builds a Config from TOML text merged over the embedded
// defaults. Tests and `config show --defaults` use it.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	if len(data) > 0 {
		if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse configuration")
		}
	}
	return build(k)
}

// FindConfigFile returns the first config file found via DEVGEN_CONFIG, the
// working directory or $XDG_CONFIG_HOME/devgen, or "" when there is none.
func FindConfigFile() (string, error) {
	if env := os.Getenv(EnvConfig); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "%s points at a missing file", EnvConfig).
				WithDetail("path", env)
		}
		return env, nil
	}
	for _, name := range LocalConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	xdg.Reload()
	if p, err := xdg.SearchConfigFile(filepath.Join("devgen", "devgen.toml")); err == nil {
		return p, nil
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// overrideMap nests flat property overrides under "properties" without
// splitting their dotted names.
func overrideMap(overrides map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(overrides))
	for k, v := range overrides {
		out["properties\x00"+k] = v
	}
	return out
}

func build(k *koanf.Koanf) (*Config, error) {
	raw := make(map[string]string)
	for key, v := range k.Cut("properties").All() {
		raw[key] = stringify(v)
	}
	props := placeholder.ResolveAll(raw)

	types := make(map[string]TypeEntry)
	if k.Exists("types") {
		if err := k.UnmarshalWithConf("types", &types, koanf.UnmarshalConf{
			Tag:           "koanf",
			DecoderConfig: decoderConfig(&types),
		}); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode [types]")
		}
	}

	compounds := make(map[string]CompoundList)
	if k.Exists("compounds") {
		if err := k.UnmarshalWithConf("compounds", &compounds, koanf.UnmarshalConf{
			Tag:           "koanf",
			DecoderConfig: decoderConfig(&compounds),
		}); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode [compounds]")
		}
	}

	if err := validate(types, compounds); err != nil {
		return nil, err
	}

	lookup := placeholder.MapLookup(props)
	for name, te := range types {
		te.Entry = expandEntry(te.Entry, lookup)
		if len(te.Names) > 0 {
			names := make(map[string]Entry, len(te.Names))
			for n, e := range te.Names {
				names[n] = expandEntry(e, lookup)
			}
			te.Names = names
		}
		types[name] = te
	}

	return &Config{props: props, types: types, compounds: compounds}, nil
}
