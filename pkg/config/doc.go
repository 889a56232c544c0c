// Package config is devgen's Configuration Store. Configuration is layered
// with koanf: the embedded defaults, then a user file (TOML or YAML), then
// --set overrides. Flat properties may reference each other as {{name}};
// those references, and the ones inside type entries, are resolved once at
// load time. The loaded Config is read-only.
package config
