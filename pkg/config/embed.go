package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/devgen.toml
var defaultConfig []byte

// DefaultConfigName is the file `devgen config init` writes.
const DefaultConfigName = "devgen.toml"

// DefaultConfigContent returns the embedded default configuration.
func DefaultConfigContent() []byte {
	return append([]byte(nil), defaultConfig...)
}

// rawBytesProvider implements koanf.Provider for embedded bytes.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
