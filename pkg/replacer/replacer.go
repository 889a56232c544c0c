// Package replacer holds the placeholder replacers runners hand to the
// ReplacePlaceholders command. Every replacer understands the common
// vocabulary; language or layout specific replacers add their own tokens.
package replacer

import (
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/placeholder"
	"github.com/arthur-debert/devgen/pkg/types"
)

// Replacer substitutes {{token}} markers in generated text. Tokens it does
// not know are left verbatim.
type Replacer interface {
	Replace(text string, res *types.Resource, store config.Store) string
}

// Common token names.
const (
	TokenType         = "type"
	TokenName         = "name"
	TokenTargetName   = "target.name"
	TokenSourceFolder = "source.folder"
	TokenTargetFolder = "target.folder"
)

// CommonLookup resolves the shared vocabulary. Resource fields come first,
// then the resource's auxiliary properties, then store properties.
func CommonLookup(res *types.Resource, store config.Store) placeholder.Lookup {
	fields := map[string]string{
		TokenType:         res.Type,
		TokenName:         res.SourceName,
		TokenTargetName:   res.EffectiveTargetName(),
		TokenSourceFolder: res.SourceFolderPath,
		TokenTargetFolder: res.TargetFolderPath,
	}
	var storeLookup placeholder.Lookup
	if store != nil {
		storeLookup = store.Property
	}
	return placeholder.Chain(
		placeholder.MapLookup(fields),
		placeholder.MapLookup(res.Props),
		storeLookup,
	)
}

// Common replaces only the shared vocabulary.
type Common struct{}

func (Common) Replace(text string, res *types.Resource, store config.Store) string {
	return placeholder.Expand(text, CommonLookup(res, store))
}

// ConfigProps is the replacer of the configprops runner.
type ConfigProps struct {
	Common
}

// withExtra builds a Replace that consults extra before the common tokens.
func withExtra(text string, res *types.Resource, store config.Store, extra map[string]string) string {
	return placeholder.Expand(text, placeholder.Chain(
		placeholder.MapLookup(extra),
		CommonLookup(res, store),
	))
}
