package replacer

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/types"
)

const (
	TokenGoPackage  = "go.package"
	TokenGoType     = "go.type"
	TokenGoReceiver = "go.receiver"
	TokenGoImport   = "go.import"
)

// Go is the replacer of the service runner.
type Go struct{}

func (Go) Replace(text string, res *types.Resource, store config.Store) string {
	return withExtra(text, res, store, GoTokens(res, store))
}

// GoTokens derives the Go specific tokens for res.
func GoTokens(res *types.Resource, store config.Store) map[string]string {
	typeName := PascalCase(res.EffectiveTargetName())
	receiver := ""
	if typeName != "" {
		r := []rune(typeName)
		receiver = string(unicode.ToLower(r[0]))
	}
	return map[string]string{
		TokenGoPackage:  PackageName(res.TargetFolderPath),
		TokenGoType:     typeName,
		TokenGoReceiver: receiver,
		TokenGoImport:   importPath(res.TargetFolderPath, store),
	}
}

// PascalCase turns "billing-api" or "billing_api" into "BillingApi" and
// keeps inner capitals: "userID" becomes "UserID".
func PascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' ' || r == '/'
	})
	// Casers are stateful, so one per call.
	titler := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titler.String(p))
	}
	return b.String()
}

// PackageName derives a Go package name from the last element of dir.
func PackageName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		return "main"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		return "_" + name
	}
	return name
}

func importPath(targetFolder string, store config.Store) string {
	module, root := "", ""
	if store != nil {
		module, _ = store.Property(config.KeyGoModule)
		root, _ = store.Property(config.KeyGoRoot)
	}
	rel := filepath.ToSlash(filepath.Clean(targetFolder))
	if root != "" {
		// The root's parent is the module directory.
		parent := filepath.Dir(filepath.Clean(root))
		if r, err := filepath.Rel(parent, targetFolder); err == nil && !strings.HasPrefix(r, "..") {
			rel = filepath.ToSlash(r)
		}
	}
	if module == "" {
		return rel
	}
	return path.Join(module, rel)
}
