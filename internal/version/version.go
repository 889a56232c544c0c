package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/devgen/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/devgen/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/devgen/internal/version.Date={{.Date}}
)

// String renders the build information on one line.
func String() string {
	return fmt.Sprintf("devgen %s (commit %s, built %s)", Version, Commit, Date)
}
