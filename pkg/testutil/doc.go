// Package testutil provides fixtures for testing devgen components.
//
// Key components:
//   - MemFS: afero-backed in-memory filesystem seeded from a path -> content map
//   - FailingFS: wraps a filesystem and injects errors for chosen paths
//   - Project: an isolated on-disk project (temp dir, working directory,
//     configuration discovery variables) for command level tests
//
// Usage guidelines:
//   - Engine tests use MemFS; only CLI tests touch the real disk
//   - All test data should be defined inline, not in external files
package testutil
