// Package registry provides a generic, type-safe name registry. Runner
// factories and pipeline commands are registered into instances of it,
// usually from init() functions.
package registry
