// Package filesystem provides types.FS implementations: the plain OS
// filesystem, an afero adapter used by tests and dry runs, and a synthfs
// backed filesystem whose writes run as synthfs operations. It also holds
// the recursive template enumerator and tree copy helpers.
package filesystem
