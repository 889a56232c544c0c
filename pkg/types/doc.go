// Package types holds the data shared by every layer of devgen: the Resource
// describing one generation request and the FS abstraction runners write
// through.
package types
