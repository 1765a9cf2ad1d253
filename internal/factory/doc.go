// Package factory maps type names to the functions that describe and build
// them. It is the single extension point of the framework: a new
// constructible type is a schema function plus a constructor registered
// under a unique name.
//
// The registry is generic over the produced instance T and the shared
// construction context C, so the same implementation backs both simulation
// objects and construction actions.
package factory
