// Package registry provides the central "glue" for the module system.
//
// The Registry holds the mappings between the names used in input files
// (block paths, "type" values) and the compiled Go types that implement
// them: the object factory, the action factory, the syntax associations and
// the stage list. Modules fill it through explicit registration at startup.
//
// Once populated the registry is validated so that every association points
// at a registered action, every default type exists and every schema agrees
// with its Go parameter struct. This catches a wide class of wiring mistakes
// before any input is read.
package registry
