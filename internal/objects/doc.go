// Package objects defines the constructed simulation objects and the
// ObjectGraph that holds them.
//
// # Purpose
//
// Every block that materialises an object (a mesh, a variable, a kernel, an
// output, the executioner) produces exactly one Object, stored in the Graph
// under the last segment of its block path. Objects built later look up the
// ones they depend on through the same Graph.
//
// # Concurrency Model
//
// The Graph is written only by the single-threaded build and read afterwards.
// It is still guarded by an RWMutex so that the health-check server can list
// objects while a build is running.
package objects
