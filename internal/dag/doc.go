// Package dag provides a small directed graph used to order work that has
// declared dependencies. Nodes are string IDs; their insertion order is the
// tie-break for everything the package returns, so results are
// reproducible for identical input.
package dag
