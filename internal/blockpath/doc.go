/*
Package blockpath provides the structured representation of a block address
in the input tree and of the patterns the syntax registry matches against.

A path is a slash-separated sequence of block names, e.g. `Kernels/diff`.
A pattern has the same shape but may use `*` as a segment that matches any
single block name, e.g. `Kernels/*`.
*/
package blockpath
