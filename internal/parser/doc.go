// Package parser turns a block tree into actions.
//
// The Parser walks the tree in pre-order, resolves every block against the
// syntax registry and builds one action per resolved association through the
// action factory. Blocks that materialise objects are also bound against the
// schema of their object type, selected by the "type" parameter or the
// association's default type.
//
// Binding failures do not stop the walk: every problem in the input is
// collected and reported together. Parameters that no schema consumed and
// values that were assigned more than once are recorded and judged by a
// Policy once the build has finished.
package parser
