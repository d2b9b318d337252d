// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for element addresses
within a model tree, based on the canonical dotted format.

The format is a dot-separated sequence of element names, e.g.
`crab.main.shape.index`. Names are the same ones used to register children
in the tree, so this package also owns the naming rule every element must
satisfy.

This package centralizes all formatting and parsing logic so that the tree,
the parser and the model agree on what a path is.
*/
package nodeid
