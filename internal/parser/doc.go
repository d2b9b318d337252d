// Package parser turns a decoded model document into a linked model tree.
//
// Parsing runs in two passes. The first walks the document top to bottom,
// building every source and independent variable and queueing a link record
// for each parameter whose value is written as f(<path>). The second runs
// once the whole model exists, so links may refer to entries declared later
// in the document, and attaches each queued link in the order it was found.
//
// Any failure aborts the parse and no model is returned.
package parser
