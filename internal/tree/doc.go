/*
Package tree provides the generic node primitive every model entity is built
on.

A Node has a name, a single weak back-reference to its parent and an ordered
collection of uniquely named children. Concrete entities (parameters,
functions, positions, sources, the model root) embed a Node and bind
themselves to it with Init, so that lookups return the entity rather than the
embedded primitive:

	p := &Parameter{}
	p.Init("index", p)

Resolve is the single path-lookup operation. Go offers no attribute-style
sugar, so typed accessors on the concrete entities (Source.Position,
SpectralComponent.Shape, ...) play that role and are thin wrappers over Child.
Names that would shadow structural accessors are rejected when a child is
registered.
*/
package tree
