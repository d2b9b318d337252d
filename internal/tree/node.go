package tree

import (
	"fmt"

	"github.com/specialistvlad/skymodel/internal/nodeid"
)

// reservedNames are structural accessor names children may not shadow.
var reservedNames = map[string]struct{}{
	"name":     {},
	"parent":   {},
	"children": {},
	"path":     {},
}

// IsReserved reports whether name is reserved for structural accessors.
func IsReserved(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// Element is implemented by everything that lives in a model tree.
type Element interface {
	TreeNode() *Node
}

// Settable is implemented by leaves that accept a numeric value through Set.
type Settable interface {
	SetValue(v float64) error
}

// Node is the tree primitive. The zero value is unusable; call Init first.
type Node struct {
	name string
	// self is the entity embedding this node; lookups return it.
	self Element
	// parent is a back-reference only, it does not own the parent.
	parent   *Node
	children []Element
	index    map[string]int
}

// NewNode returns a bare, bound node, useful for plain containers.
func NewNode(name string) (*Node, error) {
	n := &Node{}
	if err := n.Init(name, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Init names the node and binds it to the entity that embeds it.
func (n *Node) Init(name string, self Element) error {
	if err := nodeid.ValidateName(name); err != nil {
		return err
	}
	if self == nil {
		self = n
	}
	n.name = name
	n.self = self
	return nil
}

// TreeNode implements Element.
func (n *Node) TreeNode() *Node { return n }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Self returns the entity bound to this node.
func (n *Node) Self() Element {
	if n.self == nil {
		return n
	}
	return n.self
}

// Parent returns the owning element, or nil for a detached node.
func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent.Self()
}

// Rename changes the node name. Only detached nodes can be renamed, since
// the parent indexes children by name.
func (n *Node) Rename(name string) error {
	if n.parent != nil {
		return fmt.Errorf("%w: cannot rename '%s' while it belongs to '%s'", ErrAttached, n.name, n.parent.name)
	}
	if err := nodeid.ValidateName(name); err != nil {
		return err
	}
	n.name = name
	return nil
}

// AddChild attaches child under its own name. A child that already belongs
// to another parent is detached from it first.
func (n *Node) AddChild(child Element) error {
	if child == nil {
		return fmt.Errorf("cannot add a nil child to '%s'", n.name)
	}
	c := child.TreeNode()
	if c.self == nil {
		return fmt.Errorf("%w: child of '%s'", ErrUnbound, n.name)
	}
	if IsReserved(c.name) {
		return fmt.Errorf("%w: '%s' cannot be used as a child name of '%s'", ErrReservedName, c.name, n.name)
	}
	for anc := n; anc != nil; anc = anc.parent {
		if anc == c {
			return fmt.Errorf("%w: '%s' is an ancestor of '%s'", ErrCycle, c.name, n.name)
		}
	}
	if c.parent == n {
		return fmt.Errorf("%w: '%s' is already a child of '%s'", ErrDuplicateName, c.name, n.name)
	}
	if _, exists := n.index[c.name]; exists {
		return fmt.Errorf("%w: '%s' already has a child named '%s'", ErrDuplicateName, n.name, c.name)
	}

	if c.parent != nil {
		if _, err := c.parent.RemoveChild(c.name); err != nil {
			return err
		}
	}

	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[c.name] = len(n.children)
	n.children = append(n.children, c.Self())
	c.parent = n
	return nil
}

// AddChildren attaches each child in order, stopping at the first failure.
func (n *Node) AddChildren(children ...Element) error {
	for _, child := range children {
		if err := n.AddChild(child); err != nil {
			return err
		}
	}
	return nil
}

// RemoveChild detaches and returns the named child.
func (n *Node) RemoveChild(name string) (Element, error) {
	i, ok := n.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' has no child named '%s'", ErrNotFound, n.name, name)
	}
	child := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	delete(n.index, name)
	for j := i; j < len(n.children); j++ {
		n.index[n.children[j].TreeNode().name] = j
	}
	child.TreeNode().parent = nil
	return child, nil
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) (Element, error) {
	i, ok := n.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' has no child named '%s'", ErrNotFound, n.name, name)
	}
	return n.children[i], nil
}

// Has reports whether a direct child with the given name exists.
func (n *Node) Has(name string) bool {
	_, ok := n.index[name]
	return ok
}

// Children returns the children in insertion order.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }
