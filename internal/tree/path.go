package tree

import (
	"fmt"

	"github.com/specialistvlad/skymodel/internal/nodeid"
)

// Resolve walks the dotted path from root, one child per segment.
func Resolve(root Element, path string) (Element, error) {
	addr, err := nodeid.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPath, err)
	}

	current := root
	for i, segment := range addr.Path {
		next, err := current.TreeNode().Child(segment)
		if err != nil {
			walked := nodeid.Join(addr.Path[:i]...)
			if walked == "" {
				walked = "<root>"
			}
			return nil, fmt.Errorf("%w: cannot resolve '%s': no '%s' under '%s': %w", ErrPath, path, segment, walked, err)
		}
		current = next
	}
	return current, nil
}

// ResolveAs resolves path and asserts the element type.
func ResolveAs[T any](root Element, path string) (T, error) {
	var zero T
	e, err := Resolve(root, path)
	if err != nil {
		return zero, err
	}
	typed, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%w: '%s' resolves to %T, not %T", ErrPath, path, e, zero)
	}
	return typed, nil
}

// Set resolves path and writes v into the final element, which must be Settable.
func Set(root Element, path string, v float64) error {
	e, err := Resolve(root, path)
	if err != nil {
		return err
	}
	s, ok := e.(Settable)
	if !ok {
		return fmt.Errorf("%w: '%s' is a %T", ErrNotSettable, path, e)
	}
	if err := s.SetValue(v); err != nil {
		return fmt.Errorf("cannot set '%s': %w", path, err)
	}
	return nil
}

// PathOf returns the dotted path of e relative to its top-most ancestor.
// The top-most ancestor itself has an empty path.
func PathOf(e Element) string {
	var names []string
	for n := e.TreeNode(); n.parent != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return nodeid.Join(names...)
}

// Root returns the top-most ancestor of e.
func Root(e Element) Element {
	n := e.TreeNode()
	for n.parent != nil {
		n = n.parent
	}
	return n.Self()
}

// WalkFunc is called for every element visited by Walk.
type WalkFunc func(path string, e Element) error

// Walk visits every descendant of root in pre-order, children in insertion
// order. The root itself is not visited.
func Walk(root Element, fn WalkFunc) error {
	return walk(root.TreeNode(), nil, fn)
}

func walk(n *Node, prefix []string, fn WalkFunc) error {
	for _, child := range n.children {
		c := child.TreeNode()
		path := append(prefix[:len(prefix):len(prefix)], c.name)
		if err := fn(nodeid.Join(path...), child); err != nil {
			return err
		}
		if err := walk(c, path, fn); err != nil {
			return err
		}
	}
	return nil
}
