package tree

import "github.com/ftcontainers/xstl/lib/utility"

var (
	_ utility.Bidirectional[Iterator[int, int]] = Iterator[int, int]{}
	_ utility.Readable[int]                     = Iterator[int, int]{}
)

// Iterator is a bidirectional position in a tree, either an element
// node or the past-the-end sentinel.
// An iterator stays valid until the element it refers to is erased,
// insertions and erasures of other elements never invalidate it.
type Iterator[K, V any] struct {
	tree *Tree[K, V]
	node *Node[V]
}

// Next moves to the in-order successor. Past-the-end stays put.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	if it.tree == nil || it.node == it.tree.sentinel {
		return it
	}
	return Iterator[K, V]{tree: it.tree, node: it.tree.succ(it.node)}
}

// Prev moves to the in-order predecessor. Past-the-end moves to the
// largest element, the smallest element moves to past-the-end.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	if it.tree == nil {
		return it
	}
	if it.node == it.tree.sentinel {
		return Iterator[K, V]{tree: it.tree, node: it.tree.maximum(it.tree.root)}
	}
	return Iterator[K, V]{tree: it.tree, node: it.tree.pred(it.node)}
}

func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.tree == other.tree && it.node == other.node
}

// IsEnd reports whether it is the past-the-end position.
func (it Iterator[K, V]) IsEnd() bool {
	return it.tree == nil || it.node == it.tree.sentinel
}

// Value returns the element, or the zero value at past-the-end.
func (it Iterator[K, V]) Value() V {
	if it.IsEnd() {
		var zero V
		return zero
	}
	return it.node.value
}

// Pointer gives in-place access to the element, nil at past-the-end.
// The part of the value the key is extracted from must not be modified.
func (it Iterator[K, V]) Pointer() *V {
	if it.IsEnd() {
		return nil
	}
	return &it.node.value
}

// Node exposes the underlying node, nil at past-the-end.
func (it Iterator[K, V]) Node() *Node[V] {
	if it.IsEnd() {
		return nil
	}
	return it.node
}

func (it Iterator[K, V]) Category() utility.IteratorCategory {
	return utility.BidirectionalIterator
}
