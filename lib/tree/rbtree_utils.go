package tree

import (
	"errors"

	"go.uber.org/multierr"
)

var (
	ErrRedViolation   = errors.New("rbtree red violation")
	ErrBlackViolation = errors.New("rbtree black violation")
	ErrOrderViolation = errors.New("rbtree order violation")
	ErrSizeViolation  = errors.New("rbtree size violation")
)

func blackDepthTo[K, V any](tree *Tree[K, V], target, to *Node[V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if aux.isBlack() {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[K, V any](tree *Tree[K, V]) error {
	if tree.sentinel == nil || tree.root == tree.sentinel {
		return nil
	}
	if tree.root.isRed() || tree.sentinel.isRed() {
		return ErrRedViolation
	}

	stack := make([]*Node[V], 0, tree.count>>1)
	defer func() {
		clear(stack)
	}()

	aux := tree.root
	for ; aux != tree.sentinel; aux = aux.left {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; aux.isRed() {
			if aux.parent.isRed() || aux.left.isRed() || aux.right.isRed() {
				return ErrRedViolation
			}
		}

		stack = stack[:size-1]
		for aux = aux.right; aux != tree.sentinel; aux = aux.left {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes owning at least one nil child.
func bfsLeaves[K, V any](tree *Tree[K, V]) []*Node[V] {
	if tree.sentinel == nil || tree.root == tree.sentinel {
		return nil
	}

	leaves := make([]*Node[V], 0, tree.count>>1+1)
	queue := make([]*Node[V], 0, tree.count>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, tree.root)

	for len(queue) > 0 {
		aux := queue[0]
		l, r := aux.left, aux.right
		if /* nil leaves, keep one */ l == tree.sentinel || r == tree.sentinel {
			leaves = append(leaves, aux)
		}
		if l != tree.sentinel {
			queue = append(queue, l)
		}
		if r != tree.sentinel {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K, V any](tree *Tree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](tree, leaves[0], tree.sentinel)
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](tree, leaves[i], tree.sentinel) != blackDepth {
			return ErrBlackViolation
		}
	}
	return nil
}

// OrderViolationValidate checks the in-order keys never decrease
// (strictly increase for unique-key trees) and every child links
// back to its parent.
func OrderViolationValidate[K, V any](tree *Tree[K, V]) error {
	if tree.sentinel == nil || tree.root == tree.sentinel {
		return nil
	}
	if tree.root.parent != tree.sentinel {
		return ErrOrderViolation
	}
	var prev *Node[V]
	for aux := tree.minimum(tree.root); aux != tree.sentinel; aux = tree.succ(aux) {
		if (aux.left != tree.sentinel && aux.left.parent != aux) ||
			(aux.right != tree.sentinel && aux.right.parent != aux) {
			return ErrOrderViolation
		}
		if prev != nil {
			pk, k := tree.key(prev), tree.key(aux)
			if tree.less(k, pk) || (!tree.isMulti && !tree.less(pk, k)) {
				return ErrOrderViolation
			}
		}
		prev = aux
	}
	return nil
}

// SizeViolationValidate checks the element count matches the nodes.
func SizeViolationValidate[K, V any](tree *Tree[K, V]) error {
	if tree.sentinel == nil {
		return nil
	}
	n := int64(0)
	for aux := tree.minimum(tree.root); aux != tree.sentinel; aux = tree.succ(aux) {
		n++
	}
	if n != tree.count {
		return ErrSizeViolation
	}
	return nil
}

// Validate runs every rbtree property check and combines the failures.
func Validate[K, V any](tree *Tree[K, V]) error {
	return multierr.Combine(
		RedViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		OrderViolationValidate[K, V](tree),
		SizeViolationValidate[K, V](tree),
	)
}
