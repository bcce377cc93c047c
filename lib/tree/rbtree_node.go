package tree

// Node is the storage cell of a red-black tree. Nodes are owned by
// their tree and obtained from its Allocator, so the links are
// not exported and never form an owning relation between nodes.
type Node[V any] struct {
	parent *Node[V]
	left   *Node[V]
	right  *Node[V]
	value  V
	color  RBColor
}

func (node *Node[V]) Value() V {
	return node.value
}

func (node *Node[V]) Color() RBColor {
	return node.color
}

func (node *Node[V]) Parent() *Node[V] {
	return node.parent
}

func (node *Node[V]) Left() *Node[V] {
	return node.left
}

func (node *Node[V]) Right() *Node[V] {
	return node.right
}

func (node *Node[V]) isRed() bool {
	return node.color == Red
}

func (node *Node[V]) isBlack() bool {
	return node.color == Black
}
