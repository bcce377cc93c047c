package tree

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
)

var _ RBTree[int, int] = (*Tree[int, int])(nil)

// Tree is a red-black tree of values V ordered by the key K extracted
// from each value. A single black sentinel node stands for every
// absent child and for the past-the-end position, so the real root's
// parent is always the sentinel and an empty tree has root == sentinel.
type Tree[K, V any] struct {
	sentinel *Node[V]
	root     *Node[V]
	count    int64
	maxSize  int64
	less     infra.LessFunc[K]
	keyOf    KeyOfValue[K, V]
	alloc    Allocator[Node[V]]
	isMulti  bool
}

func (tree *Tree[K, V]) Len() int64 {
	return tree.count
}

func (tree *Tree[K, V]) Empty() bool {
	return tree.count == 0
}

// MaxSize is the largest number of elements the tree may hold.
func (tree *Tree[K, V]) MaxSize() int64 {
	if tree.maxSize > 0 {
		return min(tree.maxSize, tree.alloc.MaxSize())
	}
	return tree.alloc.MaxSize()
}

func (tree *Tree[K, V]) Root() *Node[V] {
	return tree.root
}

func (tree *Tree[K, V]) IsNil(node *Node[V]) bool {
	return node == tree.sentinel
}

func (tree *Tree[K, V]) KeyOf(v V) K {
	return tree.keyOf(v)
}

// KeyLess returns the key ordering predicate (key_comp).
func (tree *Tree[K, V]) KeyLess() infra.LessFunc[K] {
	return tree.less
}

func (tree *Tree[K, V]) IsMultiKey() bool {
	return tree.isMulti
}

// Allocator returns the node allocator (get_allocator).
func (tree *Tree[K, V]) Allocator() Allocator[Node[V]] {
	return tree.alloc
}

func (tree *Tree[K, V]) key(node *Node[V]) K {
	return tree.keyOf(node.value)
}

func (tree *Tree[K, V]) minimum(node *Node[V]) *Node[V] {
	for node != tree.sentinel && node.left != tree.sentinel {
		node = node.left
	}
	return node
}

func (tree *Tree[K, V]) maximum(node *Node[V]) *Node[V] {
	for node != tree.sentinel && node.right != tree.sentinel {
		node = node.right
	}
	return node
}

// The succ node of the current node is its next node in sorted order.
// The maximum node's succ is the sentinel.
func (tree *Tree[K, V]) succ(x *Node[V]) *Node[V] {
	if x.right != tree.sentinel {
		return tree.minimum(x.right)
	}
	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != tree.sentinel && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// The minimum node's pred is the sentinel.
func (tree *Tree[K, V]) pred(x *Node[V]) *Node[V] {
	if x.left != tree.sentinel {
		return tree.maximum(x.left)
	}
	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != tree.sentinel && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// Height counts the nodes on the longest root-to-leaf path.
func (tree *Tree[K, V]) Height() int {
	var height func(node *Node[V]) int
	height = func(node *Node[V]) int {
		if node == tree.sentinel {
			return 0
		}
		return 1 + max(height(node.left), height(node.right))
	}
	return height(tree.root)
}

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. The sentinel (all NIL children) is black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// p6. Left subtree keys precede the node key and right subtree keys
//   do not, duplicates of a multi-key tree sit to the right.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *Tree[K, V]) leftRotate(x *Node[V]) {
	y := x.right
	if x == tree.sentinel || y == tree.sentinel {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	x.right = y.left
	if y.left != tree.sentinel {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == tree.sentinel:
		tree.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *Tree[K, V]) rightRotate(x *Node[V]) {
	y := x.left
	if x == tree.sentinel || y == tree.sentinel {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	x.left = y.right
	if y.right != tree.sentinel {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == tree.sentinel:
		tree.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

func (tree *Tree[K, V]) newNode(v V) (*Node[V], error) {
	if tree.count >= tree.MaxSize() {
		return nil, infra.WrapErrorStack(ErrMaxSizeExceeded)
	}
	node, err := tree.alloc.Allocate()
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[rbtree] allocate node")
	}
	tree.alloc.Construct(node, Node[V]{
		parent: tree.sentinel,
		left:   tree.sentinel,
		right:  tree.sentinel,
		value:  v,
		color:  Red,
	})
	return node, nil
}

func (tree *Tree[K, V]) freeNode(node *Node[V]) {
	tree.alloc.Destroy(node)
	tree.alloc.Deallocate(node)
}

// attach links a new red node as the left or right child of parent,
// whose slot must be the sentinel, then rebalances.
func (tree *Tree[K, V]) attach(parent *Node[V], toLeft bool, v V) (Iterator[K, V], error) {
	z, err := tree.newNode(v)
	if err != nil {
		return tree.End(), err
	}
	z.parent = parent
	switch {
	case parent == tree.sentinel:
		tree.root = z
	case toLeft:
		parent.left = z
	default:
		parent.right = z
	}
	tree.count++
	tree.insertRebalance(z)
	return Iterator[K, V]{tree: tree, node: z}, nil
}

// Insert adds v. A unique-key tree returns the existing element and
// false when an equivalent key is present. A multi-key tree routes
// equivalent keys to the right, so the new element becomes the last
// one of its run of duplicates.
func (tree *Tree[K, V]) Insert(v V) (Iterator[K, V], bool, error) {
	k := tree.keyOf(v)
	x, y := tree.root, tree.sentinel
	toLeft := true
	for x != tree.sentinel {
		y = x
		xk := tree.key(x)
		if /* less */ tree.less(k, xk) {
			toLeft = true
			x = x.left
			continue
		}
		if /* equal */ !tree.isMulti && !tree.less(xk, k) {
			return Iterator[K, V]{tree: tree, node: x}, false, nil
		}
		/* greater or duplicate */
		toLeft = false
		x = x.right
	}

	it, err := tree.attach(y, toLeft, v)
	if err != nil {
		return it, false, err
	}
	return it, true, nil
}

// InsertHint inserts v using hint as a suggestion of the position
// right after v. When the suggestion is right the insertion
// skips the descent, otherwise it falls back to Insert.
func (tree *Tree[K, V]) InsertHint(hint Iterator[K, V], v V) (Iterator[K, V], bool, error) {
	if hint.tree != tree || tree.count == 0 {
		return tree.Insert(v)
	}

	k := tree.keyOf(v)
	// Duplicates are appended after their run.
	notAfter := func(node *Node[V]) bool {
		if tree.isMulti {
			return !tree.less(k, tree.key(node))
		}
		return tree.less(tree.key(node), k)
	}

	if hint.node == tree.sentinel {
		if last := tree.maximum(tree.root); notAfter(last) {
			it, err := tree.attach(last, false, v)
			return it, err == nil, err
		}
		return tree.Insert(v)
	}

	hk := tree.key(hint.node)
	if tree.less(k, hk) {
		if hint.node == tree.minimum(tree.root) {
			it, err := tree.attach(hint.node, true, v)
			return it, err == nil, err
		}
		if before := tree.pred(hint.node); notAfter(before) {
			var it Iterator[K, V]
			var err error
			if before.right == tree.sentinel {
				it, err = tree.attach(before, false, v)
			} else {
				it, err = tree.attach(hint.node, true, v)
			}
			return it, err == nil, err
		}
		return tree.Insert(v)
	}

	if !tree.isMulti && tree.less(hk, k) {
		after := tree.succ(hint.node)
		if after == tree.sentinel || tree.less(k, tree.key(after)) {
			var it Iterator[K, V]
			var err error
			if hint.node.right == tree.sentinel {
				it, err = tree.attach(hint.node, false, v)
			} else {
				it, err = tree.attach(after, true, v)
			}
			return it, err == nil, err
		}
	}
	return tree.Insert(v)
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, hold p3 and p4. The sentinel
above the root is black, so the loop always stops at the root.

im2: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im4 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4: Handle im3 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *Tree[K, V]) insertRebalance(x *Node[V]) {
	for /* im1 */ x.parent.isRed() {
		p := x.parent
		gp := p.parent
		if p == gp.left {
			if uncle := gp.right; /* im2 */ uncle.isRed() {
				p.color = Black
				uncle.color = Black
				gp.color = Red
				x = gp
				continue
			}
			if /* im3 */ x == p.right {
				x = p
				tree.leftRotate(x)
				p = x.parent
			}
			/* im4 */
			p.color = Black
			gp.color = Red
			tree.rightRotate(gp)
		} else {
			if uncle := gp.left; /* im2 */ uncle.isRed() {
				p.color = Black
				uncle.color = Black
				gp.color = Red
				x = gp
				continue
			}
			if /* im3 */ x == p.left {
				x = p
				tree.rightRotate(x)
				p = x.parent
			}
			/* im4 */
			p.color = Black
			gp.color = Red
			tree.leftRotate(gp)
		}
	}
	tree.root.color = Black
}

// transplant replaces the subtree rooted at u by the one rooted at v.
// v may be the sentinel, whose parent is then borrowed by the erase
// rebalance to climb back up.
func (tree *Tree[K, V]) transplant(u, v *Node[V]) {
	switch {
	case u.parent == tree.sentinel:
		tree.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	v.parent = u.parent
}

/*
r1: Node Z has at most one child, splice it out by its child
(or the sentinel).

r2: Node Z has left and right children. Its succ S is the minimum of
the right subtree and has no left child. S is relinked into the place
of Z and takes over Z's color, so the structural removal happens at
S's old position. Nodes are relinked, never their values swapped, so
every other element keeps its node.

	  |                    |
	  Z                    S
	 / \                  / \
	L  ..   relink(S)    L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..               Sr  ..
	   \
	    Sr

r3: The removed color is black, the path through X lost one black
node. (black-violation)
*/
func (tree *Tree[K, V]) removeNode(z *Node[V]) {
	var x *Node[V]
	y, yColor := z, z.color
	switch {
	case /* r1 */ z.left == tree.sentinel:
		x = z.right
		tree.transplant(z, z.right)
	case /* r1 */ z.right == tree.sentinel:
		x = z.left
		tree.transplant(z, z.left)
	default: /* r2 */
		y = tree.minimum(z.right)
		yColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			tree.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		tree.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if /* r3 */ yColor == Black {
		tree.removeRebalance(x)
	}
	// Reset the borrowed parent link.
	tree.sentinel.parent = tree.sentinel
	tree.count--
	tree.freeNode(z)
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) X is left node of P, left rotate P
(2) X is right node of P, right rotate P.
(3) repaint S into black, P into red.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [D]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: The sibling S, nephew node Sc and Sd are black.
Repaint S into red, the deficit moves up to P. A red P absorbs it
by being painted black at the end of the loop.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: Current node X's sibling S is black, nephew node Sc is red and Sd
is black.
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm4 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm4: Current node X's sibling S is black, nephew node Sd is red.
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) S takes P's color, P is painted black.
(4) Repaint Sd into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *Tree[K, V]) removeRebalance(x *Node[V]) {
	for x != tree.root && x.isBlack() {
		p := x.parent
		if x == p.left {
			sibling := p.right
			if /* rm1 */ sibling.isRed() {
				sibling.color = Black
				p.color = Red
				tree.leftRotate(p)
				sibling = p.right
			}
			if /* rm2 */ sibling.left.isBlack() && sibling.right.isBlack() {
				sibling.color = Red
				x = p
				continue
			}
			if /* rm3 */ sibling.right.isBlack() {
				sibling.left.color = Black
				sibling.color = Red
				tree.rightRotate(sibling)
				sibling = p.right
			}
			/* rm4 */
			sibling.color = p.color
			p.color = Black
			sibling.right.color = Black
			tree.leftRotate(p)
			x = tree.root
		} else {
			sibling := p.left
			if /* rm1 */ sibling.isRed() {
				sibling.color = Black
				p.color = Red
				tree.rightRotate(p)
				sibling = p.left
			}
			if /* rm2 */ sibling.left.isBlack() && sibling.right.isBlack() {
				sibling.color = Red
				x = p
				continue
			}
			if /* rm3 */ sibling.left.isBlack() {
				sibling.right.color = Black
				sibling.color = Red
				tree.leftRotate(sibling)
				sibling = p.left
			}
			/* rm4 */
			sibling.color = p.color
			p.color = Black
			sibling.left.color = Black
			tree.rightRotate(p)
			x = tree.root
		}
	}
	x.color = Black
}

// Erase removes the element at pos and returns the iterator of the
// element that followed it. Erasing End() is a no-op.
func (tree *Tree[K, V]) Erase(pos Iterator[K, V]) Iterator[K, V] {
	if pos.tree != tree || pos.node == tree.sentinel || pos.node == nil {
		return tree.End()
	}
	next := tree.succ(pos.node)
	tree.removeNode(pos.node)
	return Iterator[K, V]{tree: tree, node: next}
}

// EraseKey removes every element equivalent to key and returns how
// many were removed.
func (tree *Tree[K, V]) EraseKey(key K) int64 {
	first, last := tree.EqualRange(key)
	n := int64(0)
	for it := first; !it.Equal(last); n++ {
		it = tree.Erase(it)
	}
	return n
}

// EraseRange removes [first, last) and returns last.
func (tree *Tree[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	if first.Equal(tree.Begin()) && last.Equal(tree.End()) {
		tree.Clear()
		return tree.End()
	}
	for first.tree == tree && !first.Equal(last) && first.node != tree.sentinel {
		first = tree.Erase(first)
	}
	return last
}

// Find returns the first element equivalent to key, or End().
func (tree *Tree[K, V]) Find(key K) Iterator[K, V] {
	it := tree.LowerBound(key)
	if it.node == tree.sentinel || tree.less(key, tree.key(it.node)) {
		return tree.End()
	}
	return it
}

func (tree *Tree[K, V]) Count(key K) int64 {
	first, last := tree.EqualRange(key)
	n := int64(0)
	for it := first; !it.Equal(last); it = it.Next() {
		n++
	}
	return n
}

// LowerBound returns the first element whose key is not less than key.
func (tree *Tree[K, V]) LowerBound(key K) Iterator[K, V] {
	x, y := tree.root, tree.sentinel
	for x != tree.sentinel {
		if !tree.less(tree.key(x), key) {
			y = x
			x = x.left
		} else {
			x = x.right
		}
	}
	return Iterator[K, V]{tree: tree, node: y}
}

// UpperBound returns the first element whose key is greater than key.
func (tree *Tree[K, V]) UpperBound(key K) Iterator[K, V] {
	x, y := tree.root, tree.sentinel
	for x != tree.sentinel {
		if tree.less(key, tree.key(x)) {
			y = x
			x = x.left
		} else {
			x = x.right
		}
	}
	return Iterator[K, V]{tree: tree, node: y}
}

func (tree *Tree[K, V]) EqualRange(key K) (Iterator[K, V], Iterator[K, V]) {
	return tree.LowerBound(key), tree.UpperBound(key)
}

func (tree *Tree[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{tree: tree, node: tree.minimum(tree.root)}
}

func (tree *Tree[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{tree: tree, node: tree.sentinel}
}

// Inorder traversal to implement the DFS.
func (tree *Tree[K, V]) Foreach(action func(idx int64, color RBColor, v V) bool) {
	idx := int64(0)
	for aux := tree.minimum(tree.root); aux != tree.sentinel; aux = tree.succ(aux) {
		if !action(idx, aux.color, aux.value) {
			return
		}
		idx++
	}
}

// All returns an iterator over the values from smallest to largest key.
// The tree must not be modified during the iteration.
func (tree *Tree[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for aux := tree.minimum(tree.root); aux != tree.sentinel; aux = tree.succ(aux) {
			if !yield(aux.value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values from largest to smallest key.
func (tree *Tree[K, V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for aux := tree.maximum(tree.root); aux != tree.sentinel; aux = tree.pred(aux) {
			if !yield(aux.value) {
				return
			}
		}
	}
}

// Clear releases every node in post-order, the tree stays usable.
func (tree *Tree[K, V]) Clear() {
	if tree.root == tree.sentinel {
		return
	}

	// The height of a red-black tree is at most 2*log2(n+1).
	stack := make([]*Node[V], 0, 64)
	defer func() {
		clear(stack)
	}()

	var last *Node[V]
	aux := tree.root
	for len(stack) > 0 || aux != tree.sentinel {
		if aux != tree.sentinel {
			stack = append(stack, aux)
			aux = aux.left
			continue
		}
		top := stack[len(stack)-1]
		if top.right != tree.sentinel && top.right != last {
			aux = top.right
			continue
		}
		stack = stack[:len(stack)-1]
		tree.freeNode(top)
		last = top
	}
	tree.root = tree.sentinel
	tree.count = 0
}

// Release clears the tree and drops its sentinel. The tree and its
// iterators must not be used afterwards.
func (tree *Tree[K, V]) Release() {
	if tree.sentinel == nil {
		return
	}
	tree.Clear()
	tree.sentinel.parent, tree.sentinel.left, tree.sentinel.right = nil, nil, nil
	tree.sentinel = nil
	tree.root = nil
}

// Clone deep copies the tree structure, colors included, into nodes
// taken from a clone of the allocator. No storage is shared.
func (tree *Tree[K, V]) Clone() (*Tree[K, V], error) {
	dup := &Tree[K, V]{
		maxSize: tree.maxSize,
		less:    tree.less,
		keyOf:   tree.keyOf,
		alloc:   tree.alloc.Clone(),
		isMulti: tree.isMulti,
	}
	dup.init()

	var err error
	var copyTree func(src, parent *Node[V]) *Node[V]
	copyTree = func(src, parent *Node[V]) *Node[V] {
		if src == tree.sentinel || err != nil {
			return dup.sentinel
		}
		var node *Node[V]
		if node, err = dup.newNode(src.value); err != nil {
			return dup.sentinel
		}
		dup.count++
		node.color = src.color
		node.parent = parent
		node.left = copyTree(src.left, node)
		node.right = copyTree(src.right, node)
		return node
	}
	dup.root = copyTree(tree.root, dup.sentinel)
	if err != nil {
		dup.Clear()
		return nil, err
	}
	return dup, nil
}

func (tree *Tree[K, V]) init() {
	sentinel := &Node[V]{color: Black}
	sentinel.parent, sentinel.left, sentinel.right = sentinel, sentinel, sentinel
	tree.sentinel = sentinel
	tree.root = sentinel
	tree.count = 0
	if tree.alloc == nil {
		tree.alloc = NewHeapAllocator[Node[V]]()
	}
}

type RBTreeOpt[K, V any] func(*Tree[K, V])

// WithRBTreeMultiKey permits equivalent keys.
func WithRBTreeMultiKey[K, V any]() RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		tree.isMulti = true
	}
}

// WithRBTreeDesc reverses the key order.
func WithRBTreeDesc[K, V any]() RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		tree.less = tree.less.Reverse()
	}
}

func WithRBTreeAllocator[K, V any](alloc Allocator[Node[V]]) RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		if alloc != nil {
			tree.alloc = alloc
		}
	}
}

// WithRBTreeMaxSize caps the number of elements below the allocator's
// own limit.
func WithRBTreeMaxSize[K, V any](n int64) RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		if n > 0 {
			tree.maxSize = n
		}
	}
}

func NewRBTree[K, V any](less infra.LessFunc[K], keyOf KeyOfValue[K, V], opts ...RBTreeOpt[K, V]) *Tree[K, V] {
	if less == nil || keyOf == nil {
		panic("[rbtree] nil ordering or key extraction policy")
	}
	tree := &Tree[K, V]{
		less:  less,
		keyOf: keyOf,
	}
	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}
	tree.init()
	return tree
}
