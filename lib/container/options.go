package container

import (
	"github.com/ftcontainers/xstl/lib/tree"
)

type options[V any] struct {
	alloc   tree.Allocator[tree.Node[V]]
	maxSize int64
}

// Option configures the tree backing a container. V is the stored
// value type, utility.Pair[K, V] for maps and the key for sets.
type Option[V any] func(*options[V])

// WithAllocator sets where the container takes its node storage from.
func WithAllocator[V any](alloc tree.Allocator[tree.Node[V]]) Option[V] {
	return func(o *options[V]) {
		o.alloc = alloc
	}
}

// WithMaxSize caps the number of elements.
func WithMaxSize[V any](n int64) Option[V] {
	return func(o *options[V]) {
		o.maxSize = n
	}
}

func treeOpts[K, V any](multi bool, opts []Option[V]) []tree.RBTreeOpt[K, V] {
	o := &options[V]{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	res := make([]tree.RBTreeOpt[K, V], 0, 3)
	if multi {
		res = append(res, tree.WithRBTreeMultiKey[K, V]())
	}
	if o.alloc != nil {
		res = append(res, tree.WithRBTreeAllocator[K, V](o.alloc))
	}
	if o.maxSize > 0 {
		res = append(res, tree.WithRBTreeMaxSize[K, V](o.maxSize))
	}
	return res
}
