package tree

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"unsafe"
)

var (
	ErrOutOfMemory     = errors.New("[rbtree] allocator out of memory")
	ErrMaxSizeExceeded = errors.New("[rbtree] max size exceeded")
)

// Allocator is the memory capability of the tree. The tree allocates
// raw storage, constructs a node value into it, and on erasure
// destroys the value before handing the storage back.
// Implementations are not required to be thread safe unless they
// are shared by several trees.
type Allocator[T any] interface {
	// Allocate returns uninitialized storage for one T, or
	// ErrOutOfMemory (possibly wrapped) when it is exhausted.
	Allocate() (*T, error)
	Deallocate(p *T)
	Construct(p *T, val T)
	Destroy(p *T)
	MaxSize() int64
	// Clone returns an independent allocator of the same kind,
	// used when a container is deep copied.
	Clone() Allocator[T]
}

func maxSizeOf[T any]() int64 {
	size := int64(unsafe.Sizeof(*new(T)))
	if size == 0 {
		return math.MaxInt64
	}
	return math.MaxInt64 / size
}

var _ Allocator[int] = (*HeapAllocator[int])(nil)

// HeapAllocator takes storage from the Go heap and counts the cells
// in use.
type HeapAllocator[T any] struct {
	inUse int64
}

func NewHeapAllocator[T any]() *HeapAllocator[T] {
	return &HeapAllocator[T]{}
}

func (a *HeapAllocator[T]) Allocate() (*T, error) {
	atomic.AddInt64(&a.inUse, 1)
	return new(T), nil
}

func (a *HeapAllocator[T]) Deallocate(p *T) {
	if p == nil {
		return
	}
	if atomic.AddInt64(&a.inUse, -1) < 0 {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] deallocate a pointer not owned by the allocator")
	}
}

func (a *HeapAllocator[T]) Construct(p *T, val T) {
	*p = val
}

func (a *HeapAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (a *HeapAllocator[T]) MaxSize() int64 {
	return maxSizeOf[T]()
}

func (a *HeapAllocator[T]) Clone() Allocator[T] {
	return NewHeapAllocator[T]()
}

// InUse returns the number of cells allocated and not yet released.
func (a *HeapAllocator[T]) InUse() int64 {
	return atomic.LoadInt64(&a.inUse)
}

var _ Allocator[int] = (*LimitedAllocator[int])(nil)

// LimitedAllocator refuses to hand out more than limit cells at once.
type LimitedAllocator[T any] struct {
	inner Allocator[T]
	limit int64
	inUse int64
}

func NewLimitedAllocator[T any](inner Allocator[T], limit int64) *LimitedAllocator[T] {
	if inner == nil {
		inner = NewHeapAllocator[T]()
	}
	return &LimitedAllocator[T]{
		inner: inner,
		limit: limit,
	}
}

func (a *LimitedAllocator[T]) Allocate() (*T, error) {
	if atomic.AddInt64(&a.inUse, 1) > a.limit {
		atomic.AddInt64(&a.inUse, -1)
		return nil, ErrOutOfMemory
	}
	p, err := a.inner.Allocate()
	if err != nil {
		atomic.AddInt64(&a.inUse, -1)
		return nil, err
	}
	return p, nil
}

func (a *LimitedAllocator[T]) Deallocate(p *T) {
	if p == nil {
		return
	}
	atomic.AddInt64(&a.inUse, -1)
	a.inner.Deallocate(p)
}

func (a *LimitedAllocator[T]) Construct(p *T, val T) {
	a.inner.Construct(p, val)
}

func (a *LimitedAllocator[T]) Destroy(p *T) {
	a.inner.Destroy(p)
}

func (a *LimitedAllocator[T]) MaxSize() int64 {
	return min(a.limit, a.inner.MaxSize())
}

func (a *LimitedAllocator[T]) Clone() Allocator[T] {
	return NewLimitedAllocator[T](a.inner.Clone(), a.limit)
}

func (a *LimitedAllocator[T]) InUse() int64 {
	return atomic.LoadInt64(&a.inUse)
}

var _ Allocator[int] = (*PoolAllocator[int])(nil)

// PoolAllocator recycles released cells through a sync.Pool, which
// pays off for containers with heavy insert/erase churn.
type PoolAllocator[T any] struct {
	pool  *sync.Pool
	inUse int64
}

func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{
		pool: &sync.Pool{
			New: func() any {
				return new(T)
			},
		},
	}
}

func (a *PoolAllocator[T]) Allocate() (*T, error) {
	atomic.AddInt64(&a.inUse, 1)
	return a.pool.Get().(*T), nil
}

func (a *PoolAllocator[T]) Deallocate(p *T) {
	if p == nil {
		return
	}
	atomic.AddInt64(&a.inUse, -1)
	a.pool.Put(p)
}

func (a *PoolAllocator[T]) Construct(p *T, val T) {
	*p = val
}

func (a *PoolAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (a *PoolAllocator[T]) MaxSize() int64 {
	return maxSizeOf[T]()
}

func (a *PoolAllocator[T]) Clone() Allocator[T] {
	return NewPoolAllocator[T]()
}

func (a *PoolAllocator[T]) InUse() int64 {
	return atomic.LoadInt64(&a.inUse)
}
