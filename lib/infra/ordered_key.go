package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// OrderedKey is the set of key types that own a natural order
// through the built-in < operator.
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// LessFunc is a strict weak ordering over keys.
// It must be irreflexive (!less(a, a)) and transitive, and
// the incomparability !less(a, b) && !less(b, a) is treated
// as key equivalence by the ordered containers.
type LessFunc[K any] func(a, b K) bool

// Less returns the ascending order predicate (std::less).
func Less[K OrderedKey]() LessFunc[K] {
	return func(a, b K) bool {
		return a < b
	}
}

// Greater returns the descending order predicate (std::greater).
func Greater[K OrderedKey]() LessFunc[K] {
	return func(a, b K) bool {
		return a > b
	}
}

// Equivalent reports whether neither key precedes the other.
func (less LessFunc[K]) Equivalent(a, b K) bool {
	return !less(a, b) && !less(b, a)
}

// Compare folds the predicate into a three-way result.
//  1. a precedes b, return -1, turn to left part.
//  2. b precedes a, return 1, turn to right part.
//  3. otherwise the keys are equivalent, return 0.
func (less LessFunc[K]) Compare(a, b K) int {
	if less(a, b) {
		return -1
	} else if less(b, a) {
		return 1
	}
	return 0
}

// Reverse flips the order of the predicate.
func (less LessFunc[K]) Reverse() LessFunc[K] {
	return func(a, b K) bool {
		return less(b, a)
	}
}
