package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLessFunc(t *testing.T) {
	testcases := []struct {
		name  string
		less  LessFunc[int]
		a, b  int
		cmp   int
		equiv bool
	}{
		{"less asc", Less[int](), 1, 2, -1, false},
		{"less desc", Less[int](), 3, 2, 1, false},
		{"less equal", Less[int](), 2, 2, 0, true},
		{"greater asc", Greater[int](), 1, 2, 1, false},
		{"greater desc", Greater[int](), 3, 2, -1, false},
		{"reversed less", Less[int]().Reverse(), 1, 2, 1, false},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.cmp, tc.less.Compare(tc.a, tc.b))
			require.Equal(tt, tc.equiv, tc.less.Equivalent(tc.a, tc.b))
		})
	}
}

func TestLessFunc_Strings(t *testing.T) {
	less := Less[string]()
	require.True(t, less("abc", "abd"))
	require.False(t, less("b", "abc"))
	require.True(t, less.Equivalent("x", "x"))
}
