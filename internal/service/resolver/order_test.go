package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCompareVersions checks ordering of release identifiers seen on the API.
func TestCompareVersions(t *testing.T) {
	t.Parallel()

	ascending := [][2]string{
		{"1.9.4", "1.10.2"},
		{"1.20", "1.20.1"},
		{"1.20.1", "1.20.2"},
		{"1.20.2-pre1", "1.20.2"},
		{"1.20.2-pre1", "1.20.2-rc1"},
		{"1.20.6", "1.21"},
	}

	for _, pair := range ascending {
		require.Negative(t, compareVersions(pair[0], pair[1]), pair)
		require.Positive(t, compareVersions(pair[1], pair[0]), pair)
	}

	require.Zero(t, compareVersions("1.20.2", "1.20.2"))
}

// TestFirstOutOfOrder verifies the index reported for unordered lists.
func TestFirstOutOfOrder(t *testing.T) {
	t.Parallel()

	require.Zero(t, firstVersionOutOfOrder([]string{"1.8.8", "1.9.4", "1.20.2"}))
	require.Equal(t, 2, firstVersionOutOfOrder([]string{"1.8.8", "1.21", "1.20.2"}))
	require.Zero(t, firstVersionOutOfOrder(nil))

	require.Zero(t, firstBuildOutOfOrder([]int{1, 2, 2, 5}))
	require.Equal(t, 1, firstBuildOutOfOrder([]int{9, 3}))
}
