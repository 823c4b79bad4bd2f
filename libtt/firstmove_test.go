package libtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lambda11Gluing is a Dehn-Thurston track on the genus 2 surface where both
// tori carry a self-connecting branch.
func lambda11Gluing() [][]Branch {
	return [][]Branch{
		{1, 5}, {-1, 4},
		{2, -8, 9, -7, -9}, {-2, -5, 6, -4, -6},
		{7, 3}, {8, -3},
	}
}

func TestFirstMoveGenus2Sequence(t *testing.T) {
	tt := newTrack(t, genus2Gluing(), []int64{100, 20, 30, 1, 1, 4, 2, 2, 1})

	require.NoError(t, tt.UnzipFoldFirstMove(1, nil, false))
	require.Equal(t, [][]Branch{
		{1, 5, 6}, {4, -1, -6},
		{-5, -4, 2}, {-8, -7, -2},
		{7, 9, 3}, {-9, 8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{99, 20, 30, 1, 1, 5, 2, 2, 1}, tt.MeasureSnapshot())

	require.NoError(t, tt.UnzipFoldFirstMove(-3, nil, false))
	require.Equal(t, [][]Branch{
		{1, 5, 6}, {4, -1, -6},
		{-5, -4, 2}, {-7, -8, -2},
		{9, 3, 7}, {-9, 8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{99, 22, 28, 1, 1, 5, 2, 2, 3}, tt.MeasureSnapshot())

	// undo both moves
	require.NoError(t, tt.UnzipFoldFirstMoveInverse(-3, nil))
	require.Equal(t, [][]Branch{
		{1, 5, 6}, {4, -1, -6},
		{-5, -4, 2}, {-8, -7, -2},
		{7, 9, 3}, {-9, 8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{99, 20, 30, 1, 1, 5, 2, 2, 1}, tt.MeasureSnapshot())

	require.NoError(t, tt.UnzipFoldFirstMoveInverse(1, nil))
	require.Equal(t, genus2Gluing(), tt.GluingSnapshot())
	require.Equal(t, []int64{100, 20, 30, 1, 1, 4, 2, 2, 1}, tt.MeasureSnapshot())
}

func TestFirstMoveLambda23HeavyTransversal(t *testing.T) {
	// the transversal weight dominates, so the unzip cuts across
	tt := newTrack(t, genus2Gluing(), []int64{3, 20, 3, 10, 10, 4, 15, 15, 1})

	require.NoError(t, tt.UnzipFoldFirstMove(1, nil, false))
	require.Equal(t, [][]Branch{
		{1, 6}, {4, -6},
		{-1, -5, -4, 5, 2}, {-8, -7, -2},
		{7, 9, 3}, {-9, 8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{3, 20, 3, 3, 7, 7, 15, 15, 1}, tt.MeasureSnapshot())

	require.NoError(t, tt.UnzipFoldFirstMove(-3, nil, false))
	require.Equal(t, [][]Branch{
		{1, 6}, {4, -6},
		{-1, -5, -4, 5, 2}, {-3, 7, -8, -7, -2},
		{9, 3}, {-9, 8},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{3, 23, 3, 3, 7, 7, 12, 3, 4}, tt.MeasureSnapshot())
}

func TestFirstMoveLambda11(t *testing.T) {
	tt := newTrack(t, lambda11Gluing(), []int64{100, 20, 30, 1, 1, 4, 4, 4, 1})

	require.NoError(t, tt.UnzipFoldFirstMove(1, nil, false))
	require.Equal(t, [][]Branch{
		{1, 5, -4}, {-6, -1, 4},
		{2, -8, 9, -7, -9}, {-2, -5, 6},
		{7, 3}, {8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{99, 16, 30, 1, 5, 5, 4, 4, 1}, tt.MeasureSnapshot())

	require.NoError(t, tt.UnzipFoldFirstMove(-3, nil, false))
	require.Equal(t, [][]Branch{
		{1, 5, -4}, {-6, -1, 4},
		{2, -9, -8}, {-2, -5, 6},
		{7, 3, 9}, {-7, 8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{99, 11, 26, 1, 5, 5, 4, 5, 5}, tt.MeasureSnapshot())
}

func TestFirstMoveLambda11HeavyTransversal(t *testing.T) {
	tt := newTrack(t, lambda11Gluing(), []int64{3, 20, 3, 10, 10, 13, 15, 15, 8})

	require.NoError(t, tt.UnzipFoldFirstMove(1, nil, false))
	require.Equal(t, [][]Branch{
		{1, -4}, {-6, 4},
		{2, -8, 9, -7, -9}, {-2, -1, -5, 6, 5},
		{7, 3}, {8, -3},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{16, 7, 3, 3, 7, 16, 15, 15, 8}, tt.MeasureSnapshot())

	require.NoError(t, tt.UnzipFoldFirstMove(-3, nil, false))
	require.Equal(t, [][]Branch{
		{1, -4}, {-6, 4},
		{-1, -5, 6, 5, 2}, {-9, 7, -8, -7, -2},
		{3, 9}, {-3, 8},
	}, tt.GluingSnapshot())
	require.Equal(t, []int64{16, 4, 3, 3, 7, 16, 12, 11, 11}, tt.MeasureSnapshot())
}

func TestFirstMoveInverseRoundTrip(t *testing.T) {
	start := []int64{3, 20, 3, 10, 10, 13, 15, 15, 8}
	tt := newTrack(t, lambda11Gluing(), start)

	require.NoError(t, tt.UnzipFoldFirstMove(1, nil, false))
	require.NoError(t, tt.UnzipFoldFirstMoveInverse(1, nil))

	require.Equal(t, lambda11Gluing(), tt.GluingSnapshot())
	require.Equal(t, start, tt.MeasureSnapshot())
}

func TestFirstMovePreservesBalance(t *testing.T) {
	// switch sums: 13/13 at switch 1, 66/66 at switch 2, 18/18 at switch 3
	tt := newTrack(t, lambda11Gluing(), []int64{3, 20, 3, 10, 10, 13, 15, 15, 8})
	require.True(t, tt.IsBalanced())

	require.NoError(t, tt.UnzipFoldFirstMove(1, nil, false))
	require.True(t, tt.IsBalanced())

	require.NoError(t, tt.UnzipFoldFirstMove(-3, nil, false))
	require.True(t, tt.IsBalanced())
}
