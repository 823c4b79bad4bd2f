package libtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTrack builds a track or fails the test.
func newTrack(t *testing.T, gluing [][]Branch, measure []int64) *TrainTrack {
	t.Helper()
	tt, err := NewTrainTrack(gluing, measure)
	require.NoError(t, err)
	return tt
}

// genus2Gluing is a Dehn-Thurston track on the genus 2 surface. The pants
// decomposition has a separating curve (switch 2); switch 1 is left-turning,
// switches 2 and 3 are right-turning.
func genus2Gluing() [][]Branch {
	return [][]Branch{
		{1, 6, 5}, {-1, 4, -6},
		{-5, -4, 2}, {-8, -7, -2},
		{7, 9, 3}, {-9, 8, -3},
	}
}

// annulusGluing is a track with a left-twisting annulus around switch 1.
func annulusGluing() [][]Branch {
	return [][]Branch{
		{1, 2, 3, 4}, {-1, -5, -6, -7},
		{5}, {-2},
		{6}, {-3},
		{7}, {-4},
	}
}

func TestNewTrainTrackValidation(t *testing.T) {
	cases := []struct {
		desc    string
		gluing  [][]Branch
		measure []int64
		wantErr error
	}{
		{"odd list count", [][]Branch{{1}, {-1}, {2}}, nil, ErrBadGluingList},
		{"empty switch", [][]Branch{{1, -1}, {}}, nil, ErrBadGluingList},
		{"duplicate direction", [][]Branch{{1, 1}, {-1, -1}}, nil, ErrBadGluingList},
		{"label out of range", [][]Branch{{1, 3}, {-1, -3}}, nil, ErrBadGluingList},
		{"zero label", [][]Branch{{1, 0}, {-1, 0}}, nil, ErrBadGluingList},
		{"measure length", annulusGluing(), []int64{1, 2, 3}, ErrBadMeasure},
		{"negative weight", annulusGluing(), []int64{1, 2, 3, -4, 5, 6, 7}, ErrBadMeasure},
	}
	for _, tc := range cases {
		_, err := NewTrainTrack(tc.gluing, tc.measure)
		require.Error(t, err, tc.desc)
		require.ErrorIs(t, err, tc.wantErr, tc.desc)
	}
}

func TestAccessors(t *testing.T) {
	tt := newTrack(t, genus2Gluing(), nil)

	require.Equal(t, 3, tt.NumSwitches())
	require.Equal(t, 9, tt.NumBranches())
	require.False(t, tt.IsMeasured())

	require.Equal(t, []Branch{1, 6, 5}, tt.OutgoingBranches(1))
	require.Equal(t, []Branch{-8, -7, -2}, tt.OutgoingBranches(-2))

	require.Equal(t, Branch(1), tt.OutgoingBranch(1, 0, LEFT))
	require.Equal(t, Branch(5), tt.OutgoingBranch(1, 0, RIGHT))
	require.Equal(t, Branch(6), tt.OutgoingBranch(1, 1, RIGHT))

	require.Equal(t, 1, tt.OutgoingBranchIndex(1, 6, LEFT))
	require.Equal(t, 1, tt.OutgoingBranchIndex(1, 6, RIGHT))
	require.Equal(t, 2, tt.OutgoingBranchIndex(-2, -2, LEFT))
	require.Equal(t, -1, tt.OutgoingBranchIndex(1, 4, LEFT))

	// a branch direction points into the switch whose outgoing list holds
	// its reverse
	require.Equal(t, Switch(-1), tt.BranchEndpoint(1))
	require.Equal(t, Switch(1), tt.BranchEndpoint(-1))
	require.Equal(t, Switch(2), tt.BranchEndpoint(5))
	require.Equal(t, Switch(1), tt.BranchEndpoint(-5))
	require.Equal(t, Switch(-3), tt.BranchEndpoint(8))
	require.Equal(t, Switch(-2), tt.BranchEndpoint(2))
}

func TestCloneIsIndependent(t *testing.T) {
	tt := newTrack(t, annulusGluing(), []int64{1, 2, 3, 13, 5, 6, 7})
	cp := tt.Clone()

	require.NoError(t, tt.UnzipFoldPantsTwist(1, 1))
	require.NotEqual(t, tt.GluingSnapshot(), cp.GluingSnapshot())

	require.Equal(t, annulusGluing(), cp.GluingSnapshot())
	require.Equal(t, []int64{1, 2, 3, 13, 5, 6, 7}, cp.MeasureSnapshot())
}

func TestIsBalanced(t *testing.T) {
	balanced := newTrack(t, annulusGluing(), []int64{10, 2, 3, 4, 2, 3, 4})
	require.True(t, balanced.IsBalanced())

	skewed := newTrack(t, annulusGluing(), []int64{10, 2, 3, 4, 2, 3, 5})
	require.False(t, skewed.IsBalanced())

	unmeasured := newTrack(t, annulusGluing(), nil)
	require.True(t, unmeasured.IsBalanced())
}

func TestGetInfo(t *testing.T) {
	tt := newTrack(t, annulusGluing(), []int64{1, 2, 3, 13, 5, 6, 7})
	info := tt.GetInfo()
	require.Equal(t, int32(4), info.NumSwitches)
	require.Equal(t, int32(7), info.NumBranches)
	require.Equal(t, int64(37), info.TotalWeight)
}
