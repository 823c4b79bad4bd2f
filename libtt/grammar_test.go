package libtt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTrackFromString(t *testing.T) {
	tt, err := NewTrackFromString("(-1 2 3) (-2 4 -3) (5) (-5 -4 1) : 11 3 100 11 2")
	require.NoError(t, err)

	require.Equal(t, [][]Branch{{-1, 2, 3}, {-2, 4, -3}, {5}, {-5, -4, 1}},
		tt.GluingSnapshot())
	require.Equal(t, []int64{11, 3, 100, 11, 2}, tt.MeasureSnapshot())
}

func TestNewTrackFromStringUnmeasured(t *testing.T) {
	tt, err := NewTrackFromString("(1 2 3 4) (-1 -5 -6 -7) (5) (-2) (6) (-3) (7) (-4)")
	require.NoError(t, err)
	require.False(t, tt.IsMeasured())
	require.Equal(t, annulusGluing(), tt.GluingSnapshot())
}

func TestTrackStringRoundTrip(t *testing.T) {
	tt := newTrack(t, genus2Gluing(), []int64{100, 20, 30, 1, 1, 4, 2, 2, 1})

	parsed, err := NewTrackFromString(tt.String())
	require.NoError(t, err)
	require.Equal(t, tt.GluingSnapshot(), parsed.GluingSnapshot())
	require.Equal(t, tt.MeasureSnapshot(), parsed.MeasureSnapshot())

	// NoMeasure drops the weight suffix
	unmeasured := newTrack(t, genus2Gluing(), nil)
	require.Equal(t, unmeasured.String(), mustRender(t, tt, PrintOpts{NoMeasure: true}))
}

func mustRender(t *testing.T, tt *TrainTrack, opts PrintOpts) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, tt.WriteAsString(&sb, opts))
	return sb.String()
}

func TestNewTrackFromStringErrors(t *testing.T) {
	// syntax error
	_, err := NewTrackFromString("(1 2")
	require.Error(t, err)

	// parses but fails validation
	_, err = NewTrackFromString("(1 1) (-1 -1)")
	require.ErrorIs(t, err, ErrBadGluingList)

	_, err = NewTrackFromString("(1) (-1) : -5")
	require.ErrorIs(t, err, ErrBadMeasure)
}
