package libtt

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackEncodingRoundTrip(t *testing.T) {
	measured := newTrack(t, genus2Gluing(), []int64{100, 20, 30, 1, 1, 4, 2, 2, 1})
	unmeasured := newTrack(t, annulusGluing(), nil)

	for _, tt := range []*TrainTrack{measured, unmeasured} {
		enc := tt.AppendTrackEncoding(nil)
		got, err := DecodeTrack(enc)
		require.NoError(t, err)
		require.Equal(t, tt.GluingSnapshot(), got.GluingSnapshot())
		require.Equal(t, tt.MeasureSnapshot(), got.MeasureSnapshot())

		// encoding is canonical
		require.Equal(t, enc, got.AppendTrackEncoding(nil))
	}
}

func TestTrackEncodingDistinguishesMeasures(t *testing.T) {
	a := newTrack(t, annulusGluing(), []int64{1, 2, 3, 13, 5, 6, 7})
	b := newTrack(t, annulusGluing(), []int64{1, 2, 3, 14, 5, 6, 7})
	c := newTrack(t, annulusGluing(), nil)

	encA := a.AppendTrackEncoding(nil)
	require.NotEqual(t, encA, b.AppendTrackEncoding(nil))
	require.NotEqual(t, encA, c.AppendTrackEncoding(nil))
}

func TestDecodeTrackTruncated(t *testing.T) {
	enc := newTrack(t, genus2Gluing(), []int64{100, 20, 30, 1, 1, 4, 2, 2, 1}).
		AppendTrackEncoding(nil)

	_, err := DecodeTrack(nil)
	require.ErrorIs(t, err, ErrBadEncoding)

	for _, cut := range []int{1, 2, len(enc) / 2, len(enc) - 1} {
		_, err := DecodeTrack(enc[:cut])
		require.Error(t, err, "truncated at %d", cut)
	}
}

func TestDecodeTrackRejectsHugeListCount(t *testing.T) {
	// a corrupt key claiming a gigantic outgoing list must not allocate it
	enc := []byte{1}
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], 1<<40)
	enc = append(enc, scratch[:n]...)

	_, err := DecodeTrack(enc)
	require.ErrorIs(t, err, ErrBadEncoding)
}
