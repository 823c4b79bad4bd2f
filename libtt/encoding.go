package libtt

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// The canonical encoding is the byte form of a track used as its catalog
// key: the switch count, then each outgoing list (count plus signed branch
// varints) in constructor order, then a measure flag and the weights.
// Tracks are equal exactly when their encodings are.

// AppendTrackEncoding appends the canonical encoding of the track to dst.
func (tt *TrainTrack) AppendTrackEncoding(dst []byte) []byte {
	var scratch [binary.MaxVarintLen64]byte

	dst = append(dst, byte(tt.NumSwitches()))
	for _, list := range tt.outgoing {
		n := binary.PutUvarint(scratch[:], uint64(len(list)))
		dst = append(dst, scratch[:n]...)
		for _, b := range list {
			n = binary.PutVarint(scratch[:], int64(b))
			dst = append(dst, scratch[:n]...)
		}
	}

	if tt.measure == nil {
		dst = append(dst, 0)
	} else {
		dst = append(dst, 1)
		for _, w := range tt.measure {
			n := binary.PutUvarint(scratch[:], uint64(w))
			dst = append(dst, scratch[:n]...)
		}
	}
	return dst
}

// DecodeTrack rebuilds a track from its canonical encoding.
func DecodeTrack(enc []byte) (*TrainTrack, error) {
	if len(enc) < 2 {
		return nil, errors.Wrap(ErrBadEncoding, "encoding too short")
	}
	numSwitches := int(enc[0])
	at := 1

	readUvarint := func() (uint64, error) {
		v, n := binary.Uvarint(enc[at:])
		if n <= 0 {
			return 0, errors.Wrap(ErrBadEncoding, "truncated varint")
		}
		at += n
		return v, nil
	}

	gluing := make([][]Branch, 2*numSwitches)
	numBranches := 0
	for i := range gluing {
		count, err := readUvarint()
		if err != nil {
			return nil, err
		}
		// clamp before allocating, a corrupt key could claim any count
		if count > 2*MaxBranches {
			return nil, errors.Wrapf(ErrBadEncoding, "outgoing list of %d branches", count)
		}
		list := make([]Branch, count)
		for j := range list {
			v, n := binary.Varint(enc[at:])
			if n <= 0 {
				return nil, errors.Wrap(ErrBadEncoding, "truncated branch varint")
			}
			at += n
			list[j] = Branch(v)
		}
		gluing[i] = list
		numBranches += len(list)
	}
	numBranches /= 2

	if at >= len(enc) {
		return nil, errors.Wrap(ErrBadEncoding, "missing measure flag")
	}
	measured := enc[at] != 0
	at++

	var measure []int64
	if measured {
		measure = make([]int64, numBranches)
		for i := range measure {
			w, err := readUvarint()
			if err != nil {
				return nil, err
			}
			measure[i] = int64(w)
		}
	}

	return NewTrainTrack(gluing, measure)
}

// PrintOpts controls track rendering.
type PrintOpts struct {
	NoMeasure bool // omit the measure suffix
}

// WriteAsString renders the track in TrackExpr form, so the output parses
// back with NewTrackFromString.
func (tt *TrainTrack) WriteAsString(out io.Writer, opts PrintOpts) error {
	for i, list := range tt.outgoing {
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, "("); err != nil {
			return err
		}
		for j, b := range list {
			if j > 0 {
				if _, err := io.WriteString(out, " "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(out, "%d", b); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, ")"); err != nil {
			return err
		}
	}

	if tt.measure != nil && !opts.NoMeasure {
		if _, err := io.WriteString(out, " :"); err != nil {
			return err
		}
		for _, w := range tt.measure {
			if _, err := fmt.Fprintf(out, " %d", w); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tt *TrainTrack) String() string {
	var sb strings.Builder
	tt.WriteAsString(&sb, PrintOpts{})
	return sb.String()
}
