package libtt

import (
	"github.com/pkg/errors"
)

// Fold folds the outgoing branch of s at foldedIdx over its neighbor at
// ontoIdx (both counted from startSide). The folded branch is dragged along
// the fold-onto branch, past the switch the fold-onto branch points into, and
// reattaches on the reversed orientation of that switch, at the end matching
// the side it wrapped around. The fold-onto branch absorbs the folded
// branch's weight.
//
// The fold is only possible when the reversed fold-onto branch is extremal
// at its endpoint on the wrapped side; otherwise ErrFoldBlocked is returned
// and the track is left inconsistent.
func (tt *TrainTrack) Fold(s Switch, foldedIdx, ontoIdx int, startSide Side) error {
	if foldedIdx-ontoIdx != 1 && ontoIdx-foldedIdx != 1 {
		return errors.Wrapf(ErrBadFoldIndex, "fold %d onto %d at switch %d", foldedIdx, ontoIdx, s)
	}
	b := tt.OutgoingBranch(s, foldedIdx, startSide)
	c := tt.OutgoingBranch(s, ontoIdx, startSide)
	t := tt.BranchEndpoint(c)

	// the fold wraps around the right side of c when the folded branch sits
	// to the right of it
	foldRight := (startSide == LEFT) == (foldedIdx > ontoIdx)

	tt.popOutgoing(s, tt.OutgoingBranchIndex(s, b, LEFT))

	if foldRight {
		if tt.OutgoingBranch(t, 0, LEFT) != -c {
			return errors.Wrapf(ErrFoldBlocked, "folding %d over %d at switch %d", b, c, t)
		}
		tt.insertOutgoing(-t, tt.NumOutgoing(-t), b)
	} else {
		if tt.OutgoingBranch(t, 0, RIGHT) != -c {
			return errors.Wrapf(ErrFoldBlocked, "folding %d over %d at switch %d", b, c, t)
		}
		tt.insertOutgoing(-t, 0, b)
	}
	tt.setEndpoint(-b, -t)

	if tt.IsMeasured() {
		tt.setMeasure(c, tt.BranchMeasure(c)+tt.BranchMeasure(b))
	}
	return nil
}

// ChangeSwitchOrientation swaps the two orientations of a switch, so that
// what used to leave s now leaves -s and vice versa.
func (tt *TrainTrack) ChangeSwitchOrientation(s Switch) {
	pos, neg := tt.out(s), tt.out(-s)
	tt.setOut(s, neg)
	tt.setOut(-s, pos)
	for _, b := range tt.out(s) {
		tt.setEndpoint(-b, s)
	}
	for _, b := range tt.out(-s) {
		tt.setEndpoint(-b, -s)
	}
}
