package libtt

import (
	"github.com/pkg/errors"
)

// floorDiv rounds the quotient towards negative infinity, so that
// a == floorDiv(a, b)*b + floorMod(a, b) with floorMod in [0, b).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

// UnzipFoldGeneralTwist realizes a combination of Dehn twists about the
// pants curve: twistsOnLeft twists of the branches entering on the curve's
// left side and twistsOnRight of those on its right. Positive twists are
// left (counterclockwise) twists.
//
// The track is first rotated around the curve so that the twists on the
// turning side become folds, then the remaining twists on the other side are
// realized by folds if they go with the turning and by unzips against it.
func (tt *TrainTrack) UnzipFoldGeneralTwist(pantsCurve Switch, twistsOnLeft, twistsOnRight int) error {
	sw := pantsCurve
	turning, err := tt.GetTurning(sw)
	if err != nil {
		return err
	}
	nleft, nright, err := tt.NumCurvesOnSides(sw)
	if err != nil {
		return err
	}
	if nleft == 0 || nright == 0 {
		return errors.Wrapf(ErrNoTransversals, "twisting about switch %d", sw)
	}

	var numRotations, goodFixed, goodOther, nOther int
	if turning == RIGHT {
		// rotate so the right side ends up with 0 to nright-1 good twists
		numRotations = -floorDiv(twistsOnRight, nright)
		goodFixed = floorMod(twistsOnRight, nright)
		goodOther = twistsOnLeft - numRotations*nleft
		nOther = nleft
	} else {
		// rotate so the left side ends up with -(nleft-1) to 0 twists
		numRotations = -floorDiv(-twistsOnLeft, nleft)
		goodFixed = floorMod(-twistsOnLeft, nleft)
		// positive when the right side only needs folds, negative when it
		// needs unzips
		goodOther = -(twistsOnRight + numRotations*nright)
		nOther = nright
	}

	for i := 0; i < goodFixed; i++ {
		if err := tt.Fold(-sw, 1, 0, turning); err != nil {
			return err
		}
	}

	if goodOther > 0 {
		for i := 0; i < goodOther; i++ {
			if err := tt.Fold(sw, 1, 0, turning); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		// the position of the next unzip
		pos := nOther
		if -goodOther < nOther {
			pos = -goodOther
		}
		pos--

		cut, err := tt.UnzipWithCollapse(sw, pos, TWO_SIDED, nil, turning.Opposite())
		if err != nil {
			return err
		}
		goodOther += pos + 1

		if cut == 0 {
			// unzipped into the pants curve
			if goodOther == 0 {
				return nil
			}
			continue
		}

		// the unzip went across, into a branch on the other side
		b := tt.OutgoingBranch(-sw, 0, turning)
		endSw := tt.BranchEndpoint(b)
		idx := tt.OutgoingBranchIndex(endSw, -b, turning)
		if idx < 0 {
			return errors.Wrapf(ErrBranchNotFound, "branch %d at switch %d", -b, endSw)
		}

		// fold back one of the split branches to recover the pants curve
		if err := tt.Fold(endSw, idx+1, idx, turning); err != nil {
			return err
		}

		// fold up the branches that were pulled around the pants curve
		for i := 0; i < cut-1; i++ {
			if err := tt.Fold(-sw, 1, 0, turning.Opposite()); err != nil {
				return err
			}
		}

		// fold up all remaining branches on the other side
		for i := 0; i < -goodOther; i++ {
			if err := tt.Fold(sw, 1, 0, turning.Opposite()); err != nil {
				return err
			}
		}

		// the switch was rotated by 180 degrees
		tt.ChangeSwitchOrientation(sw)
		return nil
	}
}

// UnzipFoldPantsTwist realizes the power-th Dehn twist about the pants curve.
func (tt *TrainTrack) UnzipFoldPantsTwist(pantsCurve Switch, power int) error {
	_, nright, err := tt.NumCurvesOnSides(pantsCurve)
	if err != nil {
		return err
	}
	return tt.UnzipFoldGeneralTwist(pantsCurve, 0, power*nright)
}
