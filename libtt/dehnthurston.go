package libtt

import (
	"github.com/pkg/errors"
)

// This file holds the Dehn-Thurston specific queries: every switch of such a
// track sits on a pants curve, with the pants branch running along one side.

// GetTurning returns the side of the switch that its pants branch turns to:
// LEFT when the leftmost outgoing branches of s and -s are the two directions
// of the same branch, RIGHT for the rightmost ones.
func (tt *TrainTrack) GetTurning(s Switch) (Side, error) {
	for _, side := range [2]Side{LEFT, RIGHT} {
		if tt.OutgoingBranch(s, 0, side) == -tt.OutgoingBranch(-s, 0, side) {
			return side, nil
		}
	}
	return LEFT, errors.Wrapf(ErrNoTurning, "switch %d", s)
}

// PantsBranchOnSwitch returns the label of the branch running along the pants
// curve at the switch.
func (tt *TrainTrack) PantsBranchOnSwitch(s Switch) (Branch, error) {
	for _, side := range [2]Side{LEFT, RIGHT} {
		b1 := tt.OutgoingBranch(s, 0, side)
		b2 := tt.OutgoingBranch(-s, 0, side)
		if b1 == -b2 {
			return absB(b1), nil
		}
	}
	return 0, errors.Wrapf(ErrNoPantsBranch, "switch %d", s)
}

// ElemMoveType returns 1 if the pants curve bounds a once-punctured torus
// and 2 if it bounds a four-times punctured sphere.
//
// It is the first move exactly when some branch leaving each end of the
// curve lands on a common switch different from the curve's own.
func (tt *TrainTrack) ElemMoveType(pantsCurve Switch) int {
	for _, i := range tt.out(pantsCurve) {
		sw1 := tt.BranchEndpoint(i)
		if absS(sw1) == absS(pantsCurve) {
			continue
		}
		for _, j := range tt.out(-pantsCurve) {
			if tt.BranchEndpoint(j) == sw1 {
				return 1
			}
		}
	}
	return 2
}

// TorusBoundarySwitch returns the switch on the boundary of the
// once-punctured torus containing s, oriented so the torus is on its left.
func (tt *TrainTrack) TorusBoundarySwitch(s Switch) (Switch, error) {
	if tt.ElemMoveType(s) != 1 {
		return 0, errors.Wrapf(ErrBadElemMoveType, "switch %d is not inside a torus", s)
	}
	var bdy Switch
	for _, b := range tt.out(s) {
		next := tt.BranchEndpoint(b)
		if absS(next) != absS(s) {
			bdy = next
			break
		}
	}
	if bdy == 0 {
		return 0, errors.Wrapf(ErrBadElemMoveType, "no boundary switch reachable from %d", s)
	}
	turning, err := tt.GetTurning(bdy)
	if err != nil {
		return 0, err
	}
	if turning == LEFT {
		return -bdy, nil
	}
	return bdy, nil
}

// OrientationOfSwitchFirstMove returns the orientation of s that the first
// elementary move is defined on.
func (tt *TrainTrack) OrientationOfSwitchFirstMove(s Switch) (Switch, error) {
	bdy, err := tt.TorusBoundarySwitch(s)
	if err != nil {
		return 0, err
	}
	bdyTurning, err := tt.GetTurning(bdy)
	if err != nil {
		return 0, err
	}
	var b Branch
	if bdyTurning == RIGHT {
		b = tt.OutgoingBranch(bdy, 0, LEFT)
	} else {
		b = tt.OutgoingBranch(-bdy, 1, LEFT)
	}
	sw := tt.BranchEndpoint(b)
	turning, err := tt.GetTurning(s)
	if err != nil {
		return 0, err
	}
	if turning == LEFT {
		return sw, nil
	}
	return -sw, nil
}

// NumCurvesOnSides returns how many branches run into the pants curve from
// its left and right sides, not counting the pants branch itself.
func (tt *TrainTrack) NumCurvesOnSides(pantsCurve Switch) (nleft, nright int, err error) {
	ntop := tt.NumOutgoing(pantsCurve)
	nbottom := tt.NumOutgoing(-pantsCurve)
	turning, err := tt.GetTurning(pantsCurve)
	if err != nil {
		return 0, 0, err
	}
	if turning == LEFT {
		return nbottom - 1, ntop - 1, nil
	}
	return ntop - 1, nbottom - 1, nil
}
