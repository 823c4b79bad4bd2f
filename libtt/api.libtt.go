package libtt

import (
	"errors"
)

// Branch is a one-based signed branch identifier.
// b and -b denote the two directions of the same branch.
type Branch int32

// Switch is a one-based signed switch identifier.
// s and -s denote the two orientations of the same switch.
type Switch int32

const (
	// MaxSwitches is the max number of switches in a single track.
	MaxSwitches = 255

	// MaxBranches is the max number of branches in a single track.
	MaxBranches = 255
)

// Side selects which end of an outgoing branch list positions count from.
type Side int32

const (
	LEFT  Side = 0
	RIGHT Side = 1
)

// Opposite returns the other side.
func (side Side) Opposite() Side {
	return side ^ 1
}

func (side Side) String() string {
	if side == LEFT {
		return "LEFT"
	}
	return "RIGHT"
}

// CollapseType selects what collapses onto the unzipped branch during an
// unzip: the branch above the switch (UP) or the pants branch running on
// both sides of it (TWO_SIDED).
type CollapseType int32

const (
	UP        CollapseType = 0
	TWO_SIDED CollapseType = 1
)

// Errors
var (
	ErrBadGluingList   = errors.New("bad gluing list")
	ErrBadMeasure      = errors.New("bad measure")
	ErrUnmeasured      = errors.New("train track carries no measure")
	ErrNoTurning       = errors.New("switch is neither left- nor right-turning")
	ErrNoPantsBranch   = errors.New("no pants branch on switch")
	ErrBadFoldIndex    = errors.New("fold indices are not adjacent")
	ErrFoldBlocked     = errors.New("fold-onto branch is not extremal at its endpoint")
	ErrBranchNotFound  = errors.New("branch not outgoing at switch")
	ErrUnzipOverflow   = errors.New("unzip cut exceeds the measure on the opposite side")
	ErrBadElemMoveType = errors.New("pants curve does not admit this elementary move")
	ErrNoTransversals  = errors.New("no transversal branches along the pants curve")
	ErrBadEncoding     = errors.New("bad track encoding")
)

func absB(b Branch) Branch {
	if b < 0 {
		return -b
	}
	return b
}

func absS(s Switch) Switch {
	if s < 0 {
		return -s
	}
	return s
}
