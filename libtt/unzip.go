package libtt

import (
	"github.com/pkg/errors"
)

// unzipPos locates the cut when unzipping at the cusp right after position
// pos (from startSide) at the given switch. The cut lands on the opposite
// side of -s, at the earliest position where the accumulated weight reaches
// the weight m entering the cusp; the branch there splits into weights
// meas1 and meas2.
func (tt *TrainTrack) unzipPos(s Switch, pos int, startSide Side) (cut int, meas1, meas2 int64, err error) {
	if !tt.IsMeasured() {
		return 0, 0, 0, errors.Wrapf(ErrUnmeasured, "unzip at switch %d", s)
	}
	var m int64
	for i := 0; i <= pos; i++ {
		m += tt.BranchMeasure(tt.OutgoingBranch(s, i, startSide))
	}
	opp := startSide.Opposite()
	var total int64
	for k := 0; k < tt.NumOutgoing(-s); k++ {
		prev := total
		total += tt.BranchMeasure(tt.OutgoingBranch(-s, k, opp))
		if m <= total {
			return k, m - prev, total - m, nil
		}
	}
	return 0, 0, 0, errors.Wrapf(ErrUnzipOverflow, "cut of weight %d at switch %d", m, s)
}

// UnzipWithCollapse unzips the track at the cusp right after position pos
// (from startSide) at the given switch, then collapses the branch chosen by
// collapseType so the switch structure stays Dehn-Thurston. The measure is
// transported along the cut. Returns the position of the cut on the opposite
// side.
//
// bmap, when non-nil, records what the re-threaded branches unzip to.
func (tt *TrainTrack) UnzipWithCollapse(s Switch, pos int, collapseType CollapseType, bmap *BranchMap, startSide Side) (int, error) {
	cut, meas1, meas2, err := tt.unzipPos(s, pos, startSide)
	if err != nil {
		return 0, err
	}

	unzipBr := tt.OutgoingBranch(-s, cut, startSide.Opposite())

	var collapsed, pants Branch
	switch collapseType {
	case UP:
		collapsed = tt.OutgoingBranch(s, 0, startSide)
	case TWO_SIDED:
		pants = tt.OutgoingBranch(s, 0, startSide.Opposite())
	}

	if err := tt.UnzipWithCollapseNoMeasure(s, pos, cut, collapseType, bmap, startSide); err != nil {
		return 0, err
	}

	switch collapseType {
	case UP:
		tt.setMeasure(unzipBr, meas2)
		tt.setMeasure(collapsed, meas1)
	case TWO_SIDED:
		if cut == 0 {
			tt.setMeasure(pants, meas2)
		} else {
			tt.setMeasure(unzipBr, meas2)
			tt.setMeasure(pants, meas1)
		}
	}
	return cut, nil
}

// UnzipWithCollapseNoMeasure performs the combinatorial re-threading of
// UnzipWithCollapse with a caller-supplied cut position and no measure
// transport, so it also works on unmeasured tracks.
func (tt *TrainTrack) UnzipWithCollapseNoMeasure(s Switch, pos, cut int, collapseType CollapseType, bmap *BranchMap, startSide Side) error {
	switch collapseType {
	case UP:
		if pos != 0 {
			return errors.Wrapf(ErrBadGluingList, "UP unzip requires the first cusp, got pos %d", pos)
		}
	case TWO_SIDED:
		// the pants branch must run along the startSide-opposite edge of
		// both orientations
		var top, bottom Branch
		if startSide == RIGHT {
			top, bottom = tt.OutgoingBranch(s, 0, LEFT), tt.OutgoingBranch(-s, 0, LEFT)
		} else {
			top, bottom = tt.OutgoingBranch(s, 0, RIGHT), tt.OutgoingBranch(-s, 0, RIGHT)
		}
		if top != -bottom {
			return errors.Wrapf(ErrNoPantsBranch, "two-sided unzip at switch %d", s)
		}
	}

	unzipBranch := tt.OutgoingBranch(-s, cut, startSide.Opposite())
	bottomSwitch := tt.BranchEndpoint(unzipBranch)

	switch collapseType {
	case UP:
		// cut the collapsed branch off the starting switch and glue it to
		// the bottom switch
		var collapsed Branch
		if startSide == LEFT {
			collapsed = tt.popOutgoing(s, 0)
		} else {
			collapsed = tt.popOutgoing(s, tt.NumOutgoing(s)-1)
		}
		// located after the pop in case bottomSwitch == s
		endIndex := tt.OutgoingBranchIndex(bottomSwitch, -unzipBranch, LEFT)
		if endIndex < 0 {
			return errors.Wrapf(ErrBranchNotFound, "branch %d at switch %d", -unzipBranch, bottomSwitch)
		}
		if collapsed == -unzipBranch {
			return errors.Wrapf(ErrUnzipOverflow, "cut runs back into the collapsed branch %d", collapsed)
		}
		insertPos := endIndex
		if startSide == RIGHT {
			insertPos = endIndex + 1
		}
		tt.insertOutgoing(bottomSwitch, insertPos, collapsed)

		// the branches between the cut and the collapsed branch get pulled
		// over to the far end of the collapsed branch
		bottom := tt.out(-s)
		n := len(bottom)
		var toMove []Branch
		if startSide == LEFT {
			toMove = append([]Branch(nil), bottom[n-cut:]...)
			tt.setOut(-s, bottom[:n-cut:n-cut])
		} else {
			toMove = append([]Branch(nil), bottom[:cut]...)
			tt.setOut(-s, append([]Branch(nil), bottom[cut:]...))
		}
		topSwitch := tt.BranchEndpoint(collapsed)
		k := tt.OutgoingBranchIndex(topSwitch, -collapsed, LEFT)
		if k < 0 {
			return errors.Wrapf(ErrBranchNotFound, "branch %d at switch %d", -collapsed, topSwitch)
		}
		insertPos = k
		if startSide == LEFT {
			insertPos = k + 1
		}
		tt.spliceOutgoing(topSwitch, insertPos, toMove)
		tt.setEndpoint(-collapsed, bottomSwitch)
		for _, b := range toMove {
			tt.setEndpoint(-b, topSwitch)
		}

		if bmap != nil {
			for _, b := range toMove {
				bmap.Append(-b, collapsed)
			}
			bmap.Append(-collapsed, unzipBranch)
		}

	case TWO_SIDED:
		// rotate the top branches around the pants curve
		top := tt.out(s)
		n := len(top)
		if startSide == LEFT {
			toMove := append([]Branch(nil), top[:pos+1]...)
			next := make([]Branch, 0, n)
			next = append(next, top[pos+1:n-1]...)
			next = append(next, toMove...)
			next = append(next, top[n-1])
			tt.setOut(s, next)
		} else {
			toMove := append([]Branch(nil), top[n-pos-1:]...)
			next := make([]Branch, 0, n)
			next = append(next, top[0])
			next = append(next, toMove...)
			next = append(next, top[1:n-pos-1]...)
			tt.setOut(s, next)
		}

		if cut > 0 {
			// the cut went past the pants branch: it is cut off both sides
			// and rethreaded around the bottom
			var collapsed Branch
			if startSide == LEFT {
				collapsed = tt.popOutgoing(s, tt.NumOutgoing(s)-1)
				tt.popOutgoing(-s, tt.NumOutgoing(-s)-1)
			} else {
				collapsed = tt.popOutgoing(s, 0)
				tt.popOutgoing(-s, 0)
			}

			bottom := tt.out(-s)
			m := len(bottom)
			next := make([]Branch, 0, m+1)
			if startSide == LEFT {
				next = append(next, collapsed)
				next = append(next, bottom[m+1-cut:]...)
				next = append(next, bottom[:m+1-cut]...)
			} else {
				next = append(next, bottom[cut-1:]...)
				next = append(next, bottom[:cut-1]...)
				next = append(next, collapsed)
			}
			tt.setOut(-s, next)

			k := tt.OutgoingBranchIndex(bottomSwitch, -unzipBranch, LEFT)
			if k < 0 {
				return errors.Wrapf(ErrBranchNotFound, "branch %d at switch %d", -unzipBranch, bottomSwitch)
			}
			insertPos := k
			if startSide == RIGHT {
				insertPos = k + 1
			}
			tt.insertOutgoing(bottomSwitch, insertPos, -collapsed)

			tt.setEndpoint(-collapsed, -s)
			tt.setEndpoint(collapsed, bottomSwitch)
		}
	}
	return nil
}
