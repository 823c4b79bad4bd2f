package libtt

// UnzipFoldFirstMove performs the first elementary move on the pants curve
// at the given switch, which must bound a once-punctured torus. The track is
// unzipped at the switch and folded back together so the result is again
// Dehn-Thurston, with the roles of the torus' two curves exchanged.
//
// bmap, when non-nil, records the unzip history. With inverse set, the move
// is performed with the opposite twisting convention.
func (tt *TrainTrack) UnzipFoldFirstMove(s Switch, bmap *BranchMap, inverse bool) error {
	s, err := tt.OrientationOfSwitchFirstMove(s)
	if err != nil {
		return err
	}
	turning, err := tt.GetTurning(s)
	if err != nil {
		return err
	}
	twistSign := 1
	if inverse {
		twistSign = -1
	}
	bdySwitch, err := tt.TorusBoundarySwitch(s)
	if err != nil {
		return err
	}
	lamb23 := tt.NumOutgoing(s) == 3

	cut, err := tt.UnzipWithCollapse(s, 0, UP, bmap, turning.Opposite())
	if err != nil {
		return err
	}

	withTurning := (turning == LEFT) == !inverse

	switch {
	case cut == 0 && lamb23 && withTurning:
		return tt.Fold(-s, 1, 2, turning)

	case cut == 0 && lamb23:
		if err := tt.Fold(s, 1, 0, turning.Opposite()); err != nil {
			return err
		}
		return tt.UnzipFoldGeneralTwist(bdySwitch, twistSign, 0)

	case cut == 0 && withTurning:
		if err := tt.UnzipFoldGeneralTwist(bdySwitch, twistSign, 0); err != nil {
			return err
		}
		if err := tt.foldLeftOfPantsCurve(bdySwitch, 0, 1, inverse); err != nil {
			return err
		}
		return tt.foldLeftOfPantsCurve(bdySwitch, 2, 1, inverse)

	case cut == 0:
		if err := tt.UnzipFoldGeneralTwist(bdySwitch, 2*twistSign, 0); err != nil {
			return err
		}
		if err := tt.foldLeftOfPantsCurve(bdySwitch, 3, 2, inverse); err != nil {
			return err
		}
		return tt.foldLeftOfPantsCurve(bdySwitch, 0, 1, inverse)

	case cut == 1 && lamb23 && withTurning:
		return tt.Fold(-s, 0, 1, turning)

	case cut == 1 && lamb23:
		if err := tt.Fold(s, 1, 0, turning.Opposite()); err != nil {
			return err
		}
		return tt.UnzipFoldGeneralTwist(bdySwitch, twistSign, 0)

	case cut == 1 && withTurning:
		if err := tt.UnzipFoldGeneralTwist(bdySwitch, twistSign, 0); err != nil {
			return err
		}
		if err := tt.foldLeftOfPantsCurve(bdySwitch, 0, 1, inverse); err != nil {
			return err
		}
		return tt.foldLeftOfPantsCurve(bdySwitch, 3, 2, inverse)

	case cut == 1:
		if err := tt.UnzipFoldGeneralTwist(bdySwitch, 2*twistSign, 0); err != nil {
			return err
		}
		if err := tt.foldLeftOfPantsCurve(bdySwitch, 4, 3, inverse); err != nil {
			return err
		}
		return tt.foldLeftOfPantsCurve(bdySwitch, 0, 1, inverse)
	}
	return nil
}

// UnzipFoldFirstMoveInverse undoes a first elementary move. The move has
// order four around the torus up to a twist about its boundary, so the
// inverse is three forward moves and one right twist.
func (tt *TrainTrack) UnzipFoldFirstMoveInverse(s Switch, bmap *BranchMap) error {
	for i := 0; i < 3; i++ {
		if err := tt.UnzipFoldFirstMove(s, bmap, false); err != nil {
			return err
		}
	}
	bdySwitch, err := tt.TorusBoundarySwitch(s)
	if err != nil {
		return err
	}
	return tt.UnzipFoldPantsTwist(bdySwitch, -1)
}

// foldLeftOfPantsCurve folds among the branches on the left of the pants
// curve. The indices count only those branches, bottom to top, skipping the
// pants branch itself.
func (tt *TrainTrack) foldLeftOfPantsCurve(bdySwitch Switch, foldedIdx, ontoIdx int, inverse bool) error {
	startSide := LEFT
	if inverse {
		startSide = RIGHT
	}
	turning, err := tt.GetTurning(bdySwitch)
	if err != nil {
		return err
	}
	if turning == RIGHT {
		return tt.Fold(bdySwitch, foldedIdx, ontoIdx, startSide)
	}
	return tt.Fold(-bdySwitch, foldedIdx+1, ontoIdx+1, startSide)
}
