package libtt

import (
	"github.com/pkg/errors"
)

// TrainTrack is a mutable train track on a surface, stored as an ordered
// combinatorial gluing.
//
// Every switch has two orientations (s and -s), each with an ordered list of
// outgoing branches (left to right, as seen standing on the switch facing the
// direction of the orientation). Every branch direction b points into exactly
// one oriented switch, its endpoint, which is the switch whose outgoing list
// contains -b.
//
// A track optionally carries a transverse measure: one nonnegative weight per
// branch, shared by both directions.
type TrainTrack struct {
	outgoing [][]Branch // slot 2k holds switch k+1, slot 2k+1 holds -(k+1)
	endpoint []Switch   // slot 2k holds endpoint of branch k+1, slot 2k+1 of -(k+1)
	measure  []int64    // one weight per branch label, nil if unmeasured
}

func swSlot(s Switch) int {
	if s > 0 {
		return 2*int(s) - 2
	}
	return -2*int(s) - 1
}

func brSlot(b Branch) int {
	if b > 0 {
		return 2*int(b) - 2
	}
	return -2*int(b) - 1
}

// NewTrainTrack builds a track from a gluing list and an optional measure.
//
// gluing holds one outgoing branch list per oriented switch, in the order
// +1, -1, +2, -2, ... Every branch label 1..n must appear exactly once in
// each direction. measure may be nil; otherwise it holds one nonnegative
// weight per branch label.
func NewTrainTrack(gluing [][]Branch, measure []int64) (*TrainTrack, error) {
	if len(gluing) == 0 || len(gluing)%2 != 0 {
		return nil, errors.Wrapf(ErrBadGluingList, "got %d outgoing lists, expected a positive even count", len(gluing))
	}
	numSwitches := len(gluing) / 2
	if numSwitches > MaxSwitches {
		return nil, errors.Wrapf(ErrBadGluingList, "switch count %d exceeds %d", numSwitches, MaxSwitches)
	}

	numEnds := 0
	for _, list := range gluing {
		if len(list) == 0 {
			return nil, errors.Wrap(ErrBadGluingList, "switch with no outgoing branches")
		}
		numEnds += len(list)
	}
	if numEnds%2 != 0 {
		return nil, errors.Wrap(ErrBadGluingList, "odd number of branch ends")
	}
	numBranches := numEnds / 2
	if numBranches > MaxBranches {
		return nil, errors.Wrapf(ErrBadGluingList, "branch count %d exceeds %d", numBranches, MaxBranches)
	}

	tt := &TrainTrack{
		outgoing: make([][]Branch, 2*numSwitches),
		endpoint: make([]Switch, 2*numBranches),
	}

	seen := make([]bool, 2*numBranches)
	for slot, list := range gluing {
		s := Switch(slot/2 + 1)
		if slot%2 == 1 {
			s = -s
		}
		tt.outgoing[slot] = append([]Branch(nil), list...)
		for _, b := range list {
			if b == 0 || absB(b) > Branch(numBranches) {
				return nil, errors.Wrapf(ErrBadGluingList, "branch %d out of range 1..%d", b, numBranches)
			}
			if seen[brSlot(b)] {
				return nil, errors.Wrapf(ErrBadGluingList, "branch %d appears twice", b)
			}
			seen[brSlot(b)] = true
			// b leaving s means the reverse direction -b arrives at s
			tt.endpoint[brSlot(-b)] = s
		}
	}

	if measure != nil {
		if len(measure) != numBranches {
			return nil, errors.Wrapf(ErrBadMeasure, "got %d weights for %d branches", len(measure), numBranches)
		}
		for i, w := range measure {
			if w < 0 {
				return nil, errors.Wrapf(ErrBadMeasure, "negative weight %d on branch %d", w, i+1)
			}
		}
		tt.measure = append([]int64(nil), measure...)
	}

	return tt, nil
}

// NumSwitches returns the number of (unoriented) switches.
func (tt *TrainTrack) NumSwitches() int {
	return len(tt.outgoing) / 2
}

// NumBranches returns the number of (undirected) branches.
func (tt *TrainTrack) NumBranches() int {
	return len(tt.endpoint) / 2
}

// IsMeasured returns true if the track carries a measure.
func (tt *TrainTrack) IsMeasured() bool {
	return tt.measure != nil
}

func (tt *TrainTrack) out(s Switch) []Branch {
	return tt.outgoing[swSlot(s)]
}

func (tt *TrainTrack) setOut(s Switch, list []Branch) {
	tt.outgoing[swSlot(s)] = list
}

// NumOutgoing returns the number of branches leaving the oriented switch s.
func (tt *TrainTrack) NumOutgoing(s Switch) int {
	return len(tt.out(s))
}

// OutgoingBranches returns the outgoing branches of s, ordered left to right.
// The returned slice is a copy.
func (tt *TrainTrack) OutgoingBranches(s Switch) []Branch {
	return append([]Branch(nil), tt.out(s)...)
}

// OutgoingBranch returns the outgoing branch of s at the given position,
// counted from startSide.
func (tt *TrainTrack) OutgoingBranch(s Switch, pos int, startSide Side) Branch {
	list := tt.out(s)
	if startSide == LEFT {
		return list[pos]
	}
	return list[len(list)-1-pos]
}

// OutgoingBranchIndex returns the position of b among the outgoing branches
// of s, counted from startSide, or -1 if b does not leave s.
func (tt *TrainTrack) OutgoingBranchIndex(s Switch, b Branch, startSide Side) int {
	list := tt.out(s)
	for i, cur := range list {
		if cur == b {
			if startSide == LEFT {
				return i
			}
			return len(list) - 1 - i
		}
	}
	return -1
}

// BranchEndpoint returns the oriented switch that the branch direction b
// points into.
func (tt *TrainTrack) BranchEndpoint(b Branch) Switch {
	return tt.endpoint[brSlot(b)]
}

func (tt *TrainTrack) setEndpoint(b Branch, s Switch) {
	tt.endpoint[brSlot(b)] = s
}

// BranchMeasure returns the weight of a branch. Both directions share it.
func (tt *TrainTrack) BranchMeasure(b Branch) int64 {
	return tt.measure[absB(b)-1]
}

func (tt *TrainTrack) setMeasure(b Branch, w int64) {
	tt.measure[absB(b)-1] = w
}

// MeasureSnapshot returns a copy of the measure indexed by branch label - 1,
// or nil for an unmeasured track.
func (tt *TrainTrack) MeasureSnapshot() []int64 {
	if tt.measure == nil {
		return nil
	}
	return append([]int64(nil), tt.measure...)
}

// GluingSnapshot returns a copy of the gluing lists in constructor order.
func (tt *TrainTrack) GluingSnapshot() [][]Branch {
	gluing := make([][]Branch, len(tt.outgoing))
	for i, list := range tt.outgoing {
		gluing[i] = append([]Branch(nil), list...)
	}
	return gluing
}

// Clone returns a deep copy.
func (tt *TrainTrack) Clone() *TrainTrack {
	cp := &TrainTrack{
		outgoing: make([][]Branch, len(tt.outgoing)),
		endpoint: append([]Switch(nil), tt.endpoint...),
	}
	for i, list := range tt.outgoing {
		cp.outgoing[i] = append([]Branch(nil), list...)
	}
	if tt.measure != nil {
		cp.measure = append([]int64(nil), tt.measure...)
	}
	return cp
}

// TrackInfo summarizes a track for catalog selection.
type TrackInfo struct {
	NumSwitches int32
	NumBranches int32
	TotalWeight int64
}

// GetInfo returns the selection summary of the track.
func (tt *TrainTrack) GetInfo() TrackInfo {
	info := TrackInfo{
		NumSwitches: int32(tt.NumSwitches()),
		NumBranches: int32(tt.NumBranches()),
	}
	for _, w := range tt.measure {
		info.TotalWeight += w
	}
	return info
}

// IsBalanced reports whether the measures flowing into each switch from its
// two sides agree. Unmeasured tracks are vacuously balanced.
func (tt *TrainTrack) IsBalanced() bool {
	if tt.measure == nil {
		return true
	}
	for s := Switch(1); int(s) <= tt.NumSwitches(); s++ {
		var pos, neg int64
		for _, b := range tt.out(s) {
			pos += tt.BranchMeasure(b)
		}
		for _, b := range tt.out(-s) {
			neg += tt.BranchMeasure(b)
		}
		if pos != neg {
			return false
		}
	}
	return true
}

// popOutgoing removes and returns the branch at index idx (from the left) of
// the outgoing list of s.
func (tt *TrainTrack) popOutgoing(s Switch, idx int) Branch {
	list := tt.out(s)
	b := list[idx]
	tt.setOut(s, append(list[:idx:idx], list[idx+1:]...))
	return b
}

// insertOutgoing inserts b at index idx (from the left) of the outgoing list
// of s.
func (tt *TrainTrack) insertOutgoing(s Switch, idx int, b Branch) {
	list := tt.out(s)
	next := make([]Branch, 0, len(list)+1)
	next = append(next, list[:idx]...)
	next = append(next, b)
	next = append(next, list[idx:]...)
	tt.setOut(s, next)
}

// spliceOutgoing inserts items at index idx (from the left) of the outgoing
// list of s.
func (tt *TrainTrack) spliceOutgoing(s Switch, idx int, items []Branch) {
	list := tt.out(s)
	next := make([]Branch, 0, len(list)+len(items))
	next = append(next, list[:idx]...)
	next = append(next, items...)
	next = append(next, list[idx:]...)
	tt.setOut(s, next)
}
