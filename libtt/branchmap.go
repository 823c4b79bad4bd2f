package libtt

import (
	"fmt"
)

// BranchMap tracks what each branch of a train track has become after a
// sequence of unzips: a path of branches in the original track.
//
// Only paths of positive labels are stored. The path of a reversed branch is
// the reversed, direction-flipped path of the positive one, so
// BranchList(-b) always equals the reverse-negation of BranchList(b).
//
// Looking up a branch that was never registered panics: it means the map and
// the track it follows have diverged.
type BranchMap struct {
	paths map[Branch][]Branch
}

// NewBranchMap starts the identity map on the given branches.
func NewBranchMap(branches []Branch) *BranchMap {
	bm := &BranchMap{
		paths: make(map[Branch][]Branch, len(branches)),
	}
	for _, b := range branches {
		bm.paths[absB(b)] = []Branch{absB(b)}
	}
	return bm
}

func (bm *BranchMap) path(b Branch) []Branch {
	path, ok := bm.paths[absB(b)]
	if !ok {
		panic(fmt.Sprintf("branch %d is not in the branch map", b))
	}
	return path
}

// BranchList returns a copy of the path currently standing in for b.
func (bm *BranchMap) BranchList(b Branch) []Branch {
	if b > 0 {
		return append([]Branch(nil), bm.path(b)...)
	}
	stored := bm.path(b)
	path := make([]Branch, len(stored))
	for i, cur := range stored {
		path[len(stored)-1-i] = -cur
	}
	return path
}

// Append records that appendTo now also runs over appended: the path of
// appended is attached to the pointed end of appendTo's path.
func (bm *BranchMap) Append(appendTo, appended Branch) {
	if appendTo > 0 {
		bm.paths[appendTo] = append(bm.path(appendTo), bm.BranchList(appended)...)
	} else {
		bm.paths[-appendTo] = append(bm.BranchList(-appended), bm.path(appendTo)...)
	}
}
