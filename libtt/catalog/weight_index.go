package catalog

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// weightIndex orders cataloged track encodings by total weight so that
// weight-ranged selects avoid a full table walk.
type weightIndex struct {
	tree *redblacktree.Tree // int64 total weight => [][]byte encodings
	size int
}

func newWeightIndex() *weightIndex {
	return &weightIndex{
		tree: redblacktree.NewWith(utils.Int64Comparator),
	}
}

func (wx *weightIndex) Len() int {
	return wx.size
}

func (wx *weightIndex) Put(weight int64, enc []byte) {
	var encs [][]byte
	if cur, found := wx.tree.Get(weight); found {
		encs = cur.([][]byte)
	}
	wx.tree.Put(weight, append(encs, enc))
	wx.size++
}

// EachInRange visits every encoding with total weight in [min, max], in
// weight order, until fn returns false.
func (wx *weightIndex) EachInRange(min, max int64, fn func(enc []byte) bool) {
	start, found := wx.tree.Ceiling(min)
	if !found {
		return
	}
	it := wx.tree.IteratorAt(start)
	for {
		if it.Key().(int64) > max {
			return
		}
		for _, enc := range it.Value().([][]byte) {
			if !fn(enc) {
				return
			}
		}
		if !it.Next() {
			return
		}
	}
}
