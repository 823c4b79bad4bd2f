package catalog

import (
	"encoding/binary"
	"runtime"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/surface-dynamics/godtt/godtt"
	"github.com/surface-dynamics/godtt/libtt"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState

	CanonicTrackEncoding => TrackID (8 bytes)
	...

The canonical track encoding starts with the switch count byte, so the keys
sort by switch count first and a ranged Select can seek straight to the
smallest admissible count. Weight-ranged selects are served by an in-memory
index rebuilt on open.

***/

var gCatalogStateKey = []byte{0x00, 0x00, 0x01}

const (
	catalogMajorVers = 2026
	catalogMinorVers = 1
)

type catalogState struct {
	MajorVers uint32
	MinorVers uint32
	NumTracks []uint64 // per switch count (one-based)
}

func (st *catalogState) Marshal() []byte {
	var scratch [binary.MaxVarintLen64]byte
	dst := make([]byte, 0, 16+2*len(st.NumTracks))
	for _, v := range []uint64{uint64(st.MajorVers), uint64(st.MinorVers), uint64(len(st.NumTracks))} {
		n := binary.PutUvarint(scratch[:], v)
		dst = append(dst, scratch[:n]...)
	}
	for _, v := range st.NumTracks {
		n := binary.PutUvarint(scratch[:], v)
		dst = append(dst, scratch[:n]...)
	}
	return dst
}

func (st *catalogState) Unmarshal(src []byte) error {
	at := 0
	read := func() (uint64, error) {
		v, n := binary.Uvarint(src[at:])
		if n <= 0 {
			return 0, godtt.ErrUnmarshal
		}
		at += n
		return v, nil
	}
	var err error
	var major, minor, count uint64
	if major, err = read(); err != nil {
		return err
	}
	if minor, err = read(); err != nil {
		return err
	}
	if count, err = read(); err != nil {
		return err
	}
	st.MajorVers = uint32(major)
	st.MinorVers = uint32(minor)
	st.NumTracks = make([]uint64, count)
	for i := range st.NumTracks {
		if st.NumTracks[i], err = read(); err != nil {
			return err
		}
	}
	return nil
}

// catalog is a db wrapper for a train track catalog
type catalog struct {
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
	weights    *weightIndex
}

// OpenCatalog opens a new or existing train track catalog.
// An empty DbPathName opens an in-memory catalog.
func OpenCatalog(opts godtt.CatalogOpts) (godtt.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
		weights:  newWeightIndex(),
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(godtt.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = catalogMajorVers
		cat.state.MinorVers = catalogMinorVers
		cat.state.NumTracks = make([]uint64, libtt.MaxSwitches+1)
	}

	if err == nil && (cat.state.MajorVers != catalogMajorVers || cat.state.MinorVers != catalogMinorVers) {
		err = errors.New("catalog version is incompatible")
	}
	if err == nil {
		err = cat.rebuildWeightIndex()
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.Infof("opened track catalog %q (%d entries)", opts.DbPathName, cat.weights.Len())
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.readOnly {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err != nil {
		klog.Errorf("failed to flush catalog state: %v", err)
		return
	}
	cat.stateDirty = false
}

func (cat *catalog) rebuildWeightIndex() error {
	return cat.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			if key[0] == 0 {
				continue // catalog state entry
			}
			tt, err := libtt.DecodeTrack(key)
			if err != nil {
				return errors.Wrapf(err, "corrupt catalog key of %d bytes", len(key))
			}
			cat.weights.Put(tt.GetInfo().TotalWeight, key)
		}
		return nil
	})
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumTracks(forSwitchCount byte) int64 {
	if forSwitchCount == 0 || int(forSwitchCount) >= len(cat.state.NumTracks) {
		return 0
	}
	return int64(cat.state.NumTracks[forSwitchCount])
}

func (cat *catalog) issueNextTrackID(numSwitches int) godtt.TrackID {
	tid := cat.state.NumTracks[numSwitches] + 1
	cat.state.NumTracks[numSwitches] = tid
	cat.stateDirty = true

	return godtt.FormTrackID(uint32(numSwitches), tid)
}

// TryAddTrack adds the track if its canonical encoding is not yet cataloged.
func (cat *catalog) TryAddTrack(tt *libtt.TrainTrack) bool {
	if cat.readOnly {
		return false
	}
	key := tt.AppendTrackEncoding(nil)

	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil // already cataloged
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		tid := cat.issueNextTrackID(tt.NumSwitches())
		var val [8]byte
		binary.BigEndian.PutUint64(val[:], uint64(tid))
		if err := txn.Set(key, val[:]); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		klog.Errorf("TryAddTrack failed: %v", err)
		return false
	}
	if added {
		cat.weights.Put(tt.GetInfo().TotalWeight, key)
	}
	return added
}

// Select will call onHit with all tracks matching the given criteria.
// Enumeration stops when there are no more matches.
func (cat *catalog) Select(sel godtt.TrackSelector, onHit godtt.OnTrackHit) {
	if sel.Min.TotalWeight > 0 || sel.Max.TotalWeight < godtt.DefaultTrackSelector.Max.TotalWeight {
		cat.selectByWeight(&sel, onHit)
	} else {
		cat.selectEncodings(&sel, onHit)
	}
}

// selectByWeight walks the in-memory weight index, which already stores the
// canonical encodings, so no db reads are needed.
func (cat *catalog) selectByWeight(sel *godtt.TrackSelector, onHit godtt.OnTrackHit) {
	cat.weights.EachInRange(sel.Min.TotalWeight, sel.Max.TotalWeight, func(enc []byte) bool {
		tt, err := libtt.DecodeTrack(enc)
		if err != nil {
			klog.Errorf("corrupt catalog entry: %v", err)
			return true
		}
		if sel.AllowTrack(tt) {
			onHit <- tt
		}
		return true
	})
}

func (cat *catalog) selectEncodings(sel *godtt.TrackSelector, onHit godtt.OnTrackHit) {
	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
	})
	defer it.Close()

	minKey := [1]byte{byte(sel.Min.NumSwitches)}
	for it.Seek(minKey[:]); it.Valid(); it.Next() {
		key := it.Item().Key()
		if key[0] == 0 {
			continue
		}
		// keys sort by switch count first
		if int32(key[0]) > sel.Max.NumSwitches {
			break
		}
		tt, err := libtt.DecodeTrack(key)
		if err != nil {
			klog.Errorf("corrupt catalog entry: %v", err)
			continue
		}
		if sel.AllowTrack(tt) {
			onHit <- tt
		}
	}
}

func (cat *catalog) Close() error {
	cat.flushState()
	if cat.db != nil {
		err := cat.db.Close()
		cat.db = nil
		return err
	}
	return nil
}
