package godtt

import (
	"errors"

	"github.com/surface-dynamics/godtt/libtt"
)

// TrackID uniquely identifies a train track within a Catalog.
// The most significant byte is the switch count, the lower bytes are the
// issue series within that count.
type TrackID uint64

// FormTrackID forms a TrackID from a switch count and a series number.
func FormTrackID(switchCount uint32, seriesID uint64) TrackID {
	return TrackID(switchCount)<<56 | TrackID(seriesID)
}

// SwitchCount returns the switch count encoded in this TrackID.
func (tid TrackID) SwitchCount() byte {
	return byte(tid >> 56)
}

// SeriesID returns the issue series encoded in this TrackID.
func (tid TrackID) SeriesID() uint64 {
	return uint64(tid) & 0x00FFFFFFFFFFFFFF
}

// OnTrackHit is a callback channel used to return tracks meeting a set of
// selection criteria. Ownership of the track travels through the channel.
type OnTrackHit chan<- *libtt.TrainTrack

// Errors
var (
	ErrUnmarshal       = errors.New("unmarshal failed")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogReadOnly = errors.New("catalog is read-only")
)

// CatalogOpts specifies params for opening a track Catalog.
type CatalogOpts struct {
	DbPathName string // empty means in-memory
	ReadOnly   bool
}

// Catalog wraps a database of canonical train track encodings.
type Catalog interface {

	// Tries to add the given track to this catalog.
	// Returns true if the track was not present and was added.
	TryAddTrack(tt *libtt.TrainTrack) bool

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumTracks returns the number of cataloged tracks with the given switch
	// count. An out of bounds switch count returns 0.
	NumTracks(forSwitchCount byte) int64

	// Select fires onHit with every cataloged track meeting the selection
	// criteria.
	Select(sel TrackSelector, onHit OnTrackHit)

	// Closes this catalog, flushing pending state.
	Close() error
}

// DefaultTrackSelector selects every valid track.
var DefaultTrackSelector = TrackSelector{
	Min: libtt.TrackInfo{
		NumSwitches: 1,
		NumBranches: 1,
	},
	Max: libtt.TrackInfo{
		NumSwitches: libtt.MaxSwitches,
		NumBranches: libtt.MaxBranches,
		TotalWeight: int64(1) << 62,
	},
}

// TrackSelector is an operator that either selects a given track or not.
type TrackSelector struct {
	Min libtt.TrackInfo // lower select bounds
	Max libtt.TrackInfo // upper select bounds
}

// AllowTrack is a convenience function used to see if a track is selected
// according to a TrackSelector.
func (sel *TrackSelector) AllowTrack(tt *libtt.TrainTrack) bool {
	info := tt.GetInfo()
	if info.NumSwitches < sel.Min.NumSwitches || info.NumBranches < sel.Min.NumBranches || info.TotalWeight < sel.Min.TotalWeight {
		return false
	}
	if info.NumSwitches > sel.Max.NumSwitches || info.NumBranches > sel.Max.NumBranches || info.TotalWeight > sel.Max.TotalWeight {
		return false
	}
	return true
}
