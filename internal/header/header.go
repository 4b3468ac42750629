// Package header implements the Header/Metadata value object published
// once per PBF stream. OPL streams carry no header block, and no Header is
// produced for them.
package header

import (
	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/pbfwire"
)

// Box is a plain lon/lat bounding box, independent of the fixed-point
// Location type since a header's bbox is frequently unset.
type Box struct {
	MinLon, MinLat, MaxLon, MaxLat float64
	Set                            bool
}

// Header is the metadata describing an OSM data stream: its bounding
// box, the feature flags a reader must understand to decode it
// correctly, and replication bookkeeping for incremental updates.
type Header struct {
	BBox                      Box
	RequiredFeatures          []string
	OptionalFeatures          []string
	WritingProgram            string
	Source                    string
	ReplicationTimestamp      int64
	ReplicationSequenceNumber int64
	ReplicationBaseURL        string
}

// HasMultipleObjectVersions reports whether the stream may contain more
// than one version of the same entity (true for full history files).
func (h Header) HasMultipleObjectVersions() bool {
	for _, f := range h.RequiredFeatures {
		if f == "HistoricalInformation" {
			return true
		}
	}
	return false
}

// nanodegree is the HeaderBBox coordinate unit: lon/lat * 1e9.
const nanodegree = 1e9

// FromPBF converts a decoded HeaderBlock into a Header.
func FromPBF(hb pbfwire.HeaderBlock) Header {
	h := Header{
		RequiredFeatures:          hb.RequiredFeatures,
		OptionalFeatures:          hb.OptionalFeatures,
		WritingProgram:            hb.WritingProgram,
		Source:                    hb.Source,
		ReplicationTimestamp:      hb.ReplicationTimestamp,
		ReplicationSequenceNumber: hb.ReplicationSequenceNumber,
		ReplicationBaseURL:        hb.ReplicationBaseURL,
	}
	if hb.BBox != nil {
		h.BBox = Box{
			MinLon: float64(hb.BBox.Left) / nanodegree,
			MaxLon: float64(hb.BBox.Right) / nanodegree,
			MaxLat: float64(hb.BBox.Top) / nanodegree,
			MinLat: float64(hb.BBox.Bottom) / nanodegree,
			Set:    true,
		}
	}
	return h
}

// Contains reports whether loc falls inside the header's bounding box.
// An unset bounding box contains everything.
func (h Header) Contains(loc location.Location) bool {
	if !h.BBox.Set {
		return true
	}
	lon, lat := loc.Lon(), loc.Lat()
	return lon >= h.BBox.MinLon && lon <= h.BBox.MaxLon && lat >= h.BBox.MinLat && lat <= h.BBox.MaxLat
}
