package storage

import (
	"time"
)

// Analysis - persisted record of a completed design comparison.
// Details carries the full analysis payload (changes, notes, next steps)
// as JSON so the schema stays stable while the prompt format evolves.
type Analysis struct {
	ID              string
	SimilarityScore float64
	SummaryEN       string
	SummaryAR       string
	Details         []byte
	Context         string
	ImageHash1      string
	ImageHash2      string
	CreatedDt       time.Time
}
