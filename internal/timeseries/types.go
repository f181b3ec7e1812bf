// Package timeseries defines the sediment-monitoring domain records and the
// flow series builder that normalizes raw archive samples onto the reporting
// grid.
package timeseries

import "time"

// GridInterval is the fixed time bucket used to align heterogeneous input
// sampling rates. All downstream elapsed-time math assumes this spacing.
const GridInterval = 15 * time.Minute

// Measurement kind labels as stored in the measurement archive.
const (
	KindFlow = "Flow"
	KindSSC  = "Suspended Sediment Concentration"
	KindSS   = "Suspended Solids"
)

// Short codes used for concentration overlay records.
const (
	CodeSSC = "SSC"
	CodeSS  = "SS"
)

// Sample is a raw time-stamped measurement as returned by the archive. Value
// is kept as text because laboratory concentration results may carry
// qualifier markers ("<5", ">200") that the builders strip or reject.
type Sample struct {
	Time  time.Time
	Site  string
	Kind  string
	Value string
}

// FlowRecord is one cleaned flow observation on the reporting grid.
// Flow is always >= 0 after cleaning.
type FlowRecord struct {
	Time time.Time
	Site string
	Flow float64
}

// LoadRecord is the per-sample output of the load estimator.
type LoadRecord struct {
	Time           time.Time
	Site           string
	Flow           float64
	Concentration  float64 // predicted, clamped >= 0
	ElapsedSeconds float64 // delta to the next sample, capped at the grid interval
	Load           float64 // instantaneous, tonnes per second
	CumulativeLoad float64 // running total, tonnes
}

// SiteStatistics is the five-number summary of instantaneous load for one
// site plus the final cumulative total.
type SiteStatistics struct {
	Site   string
	Min    float64
	Q1     float64
	Median float64
	Mean   float64
	Q3     float64
	Max    float64
	Total  float64 // final cumulative load, tonnes
}

// ConcentrationRecord is a directly-measured concentration sample aligned
// with a flow record, used for overlay comparison against predictions.
type ConcentrationRecord struct {
	Time          time.Time
	Site          string
	Concentration float64
	Kind          string // CodeSSC or CodeSS
	Flow          float64
}
