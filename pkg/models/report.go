package models

import (
	"time"

	"github.com/sdejongh/dirdiff/pkg/compare"
)

// Location identifies the side a key was unique to
type Location string

const (
	// LocationFirst indicates the key exists in the first directory only
	LocationFirst Location = "first"
	// LocationSecond indicates the key exists in the second directory only
	LocationSecond Location = "second"
)

// Difference is one reported key together with the side it belongs to
type Difference struct {
	Key      string   `json:"key"`
	Location Location `json:"location"`
	Label    string   `json:"label"`
}

// Report represents the results of a comparison run
type Report struct {
	// Operation details
	OperationID string
	FirstPath   string
	SecondPath  string
	FirstLabel  string
	SecondLabel string
	Mode        compare.Mode

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Keys unique to each side
	Result compare.Result

	// Overall status
	Status Status
}

// Statistics holds per-side listing metrics
type Statistics struct {
	First  SideStats `json:"first"`
	Second SideStats `json:"second"`
}

// SideStats counts what happened to the entries of one directory
type SideStats struct {
	Listed    int `json:"listed"`    // Entries returned by the listing
	Excluded  int `json:"excluded"`  // Entries dropped by filters
	Unmatched int `json:"unmatched"` // Entries without a key under the mode
	Keys      int `json:"keys"`      // Distinct keys after extraction
}

// Status represents the overall result
type Status string

const (
	// StatusIdentical indicates both directories resolved to the same keys
	StatusIdentical Status = "identical"
	// StatusDifferent indicates at least one key is unique to a side
	StatusDifferent Status = "different"
	// StatusFailed indicates the comparison could not be performed
	StatusFailed Status = "failed"
)

// ExitCode returns the exit code for the status, following diff(1)
func (s Status) ExitCode() int {
	switch s {
	case StatusIdentical:
		return 0
	case StatusDifferent:
		return 1
	default:
		return 2
	}
}

// StatusFor derives the status from a comparison result
func StatusFor(r compare.Result) Status {
	if r.Identical() {
		return StatusIdentical
	}
	return StatusDifferent
}

// TotalDifferences returns the number of keys unique to either side
func (r *Report) TotalDifferences() int {
	return r.Result.TotalDifferences()
}

// Differences flattens the result into rows: first-side keys, then
// second-side keys, each in key order.
func (r *Report) Differences() []Difference {
	diffs := make([]Difference, 0, r.TotalDifferences())
	for _, key := range r.Result.OnlyInFirst {
		diffs = append(diffs, Difference{Key: key, Location: LocationFirst, Label: r.FirstLabel})
	}
	for _, key := range r.Result.OnlyInSecond {
		diffs = append(diffs, Difference{Key: key, Location: LocationSecond, Label: r.SecondLabel})
	}
	return diffs
}
