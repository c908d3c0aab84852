// Package series turns raw time series rows (NAV history, quotes) into clean,
// chart-ready series.
//
// Rows come from JSON files with inconsistent field names and garbage values.
// Normalize picks the value field with a KeySelector, drops invalid rows, sorts
// what remains and computes the axis bounds of a chart. Data quality issues are
// never errors: the Result tells apart a populated series, a file with no valid
// point at all, and a series emptied by a cutoff date.
package series

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Point is one observation: X the timestamp, Y a finite positive value.
type Point struct {
	X time.Time
	Y float64
}

// MarshalJSON encodes the point as {"x": epoch milliseconds, "y": value}, the
// shape charting libraries consume.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X int64   `json:"x"`
		Y float64 `json:"y"`
	}{p.X.UnixMilli(), p.Y})
}

// Bounds are the axis bounds of a series.
type Bounds struct {
	XMin, XMax   time.Time
	YMin, YMax   float64
	SuggestedMin float64 // YMin minus padding, never negative
	SuggestedMax float64 // YMax plus padding
}

// Series is a non empty, timestamp-ascending sequence of points with its bounds.
type Series struct {
	Key    string // name of the value field the points were read from
	Points []Point
	Bounds
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Points) }

// First returns the earliest point. It panics on an empty series.
func (s Series) First() Point { return s.Points[0] }

// Last returns the latest point. It panics on an empty series.
func (s Series) Last() Point { return s.Points[len(s.Points)-1] }

// Status tells how a normalization ended.
type Status int

const (
	// StatusOK is a populated series.
	StatusOK Status = iota
	// StatusNoPoints means there is no usable point at all: no rows, no value
	// field, or no valid row.
	StatusNoPoints
	// StatusFilteredEmpty means valid points exist but all predate the cutoff.
	StatusFilteredEmpty
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoPoints:
		return "no valid points"
	case StatusFilteredEmpty:
		return "filtered to empty"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of a normalization.
type Result struct {
	Status Status
	Series Series // populated only when Status is StatusOK

	// Keys lists the fields of the first row when no value field could be
	// selected (schema drift). It is nil otherwise.
	Keys []string

	Rows    int       // number of input rows
	Dropped int       // rows dropped as invalid
	Cutoff  time.Time // cutoff applied, zero if none
}

// OK reports whether the result holds a populated series.
func (r Result) OK() bool { return r.Status == StatusOK }

// SchemaDrift reports whether the rows had no recognizable value field.
func (r Result) SchemaDrift() bool { return r.Status == StatusNoPoints && r.Keys != nil }

// Err returns nil for a populated series, and an *EmptyError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &EmptyError{Status: r.Status, Keys: r.Keys, Cutoff: r.Cutoff}
}

// EmptyError describes an empty normalization result.
type EmptyError struct {
	Status Status
	Keys   []string
	Cutoff time.Time
}

func (e *EmptyError) Error() string {
	switch {
	case e.Status == StatusFilteredEmpty:
		return fmt.Sprintf("no data on or after %s", e.Cutoff.Format(time.DateOnly))
	case e.Keys != nil:
		return fmt.Sprintf("no value field in rows (available fields: %s)", strings.Join(e.Keys, ", "))
	default:
		return "no valid points"
	}
}
