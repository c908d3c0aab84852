// Package cashflow reads the operating cash flow history of a company from
// data/cashflows/<symbol>.json.
package cashflow

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/folio"
	"github.com/tidwall/gjson"
)

// WindowSize is the number of consecutive years a window spans.
const WindowSize = 3

// Year is the operating cash flow (OCF) of a fiscal year.
type Year struct {
	Year int
	OCF  float64
}

// File is a decoded cash flow file. Years are sorted and unique.
type File struct {
	Years []Year
	Unit  string // free text, e.g. "INR Cr"
}

// ErrMalformed is returned when a document is not a cash flow object.
var ErrMalformed = errors.New("cash flow file is not an object")

// Decode decodes a cash flow document: {"years": [{"year", "ocf"}], "unit"}.
//
// Years and OCF may be numbers or numeric strings. Entries without a year or
// a finite OCF are dropped. When a year is repeated, the last entry wins.
func Decode(data []byte) (File, error) {
	if !gjson.ValidBytes(data) {
		return File{}, ErrMalformed
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return File{}, ErrMalformed
	}
	f := File{Unit: strings.TrimSpace(doc.Get("unit").String())}

	byYear := make(map[int]float64)
	for _, row := range doc.Get("years").Array() {
		y, ok := number(row.Get("year"))
		if !ok || y != math.Trunc(y) || y <= 0 {
			continue
		}
		ocf, ok := number(row.Get("ocf"))
		if !ok || math.IsNaN(ocf) || math.IsInf(ocf, 0) {
			continue
		}
		byYear[int(y)] = ocf
	}
	for y, ocf := range byYear {
		f.Years = append(f.Years, Year{Year: y, OCF: ocf})
	}
	slices.SortFunc(f.Years, func(a, b Year) int { return a.Year - b.Year })
	return f, nil
}

func number(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// Window is a run of WindowSize consecutive years.
type Window struct {
	Unit  string
	Years []Year
}

// LatestWindow returns the most recent run of WindowSize consecutive years.
// It returns false if there is none.
func (f File) LatestWindow() (Window, bool) {
	for end := len(f.Years); end >= WindowSize; end-- {
		run := f.Years[end-WindowSize : end]
		if consecutive(run) {
			return Window{Unit: f.Unit, Years: slices.Clone(run)}, true
		}
	}
	return Window{}, false
}

func consecutive(years []Year) bool {
	for i := 1; i < len(years); i++ {
		if years[i].Year != years[i-1].Year+1 {
			return false
		}
	}
	return true
}

// Growth is the year over year change of the OCF.
type Growth struct {
	Year   int
	Change folio.Percent
	OK     bool // false when the previous OCF is zero
}

// Growth returns the change of each year over the previous one, computed
// against the magnitude of the previous OCF so that a recovery from a negative
// cash flow is a positive change.
func (w Window) Growth() []Growth {
	var out []Growth
	for i := 1; i < len(w.Years); i++ {
		prev, cur := w.Years[i-1], w.Years[i]
		g := Growth{Year: cur.Year}
		g.Change, g.OK = folio.Growth(prev.OCF, cur.OCF)
		out = append(out, g)
	}
	return out
}
