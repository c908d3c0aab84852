package series

import (
	"math"
	"slices"
	"time"

	"github.com/tidwall/gjson"
)

// Options configures a normalization.
type Options struct {
	Value   KeySelector // value field strategy, required
	Date    DateParser  // defaults to ParseDate
	DateKey string      // defaults to "date"

	// Cutoff drops points strictly before it, e.g. the inception date of a fund.
	Cutoff time.Time

	// Reference, when positive, widens the Y bounds to include it, so that a
	// reference line such as the buy price is never clipped.
	Reference float64
}

func (o Options) dateKey() string {
	if o.DateKey == "" {
		return "date"
	}
	return o.DateKey
}

func (o Options) dateParser() DateParser {
	if o.Date == nil {
		return ParseDate
	}
	return o.Date
}

// Normalize parses a JSON document of rows and normalizes it.
//
// Anything but a non-empty array yields StatusNoPoints.
func Normalize(data []byte, opts Options) Result {
	if !gjson.ValidBytes(data) {
		return Result{Status: StatusNoPoints}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return Result{Status: StatusNoPoints}
	}
	return NormalizeRows(doc.Array(), opts)
}

// NormalizeRows normalizes rows into a series.
//
// The value field is chosen from the first row. Rows whose date does not parse,
// or whose value is not a finite positive number, are dropped: prices and NAV
// are never zero or negative. Points are sorted by date, ties keeping their row
// order, and points before opts.Cutoff are removed.
func NormalizeRows(rows []gjson.Result, opts Options) Result {
	res := Result{Status: StatusNoPoints, Rows: len(rows), Cutoff: opts.Cutoff}
	if len(rows) == 0 {
		return res
	}
	key, ok := opts.Value(rows[0])
	if !ok {
		res.Keys = Keys(rows[0])
		if res.Keys == nil {
			res.Keys = []string{}
		}
		return res
	}

	parse, dateKey := opts.dateParser(), opts.dateKey()
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		if !row.IsObject() {
			continue
		}
		x, ok := parse(field(row, dateKey))
		if !ok {
			continue
		}
		y, ok := parseValue(field(row, key))
		if !ok || !valid(y) {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	res.Dropped = len(rows) - len(points)
	if len(points) == 0 {
		return res
	}

	slices.SortStableFunc(points, func(a, b Point) int { return a.X.Compare(b.X) })

	if !opts.Cutoff.IsZero() {
		i, _ := slices.BinarySearchFunc(points, opts.Cutoff, func(p Point, t time.Time) int { return p.X.Compare(t) })
		points = points[i:]
		if len(points) == 0 {
			res.Status = StatusFilteredEmpty
			return res
		}
	}

	res.Status = StatusOK
	res.Series = Series{Key: key, Points: points, Bounds: NewBounds(points, opts.Reference)}
	return res
}

// field returns the value of the row field named key. Keys are matched
// literally, without gjson path syntax.
func field(row gjson.Result, key string) gjson.Result {
	var found gjson.Result
	row.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}

// NewBounds computes the axis bounds of non empty points.
//
// When reference is positive and finite, the Y range is widened to include it.
// The padding is 5% of the Y range, or max(1, 5% of YMax) for a flat series.
func NewBounds(points []Point, reference float64) Bounds {
	b := Bounds{
		XMin: points[0].X,
		XMax: points[len(points)-1].X,
		YMin: math.Inf(1),
		YMax: math.Inf(-1),
	}
	for _, p := range points {
		b.YMin = math.Min(b.YMin, p.Y)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	if valid(reference) {
		b.YMin = math.Min(b.YMin, reference)
		b.YMax = math.Max(b.YMax, reference)
	}
	pad := (b.YMax - b.YMin) * 0.05
	if b.YMax == b.YMin {
		pad = math.Max(1, b.YMax*0.05)
	}
	b.SuggestedMin = math.Max(0, b.YMin-pad)
	b.SuggestedMax = b.YMax + pad
	return b
}
