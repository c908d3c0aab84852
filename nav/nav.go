// Package nav builds the portfolio NAV chart from nav.json and
// nav_summary.json.
package nav

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/series"
	"github.com/rs/zerolog/log"
)

// IndexKey is the field of the NAV rebased to 100 at inception.
const IndexKey = "nav_index"

// Key selects the NAV value field of nav.json rows: nav_usd, then nav, then
// the first nav_<ccy> field, and nav_index as a last resort.
var Key = series.FirstOf(
	series.Exact("nav_usd", "nav"),
	series.Prefix("nav_", IndexKey),
	series.Exact(IndexKey),
)

// Unit returns the display unit of a NAV key: a currency code, or "" for
// index points. The plain "nav" key is in the base currency.
func Unit(key, base string) string {
	switch {
	case key == IndexKey:
		return ""
	case strings.HasPrefix(key, "nav_"):
		return strings.ToUpper(strings.TrimPrefix(key, "nav_"))
	default:
		return base
	}
}

// Chart is the NAV series ready to be drawn.
type Chart struct {
	series.Series
	Unit string // currency code, "" for index points

	// Fallback is true when nav.json had no usable point after inception and
	// the series was rebuilt from the summary. Cause holds why.
	Fallback bool
	Cause    error
}

// ErrNoSummary is returned when the fallback series cannot be built because
// the summary holds no valid point.
var ErrNoSummary = errors.New("no valid point in nav summary")

// NewChart normalizes NAV rows, dropping points before the inception date.
//
// When nothing remains, the series falls back to the two points known from the
// summary: the starting cash at inception and the latest NAV. The error is the
// reason the primary series was empty, it is returned only if the fallback is
// empty too.
func NewChart(rows []byte, sum Summary) (Chart, error) {
	var cutoff time.Time
	if !sum.Inception.IsZero() {
		cutoff = sum.Inception.Time()
	}
	res := series.Normalize(rows, series.Options{Value: Key, Cutoff: cutoff})
	base := sum.BaseCurrency
	if base == "" {
		base = folio.USD
	}
	if res.OK() {
		log.Debug().Str("key", res.Series.Key).Int("rows", res.Rows).Int("dropped", res.Dropped).Msg("nav normalized")
		return Chart{Series: res.Series, Unit: Unit(res.Series.Key, base)}, nil
	}

	cause := res.Err()
	log.Debug().Err(cause).Msg("nav falls back to summary")
	points := fallbackPoints(sum)
	if len(points) == 0 {
		return Chart{}, errors.Join(cause, ErrNoSummary)
	}
	return Chart{
		Series: series.Series{
			Key:    "nav",
			Points: points,
			Bounds: series.NewBounds(points, 0),
		},
		Unit:     base,
		Fallback: true,
		Cause:    cause,
	}, nil
}

// fallbackPoints returns the valid points among (inception, starting cash) and
// (latest date, latest NAV), sorted by date.
func fallbackPoints(sum Summary) []series.Point {
	var points []series.Point
	add := func(d date.Date, m folio.Money) {
		if d.IsZero() || !m.IsPositive() {
			return
		}
		points = append(points, series.Point{X: d.Time(), Y: m.Float()})
	}
	add(sum.Inception, sum.StartingCash)
	add(sum.Latest.Date, sum.Latest.NAV)
	slices.SortStableFunc(points, func(a, b series.Point) int { return a.X.Compare(b.X) })
	return points
}
