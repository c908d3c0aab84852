package series

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/folio/date"
	"github.com/tidwall/gjson"
)

// DateParser reads the timestamp of a row field. It returns false when the
// value is not a valid date.
type DateParser func(raw gjson.Result) (time.Time, bool)

// maxEpochMillis is 9999-12-31T23:59:59.999Z, the last instant a date string
// can express.
const maxEpochMillis = 253402300799999

// ParseDate is the default DateParser.
//
// Strings are parsed with date.ParseTime, so "2023-06-01" is UTC midnight. JSON
// numbers are epoch milliseconds.
func ParseDate(raw gjson.Result) (time.Time, bool) {
	switch raw.Type {
	case gjson.String:
		t, err := date.ParseTime(raw.Str)
		return t, err == nil
	case gjson.Number:
		if math.IsNaN(raw.Num) || math.Abs(raw.Num) > maxEpochMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(raw.Num)).UTC(), true
	default:
		return time.Time{}, false
	}
}

// parseValue reads a numeric field: a JSON number or a numeric string.
func parseValue(raw gjson.Result) (float64, bool) {
	switch raw.Type {
	case gjson.Number:
		return raw.Num, true
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw.Str), 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// valid reports whether v can be a price or NAV: finite and strictly positive.
func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
