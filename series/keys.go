package series

import (
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// KeySelector chooses, from a sample row, the field holding the numeric value.
// It returns false when the row has no suitable field.
type KeySelector func(sample gjson.Result) (string, bool)

// Keys returns the field names of an object row, in document order.
func Keys(row gjson.Result) []string {
	var keys []string
	if !row.IsObject() {
		return keys
	}
	row.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Exact selects the first of names present in the row.
func Exact(names ...string) KeySelector {
	return func(sample gjson.Result) (string, bool) {
		keys := Keys(sample)
		for _, name := range names {
			if slices.Contains(keys, name) {
				return name, true
			}
		}
		return "", false
	}
}

// Prefix selects the first field, in document order, whose name starts with
// prefix and is not one of except.
func Prefix(prefix string, except ...string) KeySelector {
	return func(sample gjson.Result) (string, bool) {
		for _, key := range Keys(sample) {
			if strings.HasPrefix(key, prefix) && !slices.Contains(except, key) {
				return key, true
			}
		}
		return "", false
	}
}

// FirstOf tries each selector in turn.
func FirstOf(selectors ...KeySelector) KeySelector {
	return func(sample gjson.Result) (string, bool) {
		for _, sel := range selectors {
			if key, ok := sel(sample); ok {
				return key, true
			}
		}
		return "", false
	}
}

// QuoteKey selects the value field of quote files: the close price.
var QuoteKey = Exact("close", "adjusted_close", "price")
