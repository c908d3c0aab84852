package folio

import (
	"net/url"
	"strings"
)

// Key identifies the requested instrument, as read from a page URL.
//
// Symbol is an exact instrument key, Slug a human readable one. Symbol wins
// when both are set.
type Key struct {
	Symbol string
	Slug   string
}

// ParseKey reads the "symbol" and "slug" URL parameters.
func ParseKey(q url.Values) Key {
	return Key{
		Symbol: strings.TrimSpace(q.Get("symbol")),
		Slug:   strings.TrimSpace(q.Get("slug")),
	}
}

// IsZero reports whether the key requests nothing.
func (k Key) IsZero() bool { return k.Symbol == "" && k.Slug == "" }

// Values encodes the key as URL parameters, the inverse of ParseKey.
func (k Key) Values() url.Values {
	q := url.Values{}
	if k.Symbol != "" {
		q.Set("symbol", k.Symbol)
	}
	if k.Slug != "" {
		q.Set("slug", k.Slug)
	}
	return q
}

func (k Key) String() string {
	if k.Symbol != "" {
		return "symbol=" + k.Symbol
	}
	return "slug=" + k.Slug
}

// Target is the canonical identity of a requested instrument.
type Target struct {
	Symbol   string
	Slug     string
	Meta     StockMeta
	Position *Position // nil when positions.json has no entry for Symbol
}

// Currency returns the local currency of the target.
func (t Target) Currency() string { return CurrencyOf(t.Symbol) }

// Resolve finds the instrument requested by key.
//
// A symbol key matches exactly, case sensitive, the symbol or ticker of a stock.
// A slug key is compared loosely (see LooseSlug) against, in order of preference:
// the symbol base of each position, then the explicit slug, name, symbol, ticker
// and symbol base of the stocks. The first match wins. It returns false when
// nothing matches.
//
// Records with neither symbol nor ticker are ignored.
func Resolve(stocks []StockMeta, positions []Position, key Key) (Target, bool) {
	switch {
	case key.Symbol != "":
		return resolveSymbol(stocks, positions, key.Symbol)
	case key.Slug != "":
		return resolveSlug(stocks, positions, key.Slug)
	default:
		return Target{}, false
	}
}

func resolveSymbol(stocks []StockMeta, positions []Position, symbol string) (Target, bool) {
	for _, s := range stocks {
		if !s.Valid() {
			continue
		}
		if s.Symbol == symbol || s.Ticker == symbol {
			return newTarget(s, positions, symbol), true
		}
	}
	// positions.json alone can identify an instrument.
	if p := findPosition(positions, symbol); p != nil {
		return newTarget(StockMeta{Symbol: p.Symbol}, positions), true
	}
	return Target{}, false
}

// stockFields lists the stock fields compared to a slug, by order of preference.
var stockFields = []func(StockMeta) string{
	func(s StockMeta) string { return s.SlugHint },
	func(s StockMeta) string { return s.Name },
	func(s StockMeta) string { return s.Symbol },
	func(s StockMeta) string { return s.Ticker },
	func(s StockMeta) string { return SymbolBase(s.ID()) },
}

func resolveSlug(stocks []StockMeta, positions []Position, slug string) (Target, bool) {
	want := LooseSlug(slug)
	if want == "" {
		return Target{}, false
	}

	for _, p := range positions {
		if p.Symbol == "" || LooseSlug(SymbolBase(p.Symbol)) != want {
			continue
		}
		if s, ok := findStock(stocks, p.Symbol); ok {
			return newTarget(s, positions), true
		}
		return newTarget(StockMeta{Symbol: p.Symbol}, positions), true
	}

	for _, field := range stockFields {
		for _, s := range stocks {
			if !s.Valid() {
				continue
			}
			if v := field(s); v != "" && LooseSlug(v) == want {
				return newTarget(s, positions), true
			}
		}
	}
	return Target{}, false
}

// newTarget builds the target of s, paired with the position of its symbol or
// of any of the extra keys it was requested by.
func newTarget(s StockMeta, positions []Position, keys ...string) Target {
	t := Target{Symbol: s.ID(), Slug: s.Slug(), Meta: s}
	for _, k := range append([]string{t.Symbol}, keys...) {
		if p := findPosition(positions, k); p != nil {
			t.Position = p
			break
		}
	}
	return t
}

// findStock returns the stock whose symbol or ticker is exactly symbol.
func findStock(stocks []StockMeta, symbol string) (StockMeta, bool) {
	for _, s := range stocks {
		if s.Valid() && (s.Symbol == symbol || s.Ticker == symbol) {
			return s, true
		}
	}
	return StockMeta{}, false
}

// findPosition returns a copy of the position with that exact symbol, or nil.
func findPosition(positions []Position, symbol string) *Position {
	for _, p := range positions {
		if p.Symbol == symbol {
			return &p
		}
	}
	return nil
}
