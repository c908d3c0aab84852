package folio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
)

// StockMeta is one tracked instrument as listed in stocks.json.
type StockMeta struct {
	Symbol   string    `json:"symbol,omitempty"` // exchange qualified, e.g. COALINDIA.NS
	Ticker   string    `json:"ticker,omitempty"` // alias, fallback for Symbol
	Name     string    `json:"name,omitempty"`
	SlugHint string    `json:"slug,omitempty"` // explicit slug, normalized by Slug()
	Tags     Tags      `json:"tags,omitempty"`
	BuyDate  date.Date `json:"buy_date"`
	Qty      Quantity  `json:"qty"`
	BuyPrice Quantity  `json:"buy_price"`
	Note     string    `json:"note,omitempty"`
}

// ID returns the instrument key: the symbol, or the ticker when there is no symbol.
func (s StockMeta) ID() string {
	if s.Symbol != "" {
		return s.Symbol
	}
	return s.Ticker
}

// Valid reports whether the record can be identified at all.
func (s StockMeta) Valid() bool { return s.ID() != "" }

// Label is the display name, the ID when the name is missing.
func (s StockMeta) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID()
}

// Slug returns the canonical slug of the stock.
//
// An explicit slug wins, otherwise it is derived from the name, the ticker, the
// symbol base and finally the full symbol, the first non empty one.
func (s StockMeta) Slug() string {
	if s.SlugHint != "" {
		return Slugify(s.SlugHint)
	}
	sym := s.ID()
	for _, candidate := range []string{s.Name, s.Ticker, SymbolBase(sym), sym} {
		if candidate != "" {
			return Slugify(candidate)
		}
	}
	return ""
}

// Tags is a set of labels. In data files it is either an array of strings or a
// single comma separated string.
type Tags []string

// String joins the tags for display.
func (t Tags) String() string { return strings.Join(t, ", ") }

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = compactTags(list)
		return nil
	}
	var str *string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("tags must be a list or a string: %w", err)
	}
	if str == nil {
		*t = nil
		return nil
	}
	*t = compactTags(strings.Split(*str, ","))
	return nil
}

// compactTags trims tags and removes empty and duplicated ones, keeping order.
func compactTags(list []string) Tags {
	var tags Tags
	seen := make(map[string]bool, len(list))
	for _, tag := range list {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// Position is the authoritative buy economics of an instrument, from positions.json.
type Position struct {
	Symbol        string    `json:"symbol"`
	BuyDate       date.Date `json:"buy_date"`
	Qty           Quantity  `json:"qty"`
	BuyPriceLocal Quantity  `json:"buy_price_local"`
	BuyPriceUSD   Quantity  `json:"buy_price_usd"`
	CostLocal     Quantity  `json:"cost_local"`
	CostUSD       Quantity  `json:"cost_usd"`
}

// DecodeStocks decodes the content of stocks.json.
//
// The document must be an array. Records that cannot be decoded, or that have
// neither a symbol nor a ticker, are skipped.
func DecodeStocks(data []byte) ([]StockMeta, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("stocks must be a JSON array: %w", err)
	}
	stocks := make([]StockMeta, 0, len(raw))
	for i, r := range raw {
		var s StockMeta
		if err := json.Unmarshal(r, &s); err != nil {
			log.Debug().Int("index", i).Err(err).Msg("skipping malformed stock record")
			continue
		}
		s.Symbol, s.Ticker = strings.TrimSpace(s.Symbol), strings.TrimSpace(s.Ticker)
		if !s.Valid() {
			log.Debug().Int("index", i).Msg("skipping stock record with no symbol nor ticker")
			continue
		}
		stocks = append(stocks, s)
	}
	return stocks, nil
}

// DecodePositions decodes the content of positions.json, skipping malformed records.
func DecodePositions(data []byte) ([]Position, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("positions must be a JSON array: %w", err)
	}
	positions := make([]Position, 0, len(raw))
	for i, r := range raw {
		var p Position
		if err := json.Unmarshal(r, &p); err != nil {
			log.Debug().Int("index", i).Err(err).Msg("skipping malformed position record")
			continue
		}
		p.Symbol = strings.TrimSpace(p.Symbol)
		if p.Symbol == "" {
			log.Debug().Int("index", i).Msg("skipping position record with no symbol")
			continue
		}
		positions = append(positions, p)
	}
	return positions, nil
}
