package renderer

import (
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// RecentCount is the number of recent buys shown.
const RecentCount = 3

// Portfolio is the portfolio table and the recent buys.
type Portfolio struct {
	Rows   []PortfolioRow `json:"rows"`
	Recent []PortfolioRow `json:"recent"`
	// Error replaces the table when stocks could not be loaded.
	Error string `json:"error,omitempty"`
}

// PortfolioRow is one stock of the portfolio.
type PortfolioRow struct {
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Href     string         `json:"href"` // link to the stock page
	BuyDate  date.Date      `json:"buyDate"`
	Qty      folio.Quantity `json:"qty"`
	BuyPrice folio.Money    `json:"buyPrice"`
	Cost     folio.Money    `json:"cost"`
	Tags     folio.Tags     `json:"tags"`
}

// Linker returns the address of the page of a stock.
type Linker func(folio.Target) string

// NewPortfolio builds the portfolio view. Each stock is resolved by its own
// symbol, so that the positions' buy economics are shown.
func NewPortfolio(stocks []folio.StockMeta, positions []folio.Position, link Linker) *Portfolio {
	p := &Portfolio{
		Rows:   make([]PortfolioRow, 0, len(stocks)),
		Recent: make([]PortfolioRow, 0, RecentCount),
	}
	row := func(s folio.StockMeta) PortfolioRow {
		t, ok := folio.Resolve(stocks, positions, folio.Key{Symbol: s.ID()})
		if !ok {
			t = folio.Target{Symbol: s.ID(), Slug: s.Slug(), Meta: s}
		}
		h := t.Holding()
		return PortfolioRow{
			Symbol:   t.Symbol,
			Name:     s.Label(),
			Slug:     t.Slug,
			Href:     link(t),
			BuyDate:  h.BuyDate,
			Qty:      h.Qty,
			BuyPrice: h.BuyPrice,
			Cost:     h.Cost,
			Tags:     s.Tags,
		}
	}
	for _, s := range stocks {
		p.Rows = append(p.Rows, row(s))
	}
	for _, s := range folio.Recent(stocks, RecentCount) {
		p.Recent = append(p.Recent, row(s))
	}
	return p
}
