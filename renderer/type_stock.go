package renderer

import (
	"github.com/etnz/folio"
	"github.com/etnz/folio/cashflow"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/report"
)

// Stock is the page of a single stock: header, price, report and cash flows.
type Stock struct {
	Symbol      string         `json:"symbol"`
	Ticker      string         `json:"ticker"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Currency    string         `json:"currency"`
	BuyDate     date.Date      `json:"buyDate"`
	Tags        folio.Tags     `json:"tags"`
	Qty         folio.Quantity `json:"qty"`
	BuyPrice    folio.Money    `json:"buyPrice"`
	Cost        folio.Money    `json:"cost"`
	Note        string         `json:"note,omitempty"`
	HasPosition bool           `json:"hasPosition"`

	Quotes     Series        `json:"quotes"`
	Report     report.Report `json:"report"`
	ReportNote string        `json:"reportNote,omitempty"` // shown when there is no report
	Cashflow   Cashflow      `json:"cashflow"`
}

// NewStock returns the header of the stock page of t. Quotes, report and cash
// flows are loaded separately.
func NewStock(t folio.Target) *Stock {
	h := t.Holding()
	ticker := t.Meta.Ticker
	if ticker == "" {
		ticker = t.Symbol
	}
	return &Stock{
		Symbol:      t.Symbol,
		Ticker:      ticker,
		Name:        t.Meta.Label(),
		Slug:        t.Slug,
		Currency:    t.Currency(),
		BuyDate:     h.BuyDate,
		Tags:        t.Meta.Tags,
		Qty:         h.Qty,
		BuyPrice:    h.BuyPrice,
		Cost:        h.Cost,
		Note:        t.Meta.Note,
		HasPosition: t.Position != nil,
		Quotes:      Series{Title: "Price"},
		Cashflow:    Cashflow{Note: "Cash flow data not available."},
	}
}

// Cashflow is the operating cash flow window of a stock.
type Cashflow struct {
	Unit  string         `json:"unit,omitempty"`
	Years []CashflowYear `json:"years"`
	Note  string         `json:"note,omitempty"` // shown when there are no years
}

// CashflowYear is a year of the window with its growth over the previous one.
type CashflowYear struct {
	Year      int           `json:"year"`
	OCF       float64       `json:"ocf"`
	Growth    folio.Percent `json:"growth"`
	HasGrowth bool          `json:"hasGrowth"`
}

// NewCashflow returns the view of a cash flow window.
func NewCashflow(w cashflow.Window) Cashflow {
	c := Cashflow{Unit: w.Unit}
	growth := w.Growth()
	for i, y := range w.Years {
		cy := CashflowYear{Year: y.Year, OCF: y.OCF}
		if i > 0 && growth[i-1].OK {
			cy.Growth, cy.HasGrowth = growth[i-1].Change, true
		}
		c.Years = append(c.Years, cy)
	}
	return c
}
