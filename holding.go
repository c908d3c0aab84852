package folio

import (
	"slices"

	"github.com/etnz/folio/date"
)

// Holding is the effective buy economics of an instrument, in its local currency.
type Holding struct {
	BuyDate  date.Date
	Qty      Quantity
	BuyPrice Money
	Cost     Money
}

// Holding returns the buy economics of the target.
//
// The position, when there is one, is authoritative: its values replace the
// stock metadata ones. The cost is the position's recorded cost, or quantity
// times buy price.
func (t Target) Holding() Holding {
	return holdingOf(t.Meta, t.Position, t.Currency())
}

// HoldingOf returns the buy economics of a stock listed without a resolved
// position, as the portfolio table does.
func HoldingOf(s StockMeta) Holding { return holdingOf(s, nil, CurrencyOf(s.ID())) }

func holdingOf(s StockMeta, p *Position, cur string) Holding {
	h := Holding{
		BuyDate:  s.BuyDate,
		Qty:      s.Qty,
		BuyPrice: Price(s.BuyPrice, cur),
	}
	var cost Quantity
	if p != nil {
		if !p.BuyDate.IsZero() {
			h.BuyDate = p.BuyDate
		}
		if !p.Qty.IsZero() {
			h.Qty = p.Qty
		}
		if !p.BuyPriceLocal.IsZero() {
			h.BuyPrice = Price(p.BuyPriceLocal, cur)
		}
		cost = p.CostLocal
	}
	h.Cost = Price(cost, cur)
	if cost.IsZero() {
		h.Cost = h.BuyPrice.Mul(h.Qty)
	}
	return h
}

// Recent returns the n stocks most recently bought, latest first. Stocks with no
// buy date come last, in file order.
func Recent(stocks []StockMeta, n int) []StockMeta {
	sorted := slices.Clone(stocks)
	slices.SortStableFunc(sorted, func(a, b StockMeta) int {
		switch {
		case a.BuyDate == b.BuyDate:
			return 0
		case a.BuyDate.IsZero():
			return 1
		case b.BuyDate.IsZero():
			return -1
		case a.BuyDate.After(b.BuyDate):
			return -1
		default:
			return 1
		}
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
