package folio

// INRs is a helper for test to create rupee money from const
func INRs(v float64) Money { return M(v, INR) }

// USDs is a helper for test to create dollar money from const
func USDs(v float64) Money { return M(v, USD) }

// coalIndia is the stock record used across resolver tests.
var coalIndia = StockMeta{Name: "Coal India", Symbol: "COALINDIA.NS", Qty: Q(10), BuyPrice: Q(150)}

// mustStocks decodes a stocks.json literal or panics.
func mustStocks(js string) []StockMeta {
	stocks, err := DecodeStocks([]byte(js))
	if err != nil {
		panic(err)
	}
	return stocks
}
