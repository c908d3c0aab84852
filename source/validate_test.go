package source

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
		ok   bool
	}{
		{StocksFile, KindStocks, true},
		{PositionsFile, KindPositions, true},
		{NAVFile, KindNAV, true},
		{NAVSummaryFile, KindNAVSummary, true},
		{QuotesFile("COALINDIA.NS"), KindQuotes, true},
		{CashflowFile("COALINDIA.NS"), KindCashflow, true},
		{"data/quotes/readme.txt", "", false},
		{"reports/coal-india.md", "", false},
	}
	for _, tt := range tests {
		if got, ok := KindOf(tt.name); got != tt.want || ok != tt.ok {
			t.Errorf("KindOf(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		kind    Kind
		data    string
		wantErr bool
	}{
		{KindStocks, coalStocks, false},
		{KindStocks, `[{"ticker":"MSFT","tags":"tech, us","qty":"3","buy_price":null}]`, false},
		{KindStocks, `[{"name":"no identity"}]`, true},
		{KindStocks, `[{"symbol":"X","qty":"many"}]`, true},
		{KindStocks, `{"symbol":"X"}`, true},
		{KindPositions, coalPositions, false},
		{KindPositions, `[{"qty":1}]`, true},
		{KindNAV, `[{"date":"2024-01-01","nav_usd":1,"nav_index":null}]`, false},
		{KindNAV, `[{"nav_usd":1}]`, true},
		{KindQuotes, `[{"date":"2024-01-01","close":1}]`, false},
		{KindQuotes, `[{"date":"2024-01-01","close":{"value":1}}]`, true},
		{KindNAVSummary, `{"base_currency":"USD","latest":{"date":"2024-01-01","nav":1}}`, false},
		{KindNAVSummary, `{"latest":{"date":"2024-01-01"}}`, true},
		{KindCashflow, `{"years":[{"year":2023,"ocf":1.5}],"unit":"INR Cr"}`, false},
		{KindCashflow, `{"unit":"INR Cr"}`, true},
		{KindCashflow, `{"years":[]} trailing`, true},
		{"unknown", `[]`, true},
	}
	for _, tt := range tests {
		err := Validate(tt.kind, []byte(tt.data))
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%s, %s) error = %v, wantErr %v", tt.kind, tt.data, err, tt.wantErr)
		}
	}
}
