package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/folio"
	"github.com/etnz/folio/series"
)

func TestLoaderPortfolio(t *testing.T) {
	ctx := context.Background()

	l := Loader{writeDir(t, map[string]string{StocksFile: coalStocks, PositionsFile: coalPositions})}
	p, err := l.Portfolio(ctx)
	if err != nil {
		t.Fatalf("Portfolio() unexpected error %v", err)
	}
	if len(p.Stocks) != 1 || len(p.Positions) != 1 {
		t.Errorf("Portfolio() = %+v", p)
	}
	target, ok := p.Resolve(folio.Key{Slug: "coal-india"})
	if !ok || target.Position == nil {
		t.Errorf("Resolve(coal-india) = %+v, %v", target, ok)
	}

	// positions are optional.
	l = Loader{writeDir(t, map[string]string{StocksFile: coalStocks, PositionsFile: `{"not":"an array"}`})}
	if p, err := l.Portfolio(ctx); err != nil || len(p.Positions) != 0 {
		t.Errorf("Portfolio() with broken positions = %+v, %v", p, err)
	}

	// stocks are not.
	l = Loader{writeDir(t, map[string]string{PositionsFile: coalPositions})}
	if _, err := l.Portfolio(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Portfolio() without stocks error = %v, want %v", err, ErrNotFound)
	}
}

func TestLoaderNAV(t *testing.T) {
	ctx := context.Background()
	summary := `{"starting_cash":1000,"inception_date":"2023-06-01","latest":{"date":"2024-01-01","nav":1100}}`

	l := Loader{writeDir(t, map[string]string{
		NAVFile:        `[{"date":"2023-05-01","nav_usd":900},{"date":"2023-07-01","nav_usd":1010}]`,
		NAVSummaryFile: summary,
	})}
	c, sum, err := l.NAV(ctx)
	if err != nil {
		t.Fatalf("NAV() unexpected error %v", err)
	}
	if c.Fallback || c.Len() != 1 || sum.Inception.IsZero() {
		t.Errorf("NAV() = %+v, %+v", c, sum)
	}

	// missing nav.json falls back to the summary.
	l = Loader{writeDir(t, map[string]string{NAVSummaryFile: summary})}
	c, _, err = l.NAV(ctx)
	if err != nil {
		t.Fatalf("NAV() unexpected error %v", err)
	}
	if !c.Fallback || c.Len() != 2 || !errors.Is(c.Cause, ErrNotFound) {
		t.Errorf("NAV() = %+v, want a fallback caused by the missing file", c)
	}

	// nothing at all.
	l = Loader{writeDir(t, nil)}
	if _, _, err := l.NAV(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("NAV() error = %v, want %v", err, ErrNotFound)
	}
}

func TestLoaderNAVUnreachable(t *testing.T) {
	summary := `{"starting_cash":1000,"inception_date":"2023-06-01","latest":{"date":"2024-01-01","nav":1100}}`
	mux := http.NewServeMux()
	mux.HandleFunc("/data/nav.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/data/nav_summary.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summary))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h, err := NewHTTP(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewHTTP() unexpected error %v", err)
	}
	c, _, err := Loader{h}.NAV(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("NAV() error = %v, want a *FetchError", err)
	}
	if c.Fallback || c.Len() != 0 {
		t.Errorf("NAV() = %+v, want no chart when nav.json is unreachable", c)
	}
}

func TestLoaderQuotes(t *testing.T) {
	ctx := context.Background()
	l := Loader{writeDir(t, map[string]string{
		StocksFile:                 coalStocks,
		QuotesFile("COALINDIA.NS"): `[{"date":"2024-01-01","close":200},{"date":"2024-01-02","close":"210"}]`,
		QuotesFile("EMPTY.NS"):     `[{"date":"2024-01-01","open":200}]`,
	})}
	target := folio.Target{Symbol: "COALINDIA.NS", Meta: folio.StockMeta{Symbol: "COALINDIA.NS", BuyPrice: folio.Q(150)}}
	s, err := l.Quotes(ctx, target)
	if err != nil {
		t.Fatalf("Quotes() unexpected error %v", err)
	}
	if s.Len() != 2 || s.YMin != 150 {
		t.Errorf("Quotes() = %+v, want 2 points and the buy price in bounds", s)
	}

	_, err = l.Quotes(ctx, folio.Target{Symbol: "EMPTY.NS"})
	var empty *series.EmptyError
	if !errors.As(err, &empty) || !strings.Contains(err.Error(), "available fields: date, open") {
		t.Errorf("Quotes(EMPTY.NS) error = %v, want a schema drift", err)
	}
	if _, err := l.Quotes(ctx, folio.Target{Symbol: "MISSING"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Quotes(MISSING) error = %v, want %v", err, ErrNotFound)
	}
}

func TestLoaderCashflow(t *testing.T) {
	ctx := context.Background()
	l := Loader{writeDir(t, map[string]string{
		CashflowFile("A"): `{"unit":"INR Cr","years":[{"year":2021,"ocf":1},{"year":2022,"ocf":2},{"year":2023,"ocf":3}]}`,
		CashflowFile("B"): `{"years":[{"year":2021,"ocf":1},{"year":2023,"ocf":3}]}`,
		CashflowFile("C"): `[]`,
	})}
	if w, ok, err := l.Cashflow(ctx, folio.Target{Symbol: "A"}); err != nil || !ok || w.Unit != "INR Cr" {
		t.Errorf("Cashflow(A) = %+v, %v, %v", w, ok, err)
	}
	if _, ok, err := l.Cashflow(ctx, folio.Target{Symbol: "B"}); err != nil || ok {
		t.Errorf("Cashflow(B) = %v, %v, want no window", ok, err)
	}
	if _, _, err := l.Cashflow(ctx, folio.Target{Symbol: "C"}); err == nil {
		t.Error("Cashflow(C) expected an error")
	}
	if _, ok, err := l.Cashflow(ctx, folio.Target{Symbol: "D"}); err != nil || ok {
		t.Errorf("Cashflow(D) = %v, %v, want absent", ok, err)
	}
}

func TestLoaderReport(t *testing.T) {
	ctx := context.Background()
	l := Loader{writeDir(t, map[string]string{
		"reports/coalindia.md": "# Coal India\n",
	})}
	target := folio.Target{Symbol: "COALINDIA.NS", Slug: "coal-india", Meta: folio.StockMeta{Name: "Coal India"}}
	r, err := l.Report(ctx, target)
	if err != nil {
		t.Fatalf("Report() unexpected error %v", err)
	}
	if r.File != "reports/coalindia.md" || !strings.Contains(string(r.HTML), "<h1>Coal India</h1>") {
		t.Errorf("Report() = %+v", r)
	}
	if _, err := l.Report(ctx, folio.Target{Symbol: "X", Slug: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Report(x) error = %v, want %v", err, ErrNotFound)
	}
}
