package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/folio"
	"github.com/etnz/folio/source"
)

// testSite is a complete site for Coal India, and a bare Apple.
var testSite = map[string]string{
	source.StocksFile: `[
		{"symbol":"COALINDIA.NS","name":"Coal India","buy_date":"2023-06-01","qty":10,"buy_price":150,"tags":"psu, energy"},
		{"symbol":"AAPL","name":"Apple","buy_date":"2024-01-05","qty":2,"buy_price":180}
	]`,
	source.PositionsFile:                `[{"symbol":"COALINDIA.NS","buy_date":"2023-06-02","qty":12,"buy_price_local":148,"cost_local":1776}]`,
	source.NAVFile:                      `[{"date":"2023-06-01","nav_usd":1000},{"date":"2023-07-01","nav_usd":1100}]`,
	source.QuotesFile("COALINDIA.NS"):   `[{"date":"2023-06-01","close":150},{"date":"2023-07-01","close":155},{"date":"2023-08-01","close":160}]`,
	source.CashflowFile("COALINDIA.NS"): `{"unit":"INR Cr","years":[{"year":2021,"ocf":100},{"year":2022,"ocf":120},{"year":2023,"ocf":150}]}`,
	"reports/coal-india.md":             "# Investment thesis\n\nCheap and boring.\n",
}

// writeSite writes files in a temporary directory and returns a site reading
// it.
func writeSite(t *testing.T, files map[string]string, links Links) *Site {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		file := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(source.Dir(root), links)
}

// with returns a copy of files with changes applied, an empty content removes
// the file.
func with(files map[string]string, changes map[string]string) map[string]string {
	out := make(map[string]string, len(files))
	for k, v := range files {
		out[k] = v
	}
	for k, v := range changes {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

func TestHome(t *testing.T) {
	s := writeSite(t, testSite, StaticLinks)
	h := s.Home(context.Background())

	if got := len(h.Page.Portfolio.Rows); got != 2 {
		t.Fatalf("len(Rows) = %d, want 2", got)
	}
	if got, want := h.Page.Portfolio.Rows[0].Href, "stock/coal-india.html"; got != want {
		t.Errorf("Rows[0].Href = %q, want %q", got, want)
	}
	if got, want := h.Page.Portfolio.Recent[0].Symbol, "AAPL"; got != want {
		t.Errorf("Recent[0] = %q, want %q", got, want)
	}
	if h.NAV.Len() != 2 || h.Page.NAV.Points != 2 {
		t.Errorf("NAV has %d points (page %d), want 2", h.NAV.Len(), h.Page.NAV.Points)
	}
	if got, want := h.Page.NAVChart, "charts/nav.html"; got != want {
		t.Errorf("NAVChart = %q, want %q", got, want)
	}
}

func TestHomeIsolation(t *testing.T) {
	s := writeSite(t, with(testSite, map[string]string{source.StocksFile: "", source.NAVFile: `[{"date":"bad","nav_usd":-1}]`}), StaticLinks)
	h := s.Home(context.Background())

	if got := h.Page.Portfolio.Error; got != NotePortfolioFailed {
		t.Errorf("Portfolio.Error = %q, want %q", got, NotePortfolioFailed)
	}
	if h.Page.NAV.Points != 0 || h.Page.NAV.Note != NoteNAVMissing {
		t.Errorf("NAV = %+v, want no point and a note", h.Page.NAV)
	}
}

func TestHomeNAVUnreachable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == source.NAVFile {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		content, ok := testSite[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	src, err := source.NewHTTP(srv.URL, srv.Client())
	if err != nil {
		t.Fatal(err)
	}
	h := New(src, StaticLinks).Home(context.Background())

	if h.NAV.Len() != 0 || h.Page.NAV.Note != NoteNAVFailed {
		t.Errorf("NAV = %+v, want no chart and note %q", h.Page.NAV, NoteNAVFailed)
	}
	if got := len(h.Page.Portfolio.Rows); got != 2 {
		t.Errorf("len(Rows) = %d, want the portfolio despite the NAV failure", got)
	}
}

func TestStock(t *testing.T) {
	s := writeSite(t, testSite, StaticLinks)
	st, err := s.Stock(context.Background(), folio.Key{Slug: "coal-india"})
	if err != nil {
		t.Fatalf("Stock() unexpected error %v", err)
	}
	if got, want := st.Target.Symbol, "COALINDIA.NS"; got != want {
		t.Errorf("Target.Symbol = %q, want %q", got, want)
	}
	if st.Target.Position == nil {
		t.Error("Target.Position = nil, want the position")
	}
	page := st.Page
	if got, want := page.PriceChart, "../charts/coal-india.html"; got != want {
		t.Errorf("PriceChart = %q, want %q", got, want)
	}
	view := page.Stock
	if view.Quotes.Points != 3 || st.Quotes.Len() != 3 {
		t.Errorf("Quotes has %d points (series %d), want 3", view.Quotes.Points, st.Quotes.Len())
	}
	if view.Quotes.Unit != "INR" {
		t.Errorf("Quotes.Unit = %q, want INR", view.Quotes.Unit)
	}
	if got, want := view.Report.File, "reports/coal-india.md"; got != want {
		t.Errorf("Report.File = %q, want %q", got, want)
	}
	if !strings.Contains(string(view.Report.HTML), "<h1>Investment thesis</h1>") {
		t.Errorf("Report.HTML = %q", view.Report.HTML)
	}
	if got := len(view.Cashflow.Years); got != 3 {
		t.Errorf("len(Cashflow.Years) = %d, want 3", got)
	}
}

func TestStockDegrades(t *testing.T) {
	s := writeSite(t, testSite, StaticLinks)
	st, err := s.Stock(context.Background(), folio.Key{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("Stock() unexpected error %v", err)
	}
	view := st.Page.Stock
	if view.Quotes.Points != 0 || view.Quotes.Note != NotePriceMissing {
		t.Errorf("Quotes = %+v, want note %q", view.Quotes, NotePriceMissing)
	}
	if view.ReportNote != NoteReportMissing {
		t.Errorf("ReportNote = %q, want %q", view.ReportNote, NoteReportMissing)
	}
	if view.Cashflow.Note != NoteCashflowMissing {
		t.Errorf("Cashflow.Note = %q, want %q", view.Cashflow.Note, NoteCashflowMissing)
	}
}

func TestStockBrokenQuotes(t *testing.T) {
	s := writeSite(t, with(testSite, map[string]string{
		source.QuotesFile("COALINDIA.NS"): `[{"date":"soon","close":"n/a"},{"date":"2023-06-01","close":0}]`,
	}), StaticLinks)
	st, err := s.Stock(context.Background(), folio.Key{Symbol: "COALINDIA.NS"})
	if err != nil {
		t.Fatalf("Stock() unexpected error %v", err)
	}
	view := st.Page.Stock
	if !strings.HasPrefix(view.Quotes.Note, NotePriceFailed) {
		t.Errorf("Quotes.Note = %q, want it to start with %q", view.Quotes.Note, NotePriceFailed)
	}
	// the report still renders.
	if view.Report.File == "" {
		t.Error("Report not loaded when quotes are broken")
	}
}

func TestStockNotFound(t *testing.T) {
	s := writeSite(t, testSite, StaticLinks)
	key := folio.Key{Slug: "nope"}
	_, err := s.Stock(context.Background(), key)
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("Stock(%v) error = %v, want %v", key, err, ErrTargetNotFound)
	}
	page := s.NotFound(key, err)
	if page.Stock != nil || !strings.Contains(page.NotFound, "slug=nope") {
		t.Errorf("NotFound() = %+v", page)
	}

	s = writeSite(t, with(testSite, map[string]string{source.StocksFile: ""}), StaticLinks)
	if _, err := s.Stock(context.Background(), key); err == nil || errors.Is(err, ErrTargetNotFound) {
		t.Errorf("Stock() without stocks error = %v, want a loading error", err)
	}
}

func TestBuild(t *testing.T) {
	s := writeSite(t, testSite, StaticLinks)
	out := t.TempDir()
	stats, err := s.Build(context.Background(), out)
	if err != nil {
		t.Fatalf("Build() unexpected error %v", err)
	}
	if want := (Stats{Pages: 3, Charts: 2}); stats != want {
		t.Errorf("Build() = %+v, want %+v", stats, want)
	}
	for _, name := range []string{IndexFile, NAVChartFile, "stock/coal-india.html", "stock/apple.html", "charts/coal-india.html"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(name))); err != nil {
			t.Errorf("Build() did not write %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "charts", "apple.html")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Build() wrote a price chart for a stock with no quotes")
	}

	index, err := os.ReadFile(filepath.Join(out, IndexFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `href="stock/coal-india.html"`) {
		t.Errorf("index.html does not link to the stock page:\n%s", index)
	}
}

func TestBuildDuplicateSlug(t *testing.T) {
	s := writeSite(t, with(testSite, map[string]string{
		source.StocksFile: `[{"symbol":"A.NS","slug":"same"},{"symbol":"B.NS","slug":"same"}]`,
	}), StaticLinks)
	stats, err := s.Build(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Build() unexpected error %v", err)
	}
	if want := (Stats{Pages: 2, Charts: 1}); stats != want {
		t.Errorf("Build() = %+v, want %+v", stats, want)
	}
}
