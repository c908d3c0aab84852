package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/cashflow"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/nav"
	"github.com/etnz/folio/report"
	"github.com/etnz/folio/series"
	"github.com/google/go-cmp/cmp"
)

func day(s string) time.Time { return date.MustParse(s).Time() }

func threePoints() series.Series {
	points := []series.Point{
		{X: day("2023-06-01"), Y: 100},
		{X: day("2023-07-01"), Y: 105},
		{X: day("2023-08-01"), Y: 110},
	}
	return series.Series{Key: "close", Points: points, Bounds: series.NewBounds(points, 0)}
}

func TestNewPortfolio(t *testing.T) {
	stocks := []folio.StockMeta{
		{Symbol: "COALINDIA.NS", Name: "Coal India", BuyDate: date.New(2023, 6, 1), Qty: folio.Q(10), BuyPrice: folio.Q(150)},
		{Symbol: "AAPL", Name: "Apple", BuyDate: date.New(2024, 1, 5), Qty: folio.Q(2), BuyPrice: folio.Q(180)},
		{Symbol: "MSFT", Name: "Microsoft"},
		{Symbol: "ITC.NS", Name: "ITC", BuyDate: date.New(2022, 3, 1)},
	}
	positions := []folio.Position{
		{Symbol: "COALINDIA.NS", Qty: folio.Q(12), BuyPriceLocal: folio.Q(148), CostLocal: folio.Q(1776)},
	}
	link := func(t folio.Target) string { return "stock/" + t.Slug + ".html" }

	p := NewPortfolio(stocks, positions, link)
	if got, want := len(p.Rows), len(stocks); got != want {
		t.Fatalf("len(Rows) = %d, want %d", got, want)
	}
	coal := p.Rows[0]
	if !coal.Qty.Equal(folio.Q(12)) || !coal.Cost.Equal(folio.M(1776, "INR")) {
		t.Errorf("Rows[0] = qty %v cost %v, want the position's 12 and 1776 INR", coal.Qty, coal.Cost)
	}
	if got, want := coal.Href, "stock/coal-india.html"; got != want {
		t.Errorf("Rows[0].Href = %q, want %q", got, want)
	}

	var recent []string
	for _, r := range p.Recent {
		recent = append(recent, r.Symbol)
	}
	if diff := cmp.Diff([]string{"AAPL", "COALINDIA.NS", "ITC.NS"}, recent); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStock(t *testing.T) {
	target := folio.Target{
		Symbol: "COALINDIA.NS",
		Slug:   "coal-india",
		Meta:   folio.StockMeta{Symbol: "COALINDIA.NS", Name: "Coal India", Qty: folio.Q(10), BuyPrice: folio.Q(150)},
	}
	s := NewStock(target)
	if s.Ticker != "COALINDIA.NS" {
		t.Errorf("Ticker = %q, want the symbol", s.Ticker)
	}
	if s.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", s.Currency)
	}
	if s.HasPosition {
		t.Error("HasPosition = true, want false")
	}
	if !s.Cost.Equal(folio.M(1500, "INR")) {
		t.Errorf("Cost = %v, want 1500 INR", s.Cost)
	}
}

func TestNewCashflow(t *testing.T) {
	w := cashflow.Window{Unit: "INR Cr", Years: []cashflow.Year{{Year: 2021, OCF: 0}, {Year: 2022, OCF: 100}, {Year: 2023, OCF: 150}}}
	got := NewCashflow(w)
	want := Cashflow{
		Unit: "INR Cr",
		Years: []CashflowYear{
			{Year: 2021, OCF: 0},
			{Year: 2022, OCF: 100},
			{Year: 2023, OCF: 150, Growth: 50, HasGrowth: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewCashflow() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSeries(t *testing.T) {
	got := NewSeries("Price", "INR", threePoints())
	want := Series{
		Title:        "Price",
		Key:          "close",
		Unit:         "INR",
		Points:       3,
		From:         date.New(2023, 6, 1),
		To:           date.New(2023, 8, 1),
		First:        100,
		Last:         110,
		Change:       10,
		SuggestedMin: 99.5,
		SuggestedMax: 110.5,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(date.Date{})); diff != "" {
		t.Errorf("NewSeries() mismatch (-want +got):\n%s", diff)
	}

	if got := NewSeries("Price", "INR", series.Series{}); got.Points != 0 || got.Title != "Price" {
		t.Errorf("NewSeries(empty) = %+v", got)
	}
}

func TestNewNAVSeries(t *testing.T) {
	c := nav.Chart{Series: threePoints(), Unit: "USD", Fallback: true}
	got := NewNAVSeries(c)
	if got.Note == "" {
		t.Error("fallback NAV series has no note")
	}
	if got.Unit != "USD" {
		t.Errorf("Unit = %q, want USD", got.Unit)
	}
}

func TestWriteIndexPage(t *testing.T) {
	page := &IndexPage{
		Portfolio: Portfolio{
			Rows: []PortfolioRow{{Symbol: "COALINDIA.NS", Name: "Coal <India>", Href: "stock/coal-india.html"}},
		},
		NAV:      NewSeries("Net asset value", "USD", threePoints()),
		NAVChart: "charts/nav.html",
		Year:     2024,
	}
	var b bytes.Buffer
	if err := WriteIndexPage(&b, page); err != nil {
		t.Fatalf("WriteIndexPage() error = %v", err)
	}
	got := b.String()
	for _, want := range []string{
		`<title>Portfolio</title>`,
		`id="portfolioTable"`,
		`Coal &lt;India&gt;`,
		`href="stock/coal-india.html"`,
		`src="charts/nav.html"`,
		`3 points from 2023-06-01 to 2023-08-01`,
		`<span id="year">2024</span>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WriteIndexPage() output does not contain %q:\n%s", want, got)
		}
	}

	page.NAV = Unavailable("Net asset value", "NAV data not available.")
	b.Reset()
	if err := WriteIndexPage(&b, page); err != nil {
		t.Fatalf("WriteIndexPage() error = %v", err)
	}
	if got := b.String(); strings.Contains(got, "<iframe") || !strings.Contains(got, "NAV data not available.") {
		t.Errorf("WriteIndexPage() without NAV:\n%s", got)
	}
}

func TestWriteStockPage(t *testing.T) {
	s := &Stock{
		Symbol:     "COALINDIA.NS",
		Ticker:     "COALINDIA",
		Name:       "Coal India",
		Tags:       folio.Tags{"psu"},
		Quotes:     Unavailable("Price", "Price data not available yet."),
		Report:     report.Report{File: "reports/coal-india.md", HTML: "<h1>Thesis</h1>\n"},
		Cashflow:   Cashflow{Note: "Cash flow data not available."},
		ReportNote: "unused",
	}
	var b bytes.Buffer
	if err := WriteStockPage(&b, &StockPage{Stock: s, Home: "../index.html", PriceChart: "../charts/coal-india.html"}); err != nil {
		t.Fatalf("WriteStockPage() error = %v", err)
	}
	got := b.String()
	for _, want := range []string{
		`<title>COALINDIA - Coal India | Report</title>`,
		`<span class="tag">psu</span>`,
		`Price data not available yet.`,
		`<h1>Thesis</h1>`,
		`Cash flow data not available.`,
		`href="../index.html"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WriteStockPage() output does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<iframe") {
		t.Errorf("WriteStockPage() shows a price chart without quotes:\n%s", got)
	}

	b.Reset()
	if err := WriteStockPage(&b, &StockPage{NotFound: "No stock matches slug \"nope\".", Home: "index.html"}); err != nil {
		t.Fatalf("WriteStockPage() error = %v", err)
	}
	got = b.String()
	if !strings.Contains(got, "Report not found") || !strings.Contains(got, "No stock matches slug &#34;nope&#34;.") {
		t.Errorf("WriteStockPage() not found:\n%s", got)
	}
}

func TestPriceChart(t *testing.T) {
	var b bytes.Buffer
	if err := WriteChart(&b, PriceChart("Coal India", threePoints(), folio.M(95, "INR"))); err != nil {
		t.Fatalf("WriteChart() error = %v", err)
	}
	got := b.String()
	for _, want := range []string{"Close price", "Buy price", "dashed", `"type":"time"`, `["2023-06-01",100]`, `["2023-08-01",110]`, `["2023-08-01",95]`} {
		if !strings.Contains(got, want) {
			t.Errorf("PriceChart() output does not contain %q", want)
		}
	}

	b.Reset()
	if err := WriteChart(&b, PriceChart("Coal India", threePoints(), folio.Money{})); err != nil {
		t.Fatalf("WriteChart() error = %v", err)
	}
	if strings.Contains(b.String(), "Buy price") {
		t.Error("PriceChart() draws a buy price line with no buy price")
	}
}

func TestNAVChart(t *testing.T) {
	var b bytes.Buffer
	if err := WriteChart(&b, NAVChart(nav.Chart{Series: threePoints(), Unit: "USD"})); err != nil {
		t.Fatalf("WriteChart() error = %v", err)
	}
	if got := b.String(); !strings.Contains(got, "Portfolio NAV (USD)") {
		t.Errorf("NAVChart() output does not contain the series name:\n%s", got)
	}
}
