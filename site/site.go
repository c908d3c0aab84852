// Package site assembles the pages of the portfolio site. Each widget of a page
// is loaded independently: a failing widget degrades to a note and never
// prevents the rest of the page from rendering.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/etnz/folio"
	"github.com/etnz/folio/nav"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/series"
	"github.com/etnz/folio/source"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrTargetNotFound is returned when a key matches no stock.
var ErrTargetNotFound = errors.New("stock not found")

// Notes shown in place of a widget that could not be loaded.
const (
	NotePriceMissing    = "Price data not available yet. Make sure data/quotes/<symbol>.json exists."
	NotePriceFailed     = "Price data not available."
	NoteReportMissing   = "Report markdown not found yet."
	NoteReportFailed    = "Report not available."
	NoteCashflowMissing = "Cash flow data not available."
	NoteNAVMissing      = "NAV data not available (no valid points in data/nav.json)."
	NoteNAVFailed       = "NAV data not available."
	NotePortfolioFailed = "Portfolio data not available."
)

// Links are the addresses pages use to refer to each other. They differ
// between the static build and the preview server.
type Links struct {
	Home       string                    // index page, from a stock page
	NAVChart   string                    // NAV chart, from the index page
	Stock      func(folio.Target) string // stock page, from the index page
	PriceChart func(folio.Target) string // price chart, from the stock page
}

// StaticLinks are the relative links of the static build.
var StaticLinks = Links{
	Home:       "../index.html",
	NAVChart:   "charts/nav.html",
	Stock:      func(t folio.Target) string { return "stock/" + t.Slug + ".html" },
	PriceChart: func(t folio.Target) string { return "../charts/" + t.Slug + ".html" },
}

// PreviewLinks are the links of the preview server.
var PreviewLinks = Links{
	Home:       "/",
	NAVChart:   "/charts/nav.html",
	Stock:      func(t folio.Target) string { return "/stock.html?" + symbolQuery(t) },
	PriceChart: func(t folio.Target) string { return "/charts/price.html?" + symbolQuery(t) },
}

func symbolQuery(t folio.Target) string { return url.Values{"symbol": {t.Symbol}}.Encode() }

// Site assembles pages from a data source.
type Site struct {
	Loader source.Loader
	Links  Links
}

// New returns a site reading src.
func New(src source.Source, links Links) *Site {
	return &Site{Loader: source.Loader{Source: src}, Links: links}
}

// Home is the index page and the data its charts are drawn from.
type Home struct {
	Page      *renderer.IndexPage
	Portfolio source.Portfolio
	NAV       nav.Chart // empty when NAV data is not available
}

// Home assembles the index page. The portfolio table and the NAV chart are
// loaded concurrently and fail independently.
func (s *Site) Home(ctx context.Context) *Home {
	h := &Home{Page: &renderer.IndexPage{NAVChart: s.Links.NAVChart}}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Loader.Portfolio(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("cannot load the portfolio")
			h.Page.Portfolio = renderer.Portfolio{Error: NotePortfolioFailed}
			return nil
		}
		h.Portfolio = p
		h.Page.Portfolio = *renderer.NewPortfolio(p.Stocks, p.Positions, s.Links.Stock)
		return nil
	})
	g.Go(func() error {
		c, _, err := s.Loader.NAV(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("cannot load the NAV")
			note := NoteNAVMissing
			var fetchErr *source.FetchError
			if errors.As(err, &fetchErr) {
				note = NoteNAVFailed
			}
			h.Page.NAV = renderer.Unavailable("Net asset value", note)
			return nil
		}
		if c.Fallback {
			log.Debug().AnErr("cause", c.Cause).Msg("NAV chart rebuilt from the summary")
		}
		h.NAV = c
		h.Page.NAV = renderer.NewNAVSeries(c)
		return nil
	})
	_ = g.Wait()
	return h
}

// Stock is a stock page and the data its chart is drawn from.
type Stock struct {
	Page   *renderer.StockPage
	Target folio.Target
	Quotes series.Series // empty when quotes are not available
}

// Stock resolves key against the portfolio and assembles the page of the
// stock.
//
// It returns an error wrapping ErrTargetNotFound when key matches nothing, and
// the portfolio loading error when stocks cannot be read.
func (s *Site) Stock(ctx context.Context, key folio.Key) (*Stock, error) {
	p, err := s.Loader.Portfolio(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := p.Resolve(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrTargetNotFound)
	}
	return s.StockOf(ctx, t), nil
}

// StockOf assembles the page of a resolved stock. Quotes, report and cash
// flows are loaded concurrently, each degrading to a note on failure.
func (s *Site) StockOf(ctx context.Context, t folio.Target) *Stock {
	view := renderer.NewStock(t)
	st := &Stock{
		Target: t,
		Page:   &renderer.StockPage{Stock: view, Home: s.Links.Home, PriceChart: s.Links.PriceChart(t)},
	}
	logger := log.With().Str("symbol", t.Symbol).Logger()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := s.Loader.Quotes(ctx, t)
		var empty *series.EmptyError
		switch {
		case err == nil:
			st.Quotes = q
			view.Quotes = renderer.NewSeries("Price", t.Currency(), q)
		case errors.Is(err, source.ErrNotFound):
			view.Quotes = renderer.Unavailable("Price", NotePriceMissing)
		case errors.As(err, &empty):
			logger.Debug().Err(err).Msg("no price to chart")
			view.Quotes = renderer.Unavailable("Price", NotePriceFailed+" "+capitalize(empty.Error())+".")
		default:
			logger.Warn().Err(err).Msg("cannot load quotes")
			view.Quotes = renderer.Unavailable("Price", NotePriceFailed)
		}
		return nil
	})
	g.Go(func() error {
		r, err := s.Loader.Report(ctx, t)
		switch {
		case err == nil:
			view.Report = r
		case errors.Is(err, source.ErrNotFound):
			view.ReportNote = NoteReportMissing
		default:
			logger.Warn().Err(err).Msg("cannot load the report")
			view.ReportNote = NoteReportFailed
		}
		return nil
	})
	g.Go(func() error {
		w, ok, err := s.Loader.Cashflow(ctx, t)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("cannot load cash flows")
		case ok:
			view.Cashflow = renderer.NewCashflow(w)
		default:
			view.Cashflow = renderer.Cashflow{Note: NoteCashflowMissing}
		}
		return nil
	})
	_ = g.Wait()
	return st
}

// NotFound returns the page shown for a key that matches nothing, or when the
// portfolio cannot be loaded.
func (s *Site) NotFound(key folio.Key, err error) *renderer.StockPage {
	msg := NotePortfolioFailed
	switch {
	case errors.Is(err, ErrTargetNotFound) && key.IsZero():
		msg = "No stock requested: add ?slug= or ?symbol= to the address."
	case errors.Is(err, ErrTargetNotFound):
		msg = fmt.Sprintf("Report not found for %s.", key)
	}
	return &renderer.StockPage{NotFound: msg, Home: s.Links.Home}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
