package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/cashflow"
	"github.com/etnz/folio/nav"
	"github.com/etnz/folio/report"
	"github.com/etnz/folio/series"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Loader loads and decodes the data of the site's views.
type Loader struct {
	Source Source
}

// Portfolio is the list of tracked stocks and their positions.
type Portfolio struct {
	Stocks    []folio.StockMeta
	Positions []folio.Position
}

// Resolve resolves key against the portfolio.
func (p Portfolio) Resolve(key folio.Key) (folio.Target, bool) {
	return folio.Resolve(p.Stocks, p.Positions, key)
}

// Portfolio loads stocks.json and positions.json concurrently.
//
// Stocks are essential: any failure to read or decode them is returned.
// Positions are optional, a failure leaves them empty.
func (l Loader) Portfolio(ctx context.Context) (Portfolio, error) {
	var p Portfolio
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.Source.Read(ctx, StocksFile)
		if err != nil {
			return err
		}
		p.Stocks, err = folio.DecodeStocks(data)
		return err
	})
	g.Go(func() error {
		data, err := l.Source.Read(ctx, PositionsFile)
		if err != nil {
			l.absent(PositionsFile, err)
			return nil
		}
		if p.Positions, err = folio.DecodePositions(data); err != nil {
			l.absent(PositionsFile, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Portfolio{}, err
	}
	return p, nil
}

// NAV loads nav.json and nav_summary.json concurrently and builds the NAV
// chart.
//
// The summary is optional. A missing nav.json is handled like an empty one:
// the chart falls back to the summary, with the read error as its cause. Any
// other read error of nav.json is returned.
func (l Loader) NAV(ctx context.Context) (nav.Chart, nav.Summary, error) {
	var (
		rows    []byte
		readErr error
		sum     nav.Summary
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, readErr = l.Source.Read(ctx, NAVFile)
		return nil
	})
	g.Go(func() error {
		data, err := l.Source.Read(ctx, NAVSummaryFile)
		if err != nil {
			l.absent(NAVSummaryFile, err)
			return nil
		}
		if sum, err = nav.DecodeSummary(data); err != nil {
			l.absent(NAVSummaryFile, err)
		}
		return nil
	})
	_ = g.Wait()
	if readErr != nil && !errors.Is(readErr, ErrNotFound) {
		return nav.Chart{}, sum, readErr
	}

	chart, err := nav.NewChart(rows, sum)
	if readErr != nil {
		if err != nil {
			return nav.Chart{}, sum, readErr
		}
		chart.Cause = readErr
	}
	return chart, sum, err
}

// Quotes loads and normalizes the quotes of t. The buy price of t is used as
// reference, so that it is always within the bounds.
//
// An empty series is reported as a *series.EmptyError.
func (l Loader) Quotes(ctx context.Context, t folio.Target) (series.Series, error) {
	data, err := l.Source.Read(ctx, QuotesFile(t.Symbol))
	if err != nil {
		return series.Series{}, err
	}
	res := series.Normalize(data, series.Options{
		Value:     series.QuoteKey,
		Reference: t.Holding().BuyPrice.Float(),
	})
	if !res.OK() {
		return series.Series{}, fmt.Errorf("%s: %w", QuotesFile(t.Symbol), res.Err())
	}
	log.Debug().Str("symbol", t.Symbol).Int("points", res.Series.Len()).Int("dropped", res.Dropped).Msg("quotes normalized")
	return res.Series, nil
}

// Cashflow loads the latest cash flow window of t. It returns false when the
// file is absent or has no window.
func (l Loader) Cashflow(ctx context.Context, t folio.Target) (cashflow.Window, bool, error) {
	data, err := l.Source.Read(ctx, CashflowFile(t.Symbol))
	if errors.Is(err, ErrNotFound) {
		return cashflow.Window{}, false, nil
	}
	if err != nil {
		return cashflow.Window{}, false, err
	}
	f, err := cashflow.Decode(data)
	if err != nil {
		return cashflow.Window{}, false, fmt.Errorf("%s: %w", CashflowFile(t.Symbol), err)
	}
	w, ok := f.LatestWindow()
	return w, ok, nil
}

// Report loads the report of t from the first candidate file that exists.
//
// ErrNotFound is returned when no candidate exists.
func (l Loader) Report(ctx context.Context, t folio.Target) (report.Report, error) {
	for _, name := range report.Candidates(t) {
		data, err := l.Source.Read(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return report.Report{}, err
		}
		return report.New(name, data)
	}
	return report.Report{}, fmt.Errorf("report for %s: %w", t.Symbol, ErrNotFound)
}

func (l Loader) absent(name string, err error) {
	if errors.Is(err, ErrNotFound) {
		log.Debug().Str("file", name).Msg("optional file is absent")
		return
	}
	log.Warn().Err(err).Str("file", name).Msg("optional file treated as absent")
}
