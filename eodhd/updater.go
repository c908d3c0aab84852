package eodhd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/etnz/folio/date"
	"github.com/etnz/folio/source"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Workers bounds the number of concurrent requests to the API.
const Workers = 4

// DividendsFile lists the dividends of all the symbols.
const DividendsFile = "data/dividends.json"

// Update is the outcome of the refresh of a symbol.
type Update struct {
	Symbol string
	Ticker string
	Points int   // number of quotes or dividends written
	Err    error // nil on success
}

// quoteRow is a row of a quote file.
type quoteRow struct {
	Date  date.Date `json:"date"`
	Close float64   `json:"close"`
}

// RefreshQuotes fetches the close prices of symbols between from and to and
// writes each into its quote file under root.
//
// A failing symbol does not stop the others: its error is reported in its
// Update, and all errors are joined in the returned one. Its existing file is
// left untouched.
func (c *Client) RefreshQuotes(ctx context.Context, root string, symbols []string, from, to date.Date) ([]Update, error) {
	return c.refresh(ctx, symbols, func(ctx context.Context, u *Update) error {
		quotes, err := c.fetchPrices(ctx, u.Ticker, from, to)
		if err != nil {
			return err
		}
		rows := make([]quoteRow, 0, len(quotes))
		for _, q := range quotes {
			if q.Date.IsZero() || !q.Close.IsPositive() {
				continue
			}
			rows = append(rows, quoteRow{Date: q.Date, Close: q.Close.InexactFloat64()})
		}
		if len(rows) == 0 {
			return fmt.Errorf("no quote between %s and %s", from, to)
		}
		slices.SortStableFunc(rows, func(a, b quoteRow) int { return a.Date.Time().Compare(b.Date.Time()) })
		u.Points = len(rows)
		return writeJSON(root, source.QuotesFile(u.Symbol), rows)
	})
}

// DividendRow is a row of the dividends file. The amount is in the local
// currency of the symbol.
type DividendRow struct {
	Symbol   string    `json:"symbol"`
	Date     date.Date `json:"date"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency,omitempty"`
}

// RefreshDividends fetches the dividends of symbols paid between from and to
// and writes them all in the dividends file under root, sorted by date.
//
// The file is written even when some symbols fail, with the dividends of the
// others.
func (c *Client) RefreshDividends(ctx context.Context, root string, symbols []string, from, to date.Date) ([]Update, error) {
	var (
		mu   sync.Mutex
		rows []DividendRow
	)
	updates, err := c.refresh(ctx, symbols, func(ctx context.Context, u *Update) error {
		divs, err := c.fetchDividends(ctx, u.Ticker, from, to)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, d := range divs {
			if d.Date.IsZero() || !d.Value.IsPositive() {
				continue
			}
			rows = append(rows, DividendRow{Symbol: u.Symbol, Date: d.Date, Amount: d.Value.InexactFloat64(), Currency: d.Currency})
			u.Points++
		}
		return nil
	})
	slices.SortStableFunc(rows, func(a, b DividendRow) int {
		if d := a.Date.Time().Compare(b.Date.Time()); d != 0 {
			return d
		}
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		}
		return 0
	})
	if rows == nil {
		rows = []DividendRow{}
	}
	if werr := writeJSON(root, DividendsFile, rows); werr != nil {
		return updates, errors.Join(err, werr)
	}
	return updates, err
}

// refresh runs update for each symbol, at most Workers at once.
func (c *Client) refresh(ctx context.Context, symbols []string, update func(context.Context, *Update) error) ([]Update, error) {
	updates := make([]Update, len(symbols))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers)
	for i, sym := range symbols {
		u := &updates[i]
		u.Symbol, u.Ticker = sym, Ticker(sym)
		g.Go(func() error {
			if err := update(ctx, u); err != nil {
				u.Err = fmt.Errorf("%s (%s): %w", u.Symbol, u.Ticker, err)
				log.Warn().Err(err).Str("symbol", u.Symbol).Str("ticker", u.Ticker).Msg("refresh failed")
				return nil
			}
			log.Debug().Str("symbol", u.Symbol).Int("points", u.Points).Msg("refreshed")
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, u := range updates {
		if u.Err != nil {
			errs = append(errs, u.Err)
		}
	}
	return updates, errors.Join(errs...)
}

// writeJSON writes v as indented JSON into the file name under root, through
// a temporary file so that readers never see a partial file.
func writeJSON(root, name string, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	file := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, b.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, file)
}
