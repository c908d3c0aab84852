package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/etnz/folio/eodhd"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	years     int
	dividends bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "refresh quote files from EODHD" }
func (*fetchCmd) Usage() string {
	return `pfs fetch [-years <n>] [-dividends] [<symbol>...]

  Fetches the daily close prices of the given symbols, or of all the stocks,
  and writes them into data/quotes/<symbol>.json. Requires an EODHD API key
  and a local site root.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "years", 5, "number of years of history to fetch")
	f.BoolVar(&c.dividends, "dividends", false, "also write the dividends of the period into data/dividends.json")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.years <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -years must be positive")
		return subcommands.ExitUsageError
	}
	client, ok := eodhdClient()
	if !ok {
		return subcommands.ExitFailure
	}
	root, err := localRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	symbols := f.Args()
	if len(symbols) == 0 {
		if symbols, err = allSymbols(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading the portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	to := date.Today()
	// a month of slack so that the first year is complete.
	from := to.Add(-c.years*365 - 30)

	ctx, stop := interruptible(ctx)
	defer stop()
	updates, err := client.RefreshQuotes(ctx, root, symbols, from, to)
	if c.dividends {
		divs, derr := client.RefreshDividends(ctx, root, symbols, from, to)
		printUpdates("Dividends", divs)
		if derr != nil {
			err = derr
		}
	}
	printUpdates("Quotes", updates)
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// eodhdClient returns a client with the configured API key, or reports its
// absence.
func eodhdClient() (*eodhd.Client, bool) {
	key := config.GetString(keyAPIKey)
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: EODHD API key missing, set EODHD_API_KEY or eodhd.api_key in pfs.yaml")
		return nil, false
	}
	return eodhd.NewClient(key), true
}

// allSymbols returns the symbols of all the stocks, without duplicates.
func allSymbols(ctx context.Context) ([]string, error) {
	l, err := loader()
	if err != nil {
		return nil, err
	}
	p, err := l.Portfolio(ctx)
	if err != nil {
		return nil, err
	}
	var symbols []string
	seen := make(map[string]bool)
	for _, s := range p.Stocks {
		if id := s.ID(); !seen[id] {
			seen[id] = true
			symbols = append(symbols, id)
		}
	}
	return symbols, nil
}

func printUpdates(title string, updates []eodhd.Update) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n| Symbol | Ticker | Points | Status |\n|:---|:---|---:|:---|\n", title)
	for _, u := range updates {
		status := "ok"
		if u.Err != nil {
			status = strings.ReplaceAll(u.Err.Error(), "|", `\|`)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", u.Symbol, u.Ticker, u.Points, status)
	}
	printMarkdown(b.String())
}
