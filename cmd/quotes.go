package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type quotesCmd struct {
	symbol string
	points bool
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "display the price series of a stock" }
func (*quotesCmd) Usage() string {
	return `pfs quotes [-points] [-symbol <symbol>] [<slug>]

  Displays the summary of the close prices of a stock, as charted on its page.
  The axis bounds include the buy price.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "exact symbol or ticker of the stock")
	f.BoolVar(&c.points, "points", false, "list every point of the series")
}

func (c *quotesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := parseKey(c.symbol, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	l, err := loader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := l.Portfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	t, ok := p.Resolve(key)
	if !ok {
		fmt.Fprintf(os.Stderr, "No stock matches %s\n", key)
		return subcommands.ExitFailure
	}
	s, err := l.Quotes(ctx, t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Price data not available: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.RenderSeries(renderer.NewSeries("Price of "+t.Meta.Label(), t.Currency(), s))
	if c.points {
		md += pointsTable(s)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
