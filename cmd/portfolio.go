package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/site"
	"github.com/google/subcommands"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio table and the recent buys" }
func (*portfolioCmd) Usage() string {
	return `pfs portfolio

  Displays the stocks of the portfolio with their buy economics, positions
  winning over stocks.json, and the most recent buys.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	view := renderer.NewPortfolio(p.Stocks, p.Positions, site.StaticLinks.Stock)
	printMarkdown(renderer.RenderPortfolio(view))
	return subcommands.ExitSuccess
}
