package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/site"
	"github.com/google/subcommands"
)

type stockCmd struct {
	symbol string
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "display the page of a stock" }
func (*stockCmd) Usage() string {
	return `pfs stock [-symbol <symbol>] [<slug>]

  Displays the page of a stock: buy economics, price summary, operating cash
  flows and report. Missing parts are replaced by a note.
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "exact symbol or ticker of the stock")
}

func (c *stockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := parseKey(c.symbol, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	src, err := openSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	st, err := site.New(src, site.StaticLinks).Stock(ctx, key)
	if errors.Is(err, site.ErrTargetNotFound) {
		fmt.Fprintf(os.Stderr, "No stock matches %s\n", key)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderStock(st.Page.Stock))
	return subcommands.ExitSuccess
}
