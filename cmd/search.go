package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the symbol of a company on EODHD" }
func (*searchCmd) Usage() string {
	return `pfs search <name, ticker or ISIN>

  Searches EODHD and prints the matching securities with the symbol to use in
  data/stocks.json.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	term := strings.TrimSpace(strings.Join(f.Args(), " "))
	if term == "" {
		fmt.Fprintln(os.Stderr, "Error: a search term is required")
		return subcommands.ExitUsageError
	}
	client, ok := eodhdClient()
	if !ok {
		return subcommands.ExitFailure
	}
	results, err := client.Search(ctx, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching %q: %v\n", term, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("| Symbol | Name | Type | Exchange | Currency | ISIN | Previous close |\n|:---|:---|:---|:---|:---|:---|---:|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %.2f |\n", r.Symbol(), r.Name, r.Type, r.Exchange, r.Currency, r.ISIN, r.PreviousClose)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
