package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/source"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the data files against their schema" }
func (*checkCmd) Usage() string {
	return `pfs check

  Validates data/stocks.json and every optional data file that exists:
  positions, NAV, NAV summary, and the quotes and cash flows of each stock.
  Fails if any file is invalid or if data/stocks.json is missing.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

// checkResult is the validation outcome of a file.
type checkResult struct {
	name   string
	status string
	failed bool
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := openSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	results, err := check(ctx, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("| File | Status |\n|:---|:---|\n")
	failed := false
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s |\n", r.name, strings.ReplaceAll(r.status, "|", `\|`))
		failed = failed || r.failed
	}
	printMarkdown(b.String())
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// check validates the files of src. Stocks are required, the other files are
// checked when present.
func check(ctx context.Context, src source.Source) ([]checkResult, error) {
	var results []checkResult
	validate := func(name string, required bool) []byte {
		data, err := src.Read(ctx, name)
		switch {
		case errors.Is(err, source.ErrNotFound) && !required:
			results = append(results, checkResult{name: name, status: "absent"})
			return nil
		case err != nil:
			results = append(results, checkResult{name: name, status: err.Error(), failed: true})
			return nil
		}
		kind, _ := source.KindOf(name)
		if err := source.Validate(kind, data); err != nil {
			results = append(results, checkResult{name: name, status: oneLine(err.Error()), failed: true})
			return nil
		}
		results = append(results, checkResult{name: name, status: "ok"})
		return data
	}

	stocksData := validate(source.StocksFile, true)
	validate(source.PositionsFile, false)
	validate(source.NAVFile, false)
	validate(source.NAVSummaryFile, false)
	if stocksData == nil {
		return results, nil
	}
	stocks, err := folio.DecodeStocks(stocksData)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, s := range stocks {
		sym := s.ID()
		if seen[sym] {
			continue
		}
		seen[sym] = true
		validate(source.QuotesFile(sym), false)
		validate(source.CashflowFile(sym), false)
	}
	return results, nil
}

// oneLine joins the lines of a validation error for a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", "; ")), " ")
}
