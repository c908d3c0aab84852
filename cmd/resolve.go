package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio/report"
	"github.com/google/subcommands"
)

type resolveCmd struct {
	symbol string
	json   bool
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolve a slug or a symbol to a stock" }
func (*resolveCmd) Usage() string {
	return `pfs resolve [-json] [-symbol <symbol>] [<slug>]

  Resolves a stock the way the stock page does, and shows its identity and the
  report files it is looked up in. The symbol wins over the slug.
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "exact symbol or ticker of the stock")
	f.BoolVar(&c.json, "json", false, "print the resolved stock as JSON")
}

func (c *resolveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding the stock: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	position := "no"
	if t.Position != nil {
		position = "yes"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Meta.Label())
	b.WriteString("| Symbol | Slug | Currency | Position |\n|:---|:---|:---|:---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n", t.Symbol, t.Slug, t.Currency(), position)
	b.WriteString("Report candidates:\n\n")
	for _, name := range report.Candidates(t) {
		fmt.Fprintf(&b, "- `%s`\n", name)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
