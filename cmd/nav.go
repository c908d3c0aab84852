package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/series"
	"github.com/google/subcommands"
)

type navCmd struct {
	points bool
}

func (*navCmd) Name() string     { return "nav" }
func (*navCmd) Synopsis() string { return "display the net asset value series" }
func (*navCmd) Usage() string {
	return `pfs nav [-points]

  Displays the summary of the NAV series as charted on the index page: valid
  rows of data/nav.json from the inception date, or the inception and latest
  values of data/nav_summary.json when there is none.
`
}

func (c *navCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.points, "points", false, "list every point of the series")
}

func (c *navCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := loader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	chart, _, err := l.NAV(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "NAV data not available: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.RenderSeries(renderer.NewNAVSeries(chart))
	if c.points {
		md += pointsTable(chart.Series)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// pointsTable renders the points of s as a markdown table.
func pointsTable(s series.Series) string {
	var b strings.Builder
	b.WriteString("\n| Date | Value |\n|:---|---:|\n")
	for _, p := range s.Points {
		fmt.Fprintf(&b, "| %s | %.2f |\n", p.X.Format("2006-01-02"), p.Y)
	}
	return b.String()
}
