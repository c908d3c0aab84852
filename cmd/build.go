package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/folio/site"
	"github.com/etnz/folio/source"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type buildCmd struct {
	output string
	watch  bool
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "build the static site" }
func (*buildCmd) Usage() string {
	return `pfs build [-o <dir>] [-watch]

  Writes the static site: index.html, a page per stock in stock/ and the
  charts they embed in charts/. With -watch, rebuilds the site each time a
  data file or a report changes, until interrupted.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output directory (default \"public\" or $PFS_OUTPUT)")
	f.BoolVar(&c.watch, "watch", false, "rebuild on data changes")
}

func (c *buildCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := c.output
	if out == "" {
		out = config.GetString(keyOutput)
	}
	src, err := openSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s := site.New(src, site.StaticLinks)

	build := func(ctx context.Context) error {
		stats, err := s.Build(ctx, out)
		if err != nil {
			return err
		}
		log.Info().Int("pages", stats.Pages).Int("charts", stats.Charts).Str("dir", out).Msg("site built")
		return nil
	}
	if err := build(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error building the site: %v\n", err)
		return subcommands.ExitFailure
	}
	if !c.watch {
		return subcommands.ExitSuccess
	}

	root, err := localRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot watch: %v\n", err)
		return subcommands.ExitUsageError
	}
	ctx, stop := interruptible(ctx)
	defer stop()
	dirs := []string{
		filepath.Join(root, "data"),
		filepath.Join(root, filepath.FromSlash(source.QuotesDir)),
		filepath.Join(root, filepath.FromSlash(source.CashflowsDir)),
		filepath.Join(root, "reports"),
	}
	log.Info().Str("root", root).Msg("watching for changes, interrupt to stop")
	if err := site.Watch(ctx, dirs, build); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
