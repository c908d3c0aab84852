package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/site"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve a live preview of the site" }
func (*serveCmd) Usage() string {
	return `pfs serve [-addr <host:port>]

  Serves the site, assembling each page from the data files on every request,
  until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listening address (default \"localhost:8080\" or $PFS_ADDR)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	addr := c.addr
	if addr == "" {
		addr = config.GetString(keyAddr)
	}
	src, err := openSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	srv := site.NewServer(addr, site.New(src, site.PreviewLinks))

	ctx, stop := interruptible(ctx)
	defer stop()
	log.Info().Str("addr", "http://"+srv.Addr()).Msg("serving, interrupt to stop")
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
