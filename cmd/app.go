// Package cmd implements the pfs command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/site"
	"github.com/etnz/folio/source"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// entry is a registered subcommand and its group in the help.
type entry struct {
	cmd   subcommands.Command
	group string
}

// commands lists the subcommands of pfs.
var commands = []entry{
	{&resolveCmd{}, "data"},
	{&portfolioCmd{}, "data"},
	{&stockCmd{}, "data"},
	{&navCmd{}, "data"},
	{&quotesCmd{}, "data"},
	{&checkCmd{}, "data"},
	{&buildCmd{}, "site"},
	{&serveCmd{}, "site"},
	{&fetchCmd{}, "eodhd"},
	{&searchCmd{}, "eodhd"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	rootFlag    = flag.String("root", "", "Site root: a directory or the base URL of a published site (default \".\" or $PFS_ROOT)")
	configFlag  = flag.String("config", "", "Configuration file (default pfs.yaml in the current directory)")
	verboseFlag = flag.Bool("v", false, "Log debug messages")
	rawFlag     = flag.Bool("raw", false, "Print markdown as is, without terminal formatting")
)

// stdout receives the output of the commands.
var stdout io.Writer = os.Stdout

// config holds the settings, see Setup.
var config = viper.New()

// Configuration keys.
const (
	keyRoot   = "root"
	keyOutput = "output"
	keyAddr   = "addr"
	keyAPIKey = "eodhd.api_key"
)

// Setup configures logging and loads the configuration. It must be called
// after the flags are parsed.
func Setup() error {
	setupLogging(os.Stderr, *verboseFlag)
	return loadConfig()
}

func setupLogging(w io.Writer, verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig reads the configuration file, the PFS_* environment variables and
// the global flags, by increasing order of precedence.
func loadConfig() error {
	v := viper.New()
	v.SetDefault(keyRoot, ".")
	v.SetDefault(keyOutput, "public")
	v.SetDefault(keyAddr, site.DefaultAddr)
	v.SetEnvPrefix("PFS")
	v.AutomaticEnv()
	if err := v.BindEnv(keyAPIKey, "EODHD_API_KEY"); err != nil {
		return err
	}

	if *configFlag != "" {
		v.SetConfigFile(*configFlag)
	} else {
		v.SetConfigName("pfs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFlag != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading configuration: %w", err)
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("configuration loaded")
	}

	if *rootFlag != "" {
		v.Set(keyRoot, *rootFlag)
	}
	config = v
	return nil
}

// openSource opens the configured site root.
func openSource() (source.Source, error) {
	root := config.GetString(keyRoot)
	src, err := source.Open(root)
	if err != nil {
		return nil, fmt.Errorf("opening site root %q: %w", root, err)
	}
	return src, nil
}

// loader returns a loader of the configured site root.
func loader() (source.Loader, error) {
	src, err := openSource()
	if err != nil {
		return source.Loader{}, err
	}
	return source.Loader{Source: src}, nil
}

// localRoot returns the configured site root, that must be a directory.
func localRoot() (string, error) {
	root := config.GetString(keyRoot)
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return "", fmt.Errorf("site root %q is not a local directory", root)
	}
	if _, err := source.Open(root); err != nil {
		return "", err
	}
	return root, nil
}

// parseKey returns the key given by a -symbol flag or a slug argument.
func parseKey(symbol string, f *flag.FlagSet) (folio.Key, error) {
	key := folio.Key{Symbol: strings.TrimSpace(symbol)}
	switch f.NArg() {
	case 0:
	case 1:
		key.Slug = strings.TrimSpace(f.Arg(0))
	default:
		return key, errors.New("expecting at most one slug")
	}
	if key.IsZero() {
		return key, errors.New("a slug or -symbol is required")
	}
	return key, nil
}

// interruptible returns a context canceled on interrupt.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
