package cmd

import (
	"flag"

	"github.com/etnz/folio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of pfs, derived from the registered
// subcommands and their flags.
func Completion() *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	for _, name := range []string{"help", "flags", "commands"} {
		c.Sub[name] = &complete.Command{Args: predictCommands}
	}
	for _, e := range commands {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		if e.cmd.Name() == "topic" {
			sub.Args = predictTopics
		}
		c.Sub[e.cmd.Name()] = sub
	}
	return c
}

// flagPredictors overrides the default prediction of flags by name.
var flagPredictors = map[string]complete.Predictor{
	"root":   predict.Dirs("*"),
	"config": predict.Files("*.yaml"),
	"o":      predict.Dirs("*"),
}

// predictFlags predicts the flags of fs: nothing after a boolean flag,
// something after the others.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

var predictCommands = complete.PredictFunc(func(prefix string) []string {
	names := make([]string, 0, len(commands))
	for _, e := range commands {
		names = append(names, e.cmd.Name())
	}
	return names
})

var predictTopics = complete.PredictFunc(func(prefix string) []string {
	topics, err := docs.All()
	if err != nil {
		return nil
	}
	return topics
})
