package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// wordWrap is the width of the formatted markdown.
const wordWrap = 100

// printMarkdown prints md formatted for the terminal, or as is with -raw.
func printMarkdown(md string) {
	if *rawFlag {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Debug().Err(err).Msg("cannot format markdown")
	fmt.Fprint(stdout, md)
}
