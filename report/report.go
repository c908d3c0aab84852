// Package report locates and renders the markdown research report of a stock.
//
// Reports live under reports/ and have been named inconsistently over time,
// so a stock has an ordered list of candidate file names, the first existing
// one wins.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"slices"
	"strings"

	"github.com/etnz/folio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Dir is the directory holding reports, relative to the data root.
const Dir = "reports"

// Rule derives a report base name from a target. An empty name means the rule
// does not apply.
type Rule func(folio.Target) string

// Rules are the candidate rules, in priority order.
var Rules = []Rule{
	func(t folio.Target) string { return t.Slug },
	func(t folio.Target) string { return t.Symbol },
	func(t folio.Target) string { return folio.Slugify(t.Symbol) },
	func(t folio.Target) string { return folio.SymbolBase(t.Symbol) },
	func(t folio.Target) string { return strings.ToLower(folio.SymbolBase(t.Symbol)) },
	func(t folio.Target) string { return folio.Slugify(t.Meta.Name) },
}

// Candidates returns the report paths to try for t, in order, without empty
// or duplicate entries.
func Candidates(t folio.Target) []string {
	var paths []string
	for _, rule := range Rules {
		name := strings.TrimSpace(rule(t))
		if name == "" || strings.ContainsAny(name, `/\`) {
			continue
		}
		p := path.Join(Dir, name+".md")
		if !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// Report is a loaded report.
type Report struct {
	File     string        `json:"file"`
	Markdown string        `json:"markdown"`
	HTML     template.HTML `json:"html"`
}

// New renders the markdown content of file into a report.
func New(file string, md []byte) (Report, error) {
	html, err := Render(md)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", file, err)
	}
	return Report{File: file, Markdown: string(md), HTML: html}, nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render converts a markdown report into HTML. Raw HTML in the report is
// omitted.
func Render(md []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(md, &buf); err != nil {
		return "", fmt.Errorf("cannot render report: %w", err)
	}
	return template.HTML(buf.String()), nil
}
