// Package renderer turns the portfolio views into terminal markdown, HTML pages
// and charts.
package renderer

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var embedded embed.FS

// templates holds the markdown partials at its root and the HTML pages under
// html/.
var templates = func() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}()

// RenderPortfolio renders the portfolio table and the recent buys to markdown.
func RenderPortfolio(p *Portfolio) string {
	partials := map[string]string{
		"portfolio_table":  "portfolio_table.md",
		"portfolio_recent": "portfolio_recent.md",
	}
	return renderTemplate("portfolio", "portfolio.md", partials, p)
}

// RenderStock renders a stock to markdown, report included.
func RenderStock(s *Stock) string {
	partials := map[string]string{
		"stock_header":   "stock_header.md",
		"series_summary": "series_summary.md",
		"stock_cashflow": "stock_cashflow.md",
	}
	return renderTemplate("stock", "stock.md", partials, s)
}

// RenderSeries renders the summary of a series to markdown.
func RenderSeries(s Series) string {
	partials := map[string]string{
		"series_summary": "series_summary.md",
	}
	return renderTemplate("series", "series.md", partials, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// IndexPage is the home page of the site.
type IndexPage struct {
	Portfolio Portfolio
	NAV       Series
	NAVChart  string // address of the NAV chart
	Year      int
}

// StockPage is the page of a stock.
type StockPage struct {
	Stock      *Stock // nil when the stock was not found
	NotFound   string
	Home       string // address of the index page
	PriceChart string // address of the price chart
	Year       int
}

// pages are parsed once, unlike the markdown templates they are served.
var pages = map[string]*htmltemplate.Template{
	"index": htmltemplate.Must(htmltemplate.ParseFS(templates, "html/layout.html", "html/index.html")),
	"stock": htmltemplate.Must(htmltemplate.ParseFS(templates, "html/layout.html", "html/stock.html")),
}

// WriteIndexPage writes the HTML index page.
func WriteIndexPage(w io.Writer, p *IndexPage) error {
	if p.Year == 0 {
		p.Year = time.Now().Year()
	}
	return pages["index"].ExecuteTemplate(w, "layout", p)
}

// WriteStockPage writes the HTML page of a stock.
func WriteStockPage(w io.Writer, p *StockPage) error {
	if p.Year == 0 {
		p.Year = time.Now().Year()
	}
	return pages["stock"].ExecuteTemplate(w, "layout", p)
}
