// Package eodhd refreshes the quote files of the site from the EOD Historical
// Data API (https://eodhd.com).
package eodhd

import (
	"net/http"
	"strings"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Client accesses the EODHD API.
type Client struct {
	APIKey  string
	BaseURL string       // defaults to DefaultBaseURL
	HTTP    *http.Client // defaults to http.DefaultClient
}

// NewClient returns a client of the public API.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey, BaseURL: DefaultBaseURL, HTTP: http.DefaultClient}
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// exchanges maps the symbol suffixes used by the site to EODHD's exchange
// codes.
var exchanges = map[string]string{
	"NS": "NSE",
	"BO": "BSE",
}

// Ticker returns the EODHD ticker of a site symbol: COALINDIA.NS is
// COALINDIA.NSE, and a symbol without exchange is a US one.
func Ticker(symbol string) string {
	base, suffix, ok := strings.Cut(symbol, ".")
	if !ok {
		return symbol + ".US"
	}
	if code, ok := exchanges[strings.ToUpper(suffix)]; ok {
		return base + "." + code
	}
	return symbol
}

// Symbol is the inverse of Ticker: it returns the site symbol of an EODHD
// code and exchange.
func Symbol(code, exchange string) string {
	if strings.EqualFold(exchange, "US") {
		return code
	}
	for suffix, ex := range exchanges {
		if strings.EqualFold(ex, exchange) {
			return code + "." + suffix
		}
	}
	return code + "." + exchange
}
