package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/folio/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Symbol returns the site symbol of the result, as used in stocks.json.
func (r SearchResult) Symbol() string { return Symbol(r.Code, r.Exchange) }

// Search searches for securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?api_token=%s&fmt=json", c.base(), url.PathEscape(searchTerm), url.QueryEscape(c.APIKey))

	var results []SearchResult
	if err := jwget(ctx, c.client(), addr, &results); err != nil {
		return nil, err
	}
	return results, nil
}
