package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// Quote is the close price of a day.
type Quote struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// fetchPrices returns the daily close prices of an EODHD ticker, bounds
// included.
func (c *Client) fetchPrices(ctx context.Context, ticker string, from, to date.Date) ([]Quote, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", c.base(), url.PathEscape(ticker), url.QueryEscape(c.APIKey), from, to)

	content := make([]Quote, 0)
	if err := jwget(ctx, c.client(), addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// Dividend is a dividend paid on its ex-dividend date.
type Dividend struct {
	Date     date.Date       `json:"date"` // ex-dividend date, see https://eodhd.com/financial-apis/api-splits-dividends
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// fetchDividends returns the dividend history of an EODHD ticker.
func (c *Client) fetchDividends(ctx context.Context, ticker string, from, to date.Date) ([]Dividend, error) {
	addr := fmt.Sprintf("%s/div/%s?fmt=json&api_token=%s&from=%s&to=%s", c.base(), url.PathEscape(ticker), url.QueryEscape(c.APIKey), from, to)

	content := make([]Dividend, 0)
	if err := jwget(ctx, c.client(), addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}
