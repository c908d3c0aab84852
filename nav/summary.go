package nav

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// Summary is the content of nav_summary.json.
type Summary struct {
	BaseCurrency string
	StartingCash folio.Money
	Inception    date.Date
	Latest       Latest
}

// Latest is the last NAV computation of the summary.
type Latest struct {
	Date     date.Date
	NAV      folio.Money
	Cash     folio.Money
	Holdings folio.Money
	Invested folio.Money
	PnL      folio.Money
	PnLPct   folio.Percent
	HasPnL   bool // PnL figures are null before inception
}

// the summary has been written by different generations of the generator,
// fields are therefore looked up in several places, first found wins.
var (
	basePaths      = []string{"$.base_currency", "$.currency"}
	inceptionPaths = []string{"$.inception_date", "$.inception"}
	cashPaths      = []string{"$.starting_cash", "$.starting_cash_usd"}
	latestDate     = []string{"$.latest.date", "$.date"}
	latestNAV      = []string{"$.latest.nav", "$.latest.nav_usd"}
	latestCash     = []string{"$.latest.cash", "$.latest.cash_usd"}
	latestHoldings = []string{"$.latest.holdings", "$.latest.holdings_usd"}
	latestInvested = []string{"$.latest.invested", "$.latest.invested_usd"}
	latestPnL      = []string{"$.latest.pnl_abs", "$.latest.pnl_abs_usd"}
	latestPnLPct   = []string{"$.latest.pnl_pct"}
)

// DecodeSummary decodes a NAV summary document.
//
// Missing or malformed fields are left zero, only a document that is not a JSON
// object is an error.
func DecodeSummary(data []byte) (Summary, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Summary{}, fmt.Errorf("cannot parse nav summary: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return Summary{}, fmt.Errorf("nav summary is not a JSON object")
	}

	var s Summary
	s.BaseCurrency = strings.ToUpper(lookupString(doc, basePaths...))
	if s.BaseCurrency == "" {
		s.BaseCurrency = folio.USD
	}
	money := func(paths ...string) folio.Money {
		v, _ := lookupNumber(doc, paths...)
		return folio.M(v, s.BaseCurrency)
	}

	s.Inception = lookupDate(doc, inceptionPaths...)
	s.StartingCash = money(cashPaths...)
	s.Latest = Latest{
		Date:     lookupDate(doc, latestDate...),
		NAV:      money(latestNAV...),
		Cash:     money(latestCash...),
		Holdings: money(latestHoldings...),
		Invested: money(latestInvested...),
	}
	pnl, okAbs := lookupNumber(doc, latestPnL...)
	pct, okPct := lookupNumber(doc, latestPnLPct...)
	if okAbs && okPct {
		s.Latest.PnL = folio.M(pnl, s.BaseCurrency)
		s.Latest.PnLPct = folio.Percent(pct)
		s.Latest.HasPnL = true
	}
	return s, nil
}

// lookup returns the first non null value found at paths.
func lookup(doc any, paths ...string) (any, bool) {
	for _, path := range paths {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			continue // unknown key
		}
		// jsonpath may wrap single answers in a list.
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				continue
			}
			v = list[0]
		}
		if v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupString(doc any, paths ...string) string {
	v, _ := lookup(doc, paths...)
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// lookupNumber returns the first value at paths as a finite number: "NaN" or
// "Inf" strings are not numbers.
func lookupNumber(doc any, paths ...string) (float64, bool) {
	v, ok := lookup(doc, paths...)
	if !ok {
		return 0, false
	}
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func lookupDate(doc any, paths ...string) date.Date {
	t, err := date.ParseTime(lookupString(doc, paths...))
	if err != nil {
		return date.Date{}
	}
	return date.Of(t)
}
