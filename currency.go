package folio

import "strings"

const (
	INR = "INR"
	USD = "USD"
)

// indianExchanges are the symbol suffixes of instruments priced in INR.
var indianExchanges = []string{".NS", ".BO"}

// CurrencyOf returns the local currency of an instrument from its symbol.
//
// Symbols listed on Indian exchanges (suffix .NS or .BO, case insensitive) are
// priced in INR, everything else defaults to USD.
func CurrencyOf(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, suffix := range indianExchanges {
		if strings.HasSuffix(s, suffix) {
			return INR
		}
	}
	return USD
}
