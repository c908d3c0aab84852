// Package folio resolves the identity of the instruments tracked by a static
// portfolio site.
//
// The site data is a set of loosely-schema'd JSON files: stocks.json lists the
// instruments with optional slugs, positions.json carries the authoritative buy
// economics, and per-instrument files are keyed by symbol. The core functions are:
//   - Slug derivation: Slugify and LooseSlug turn names, tickers and symbols into
//     comparable URL-safe identifiers.
//   - Identity resolution: Resolve maps a URL key (symbol or slug) to one canonical
//     Target, using progressively looser matching.
//   - Buy economics: Target.Holding merges a position over the stock metadata.
//   - Currency classification: CurrencyOf derives the local currency from the
//     exchange suffix of a symbol.
//
// Time series normalization lives in the series package, and page assembly in
// the site package.
package folio
