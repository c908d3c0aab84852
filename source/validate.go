package source

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind is a kind of data file.
type Kind string

// Kinds of data files.
const (
	KindStocks     Kind = "stocks"
	KindPositions  Kind = "positions"
	KindNAV        Kind = "nav"
	KindNAVSummary Kind = "nav_summary"
	KindQuotes     Kind = "quotes"
	KindCashflow   Kind = "cashflow"
)

//go:embed schema/*.json
var schemaFS embed.FS

var schemaFiles = map[Kind]string{
	KindStocks:     "stocks.json",
	KindPositions:  "positions.json",
	KindNAV:        "rows.json",
	KindQuotes:     "rows.json",
	KindNAVSummary: "nav_summary.json",
	KindCashflow:   "cashflow.json",
}

// KindOf returns the kind of the data file name.
func KindOf(name string) (Kind, bool) {
	switch name {
	case StocksFile:
		return KindStocks, true
	case PositionsFile:
		return KindPositions, true
	case NAVFile:
		return KindNAV, true
	case NAVSummaryFile:
		return KindNAVSummary, true
	}
	if path.Ext(name) != ".json" {
		return "", false
	}
	switch path.Dir(name) {
	case QuotesDir:
		return KindQuotes, true
	case CashflowsDir:
		return KindCashflow, true
	}
	return "", false
}

var schemas = sync.OnceValues(func() (map[Kind]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	entries, err := fs.ReadDir(schemaFS, "schema")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schema", e.Name()))
		if err != nil {
			return nil, err
		}
		if err := c.AddResource(e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("invalid schema %s: %w", e.Name(), err)
		}
	}
	compiled := make(map[Kind]*jsonschema.Schema, len(schemaFiles))
	for kind, file := range schemaFiles {
		s, err := c.Compile(file)
		if err != nil {
			return nil, fmt.Errorf("invalid schema %s: %w", file, err)
		}
		compiled[kind] = s
	}
	return compiled, nil
})

// Validate checks data against the schema of kind.
//
// Decoders are more tolerant than schemas: a file failing validation may still
// be partially usable.
func Validate(kind Kind, data []byte) error {
	all, err := schemas()
	if err != nil {
		return err
	}
	s, ok := all[kind]
	if !ok {
		return fmt.Errorf("unknown data kind %q", kind)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid %s json: %w", kind, err)
	}
	if dec.More() {
		return fmt.Errorf("invalid %s json: trailing data", kind)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}
	return nil
}
