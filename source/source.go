// Package source reads the site's flat data files, from a local directory or
// from the base URL of a published site.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Well known data files, relative to the root.
const (
	StocksFile     = "data/stocks.json"
	PositionsFile  = "data/positions.json"
	NAVFile        = "data/nav.json"
	NAVSummaryFile = "data/nav_summary.json"
	QuotesDir      = "data/quotes"
	CashflowsDir   = "data/cashflows"
)

// QuotesFile returns the quote file of symbol.
func QuotesFile(symbol string) string { return path.Join(QuotesDir, symbol+".json") }

// CashflowFile returns the cash flow file of symbol.
func CashflowFile(symbol string) string { return path.Join(CashflowsDir, symbol+".json") }

// ErrNotFound is wrapped by errors reporting a file that does not exist.
var ErrNotFound = errors.New("not found")

// FetchError reports a file that could not be read for any other reason than
// its absence: the source is unreachable.
type FetchError struct {
	Name string
	Err  error
}

func (e *FetchError) Error() string { return fmt.Sprintf("cannot read %s: %v", e.Name, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Source reads named files. Names are slash separated and relative to the
// root of the site, e.g. "data/stocks.json".
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// Open returns the source rooted at root: an HTTP source for an http(s) URL,
// a directory otherwise.
func Open(root string) (Source, error) {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTP(root, nil)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid data root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid data root: %s is not a directory", root)
	}
	return Dir(root), nil
}

var errInvalidName = errors.New("invalid file name")

// Dir is a source reading files from a local directory.
type Dir string

// Read implements Source.
func (d Dir) Read(ctx context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &FetchError{Name: name, Err: errInvalidName}
	}
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	data, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}

// HTTP is a source reading files from a web server.
type HTTP struct {
	Base   *url.URL
	Client *http.Client
}

// NewHTTP returns a source reading files under base. A nil client means
// http.DefaultClient.
func NewHTTP(base string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid data root: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid data root %q: not an http url", base)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: u, Client: client}, nil
}

// Read implements Source. A 404 response is reported as ErrNotFound.
func (h *HTTP) Read(ctx context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &FetchError{Name: name, Err: errInvalidName}
	}
	addr := h.Base.JoinPath(strings.Split(name, "/")...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	defer resp.Body.Close()
	log.Debug().Str("method", req.Method).Str("url", addr.String()).Str("status", resp.Status).Msg("http")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{Name: name, Err: fmt.Errorf("http GET %s: %s", addr.Path, resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}
