package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Files written by a static build, relative to the output directory.
const (
	IndexFile    = "index.html"
	StockDir     = "stock"
	ChartsDir    = "charts"
	NAVChartFile = "charts/nav.html"
)

// buildWorkers bounds the number of stock pages assembled at once.
const buildWorkers = 4

// Stats counts the files written by a build.
type Stats struct {
	Pages  int
	Charts int
}

// Build writes the static site into dir: the index page, a page per stock and
// the charts they embed.
//
// Widgets degrade as in the preview server, so only write errors fail the
// build. Stocks sharing a slug are built once, the first one wins.
func (s *Site) Build(ctx context.Context, dir string) (Stats, error) {
	var (
		stats Stats
		mu    sync.Mutex
	)
	write := func(name string, render func(*bytes.Buffer) error, chart bool) error {
		var b bytes.Buffer
		if err := render(&b); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		file := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(file, b.Bytes(), 0644); err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		if chart {
			stats.Charts++
		} else {
			stats.Pages++
		}
		log.Debug().Str("file", name).Msg("written")
		return nil
	}

	home := s.Home(ctx)
	if err := write(IndexFile, func(b *bytes.Buffer) error { return renderer.WriteIndexPage(b, home.Page) }, false); err != nil {
		return stats, err
	}
	if home.NAV.Len() > 0 {
		if err := write(NAVChartFile, func(b *bytes.Buffer) error { return renderer.WriteChart(b, renderer.NAVChart(home.NAV)) }, true); err != nil {
			return stats, err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(buildWorkers)
	seen := make(map[string]string)
	for _, meta := range home.Portfolio.Stocks {
		t, ok := home.Portfolio.Resolve(folio.Key{Symbol: meta.ID()})
		if !ok || t.Slug == "" {
			log.Warn().Str("symbol", meta.ID()).Msg("stock has no slug, skipped")
			continue
		}
		if other, dup := seen[t.Slug]; dup {
			log.Warn().Str("symbol", t.Symbol).Str("slug", t.Slug).Str("kept", other).Msg("duplicate slug, skipped")
			continue
		}
		seen[t.Slug] = t.Symbol
		g.Go(func() error {
			st := s.StockOf(ctx, t)
			page := filepath.ToSlash(filepath.Join(StockDir, t.Slug+".html"))
			if err := write(page, func(b *bytes.Buffer) error { return renderer.WriteStockPage(b, st.Page) }, false); err != nil {
				return err
			}
			if st.Quotes.Len() == 0 {
				return nil
			}
			chart := renderer.PriceChart(t.Meta.Label(), st.Quotes, t.Holding().BuyPrice)
			return write(ChartsDir+"/"+t.Slug+".html", func(b *bytes.Buffer) error { return renderer.WriteChart(b, chart) }, true)
		})
	}
	err := g.Wait()
	return stats, err
}

// debounce is the quiet period after a change before rebuilding, editors
// often write a file in several operations.
const debounce = 300 * time.Millisecond

// Watch calls rebuild each time a file changes in one of dirs, until ctx is
// done. Missing directories are ignored, but at least one must exist.
func Watch(ctx context.Context, dirs []string, rebuild func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := 0
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			log.Debug().Err(err).Str("dir", d).Msg("not watched")
			continue
		}
		watched++
	}
	if watched == 0 {
		return errors.New("no directory to watch")
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			log.Debug().Str("file", evt.Name).Str("op", evt.Op.String()).Msg("change detected")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			if err := rebuild(ctx); err != nil {
				log.Warn().Err(err).Msg("rebuild failed")
			}
		}
	}
}
