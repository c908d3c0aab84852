package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/source"
	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/rs/zerolog/log"
)

// DefaultAddr is the preview server address when none is configured.
const DefaultAddr = "localhost:8080"

// Server is the preview server: it assembles the pages from the source on
// every request, so that data changes show on reload.
type Server struct {
	addr   string
	site   *Site
	router *gin.Engine
}

// NewServer returns a preview server of s listening on addr.
func NewServer(addr string, s *Site) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	srv := &Server{addr: addr, site: s, router: router}
	router.GET("/", srv.handleIndex)
	router.GET("/index.html", srv.handleIndex)
	router.GET("/stock.html", srv.handleStock)
	router.GET("/charts/nav.html", srv.handleNAVChart)
	router.GET("/charts/price.html", srv.handlePriceChart)
	return srv
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listening address.
func (s *Server) Addr() string { return s.addr }

// Start serves until ctx is done or the server fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	home := s.site.Home(c.Request.Context())
	s.html(c, http.StatusOK, func(b *bytes.Buffer) error { return renderer.WriteIndexPage(b, home.Page) })
}

func (s *Server) handleStock(c *gin.Context) {
	key := folio.ParseKey(c.Request.URL.Query())
	st, err := s.site.Stock(c.Request.Context(), key)
	if err != nil {
		status := http.StatusNotFound
		if !errors.Is(err, ErrTargetNotFound) {
			log.Warn().Err(err).Msg("cannot load the portfolio")
			status = http.StatusBadGateway
		}
		page := s.site.NotFound(key, err)
		s.html(c, status, func(b *bytes.Buffer) error { return renderer.WriteStockPage(b, page) })
		return
	}
	s.html(c, http.StatusOK, func(b *bytes.Buffer) error { return renderer.WriteStockPage(b, st.Page) })
}

func (s *Server) handleNAVChart(c *gin.Context) {
	navChart, _, err := s.site.Loader.NAV(c.Request.Context())
	var fetchErr *source.FetchError
	switch {
	case errors.As(err, &fetchErr):
		c.String(http.StatusBadGateway, NoteNAVFailed)
		return
	case err != nil:
		c.String(http.StatusNotFound, NoteNAVMissing)
		return
	}
	s.chart(c, renderer.NAVChart(navChart))
}

func (s *Server) handlePriceChart(c *gin.Context) {
	ctx := c.Request.Context()
	key := folio.ParseKey(c.Request.URL.Query())
	p, err := s.site.Loader.Portfolio(ctx)
	if err != nil {
		c.String(http.StatusBadGateway, NotePortfolioFailed)
		return
	}
	t, ok := p.Resolve(key)
	if !ok {
		c.String(http.StatusNotFound, "no stock matches %s", key)
		return
	}
	q, err := s.site.Loader.Quotes(ctx, t)
	if err != nil {
		log.Debug().Err(err).Str("symbol", t.Symbol).Msg("no price chart")
		c.String(http.StatusNotFound, NotePriceFailed)
		return
	}
	s.chart(c, renderer.PriceChart(t.Meta.Label(), q, t.Holding().BuyPrice))
}

func (s *Server) chart(c *gin.Context, line *charts.Line) {
	s.html(c, http.StatusOK, func(b *bytes.Buffer) error { return renderer.WriteChart(b, line) })
}

// html renders the page in memory first, so that a rendering error is still
// reported with a proper status.
func (s *Server) html(c *gin.Context, status int, render func(*bytes.Buffer) error) {
	var b bytes.Buffer
	if err := render(&b); err != nil {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("rendering failed")
		c.String(http.StatusInternalServerError, "rendering failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", b.Bytes())
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.RequestURI()).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http request")
	}
}
