package site

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServer(t *testing.T) {
	srv := NewServer("", writeSite(t, testSite, PreviewLinks))
	if got := srv.Addr(); got != DefaultAddr {
		t.Errorf("Addr() = %q, want %q", got, DefaultAddr)
	}

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, `href="/stock.html?symbol=COALINDIA.NS"`},
		{"/stock.html?slug=coal-india", http.StatusOK, "<h1>Investment thesis</h1>"},
		{"/stock.html?slug=coal-india", http.StatusOK, `src="/charts/price.html?symbol=COALINDIA.NS"`},
		{"/stock.html?symbol=AAPL&slug=coal-india", http.StatusOK, NoteReportMissing},
		{"/stock.html?slug=nope", http.StatusNotFound, "Report not found for slug=nope."},
		{"/stock.html", http.StatusNotFound, "No stock requested"},
		{"/charts/nav.html", http.StatusOK, "Portfolio NAV (USD)"},
		{"/charts/price.html?slug=coal-india", http.StatusOK, "Buy price"},
		{"/charts/price.html?symbol=AAPL", http.StatusNotFound, NotePriceFailed},
		{"/charts/price.html?slug=nope", http.StatusNotFound, "no stock matches slug=nope"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.status {
			t.Errorf("GET %s status = %d, want %d", tc.path, rec.Code, tc.status)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Errorf("GET %s body does not contain %q:\n%s", tc.path, tc.want, rec.Body.String())
		}
	}
}
