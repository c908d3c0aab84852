package source

import (
	"os"
	"path/filepath"
	"testing"
)

// writeDir writes files in a temporary directory and returns it as a source.
func writeDir(t *testing.T, files map[string]string) Dir {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		file := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return Dir(root)
}

const (
	coalStocks    = `[{"symbol":"COALINDIA.NS","name":"Coal India","buy_date":"2023-06-01","qty":10,"buy_price":150}]`
	coalPositions = `[{"symbol":"COALINDIA.NS","buy_date":"2023-06-02","qty":12,"buy_price_local":148,"cost_local":1776}]`
)
