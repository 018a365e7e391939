package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWatchlist(t *testing.T) {
	t.Parallel()

	w, err := ParseWatchlist([]byte(`
symbols:
  - code: btc-usd
    name: Bitcoin
    market: CRYPTO
  - code: AAPL
    active: false
`))
	require.NoError(t, err)
	require.Len(t, w.Symbols, 2)

	assert.Equal(t, "BTC-USD", w.Symbols[0].Code)
	assert.Equal(t, "Bitcoin", w.Symbols[0].Name)
	assert.True(t, w.Symbols[0].IsActive())

	assert.Equal(t, "AAPL", w.Symbols[1].Name, "name defaults to code")
	assert.False(t, w.Symbols[1].IsActive())
}

func TestParseWatchlist_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"malformed", "symbols: [", "parse watchlist"},
		{"empty", "symbols: []", "no symbols"},
		{"missing code", "symbols:\n  - name: x\n", "code is required"},
		{"duplicate", "symbols:\n  - code: aapl\n  - code: AAPL\n", "duplicate code AAPL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseWatchlist([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadWatchlist(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols:\n  - code: ETH-USD\n"), 0o600))

	w, err := LoadWatchlist(path)
	require.NoError(t, err)
	assert.Equal(t, "ETH-USD", w.Symbols[0].Code)

	_, err = LoadWatchlist(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read watchlist")
}
