package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WatchlistEntry is one symbol in the watchlist seed file.
type WatchlistEntry struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Market string `yaml:"market"`
	Active *bool  `yaml:"active"` // omitted means active
}

// IsActive reports whether the entry should be ingested.
func (e WatchlistEntry) IsActive() bool {
	return e.Active == nil || *e.Active
}

// Watchlist is the YAML document:
//
//	symbols:
//	  - code: BTC-USD
//	    name: Bitcoin
//	    market: CRYPTO
type Watchlist struct {
	Symbols []WatchlistEntry `yaml:"symbols"`
}

// LoadWatchlist reads and validates a watchlist file.
func LoadWatchlist(path string) (*Watchlist, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return ParseWatchlist(b)
}

// ParseWatchlist decodes a watchlist document. Codes are upper-cased and must be unique.
func ParseWatchlist(b []byte) (*Watchlist, error) {
	var w Watchlist
	if err := yaml.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	if len(w.Symbols) == 0 {
		return nil, errors.New("watchlist has no symbols")
	}
	seen := make(map[string]struct{}, len(w.Symbols))
	for i := range w.Symbols {
		e := &w.Symbols[i]
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		if e.Code == "" {
			return nil, fmt.Errorf("watchlist entry %d: code is required", i)
		}
		if _, dup := seen[e.Code]; dup {
			return nil, fmt.Errorf("watchlist entry %d: duplicate code %s", i, e.Code)
		}
		seen[e.Code] = struct{}{}
		if e.Name == "" {
			e.Name = e.Code
		}
	}
	return &w, nil
}
