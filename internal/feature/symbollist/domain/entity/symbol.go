// Package entity defines the watchlist models for the symbollist feature.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// Symbol is one watchlist entry: a ticker the ingest job keeps fresh and the
// dashboard offers for selection.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:32;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:64;not null"`
	IsActive  bool      `gorm:"not null"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Normalize upper-cases the code and fills the display name.
func (s *Symbol) Normalize() error {
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	if s.Code == "" {
		return fmt.Errorf("symbol code is required")
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = s.Code
	}
	s.Market = strings.ToUpper(strings.TrimSpace(s.Market))
	return nil
}
