package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PublicationType distinguishes taxed magazines from untaxed newspapers.
type PublicationType string

const (
	TypeMagazine  PublicationType = "magazine"
	TypeNewspaper PublicationType = "newspaper"
)

// Valid reports whether t is a known publication type.
func (t PublicationType) Valid() bool {
	return t == TypeMagazine || t == TypeNewspaper
}

// Publication is a catalogue entry.  Rating and ReviewCount are derived from
// approved reviews and are only written by review moderation.
type Publication struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"size:255;not null;index" json:"title"`
	Type          PublicationType `gorm:"size:16;not null;index" json:"type"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image         string          `gorm:"size:512" json:"image,omitempty"`
	Category      string          `gorm:"size:128;not null;index" json:"category"`
	City          *string         `gorm:"size:128" json:"city,omitempty"`
	IssuesPerYear *int            `json:"issuesPerYear,omitempty"`
	Rating        float64         `gorm:"not null;default:0" json:"rating"`
	ReviewCount   int             `gorm:"not null;default:0" json:"reviewCount"`
	Featured      bool            `gorm:"not null;default:false" json:"featured"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PublicationSummary is the trimmed projection embedded in admin listings.
type PublicationSummary struct {
	ID    uint64          `json:"id"`
	Title string          `json:"title"`
	Type  PublicationType `json:"type"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Summary returns the trimmed projection of p.
func (p Publication) Summary() PublicationSummary {
	return PublicationSummary{ID: p.ID, Title: p.Title, Type: p.Type, Price: p.Price, Image: p.Image}
}
