// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Price       float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Features    pq.StringArray `json:"features" gorm:"type:text[]"`
	// Images holds one reference per image: either an inline data URI or a
	// blob-store URL, depending on the configured storage strategy. Index 0
	// is the cover image.
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	Specifications StringMap      `json:"specifications" gorm:"type:jsonb"`
}
