package entities

import "time"

// AnnualPlan holds one row per year. The data and bg_images columns
// are serialized JSON documents the store never interprets; validity
// is the caller's concern until read time.
type AnnualPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Year      int       `gorm:"uniqueIndex;not null" json:"year"`
	Data      string    `gorm:"type:json" json:"data"`
	Theme     *string   `gorm:"size:64" json:"theme"`
	BgImages  *string   `gorm:"column:bg_images;type:json" json:"bg_images"`
	CreatedAt time.Time `json:"created_at"`
}
