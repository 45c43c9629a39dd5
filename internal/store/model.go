package store

import "time"

// Conversion is a cached module generated from one source document.
type Conversion struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"size:36"`
	Digest    string    `json:"digest" gorm:"size:64;uniqueIndex"`
	Format    string    `json:"format" gorm:"size:16"`
	Module    string    `json:"module" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Conversion) TableName() string {
	return "conversions"
}
