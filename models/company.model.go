package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Company struct {
	gorm.Model
	Name          string         `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description   string         `gorm:"size:500" json:"description"`
	Industry      string         `gorm:"default:''" json:"industry"`
	Location      string         `gorm:"default:''" json:"location"`
	Website       string         `gorm:"default:''" json:"website"`
	AverageRating *float64       `json:"averageRating,omitempty"` // derived from reviews, nil when none exist
	ImportedFrom  datatypes.JSON `json:"-"`                       // raw record from the import API, null otherwise
}
