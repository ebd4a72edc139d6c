package utils

import (
	"log"

	"revio/models"

	"gorm.io/gorm"
)

type ratingAggregate struct {
	Count   int64
	Average float64
}

// RecalcCompanyRating recomputes a company's denormalized average rating from
// its live reviews. Zero reviews clears the field. The value is a derived
// cache: concurrent recomputes race and the last writer wins.
func RecalcCompanyRating(db *gorm.DB, companyID uint) {
	var agg ratingAggregate
	err := db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("company_id = ?", companyID).
		Scan(&agg).Error
	if err != nil {
		log.Printf("Error aggregating ratings for company %d: %v", companyID, err)
		return
	}

	var value *float64
	if agg.Count > 0 {
		value = &agg.Average
	}

	// Never fail the review operation that triggered the recompute
	if err := db.Model(&models.Company{}).
		Where("id = ?", companyID).
		Update("average_rating", value).Error; err != nil {
		log.Printf("Error updating average rating for company %d: %v", companyID, err)
	}
}
