package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	CompanyID uint   `gorm:"not null;uniqueIndex:idx_reviews_company_user" json:"companyId"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_company_user" json:"userId"` // Who gave the review
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`    // 1–5 rating
	Comment   string `gorm:"type:text;default:''" json:"comment"`                         // Optional comment
}
