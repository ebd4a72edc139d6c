package reviewController

import (
	"log"

	"revio/database"
	"revio/middleware"
	"revio/models"
	"revio/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListableColumns are the review columns reachable from filter, select and
// sort query parameters
var ListableColumns = map[string]bool{
	"company_id": true,
	"user_id":    true,
	"rating":     true,
	"created_at": true,
}

// ListReviews serves both the global listing and the nested
// /companies/:companyId/reviews listing
func ListReviews(c *fiber.Ctx) error {
	features := middleware.ParseQuery(c.Queries(), ListableColumns)

	db := database.Database.Db

	base := db.Model(&models.Review{})
	if c.Params("companyId") != "" {
		companyId, err := c.ParamsInt("companyId")
		if err != nil || companyId < 1 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
		}
		var company models.Company
		if err := db.Where("id = ?", companyId).First(&company).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
		}
		base = base.Where("company_id = ?", company.ID)
	}

	var total int64
	if err := features.Filter(base.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count reviews!", nil)
	}

	var reviews []models.Review
	if err := features.Window(base.Session(&gorm.Session{})).Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.ListResponse(c, "Reviews fetched!", total, features.Paginate(total), reviews)
}

// GetReview returns a single review
func GetReview(c *fiber.Ctx) error {
	reviewId, err := c.ParamsInt("id")
	if err != nil || reviewId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	var review models.Review
	if err := database.Database.Db.Where("id = ?", reviewId).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review fetched!", review)
}

// CreateReview lets the authenticated user review a company once
func CreateReview(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	companyId, err := c.ParamsInt("companyId")
	if err != nil || companyId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	reqData := new(struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if company exists
	var company models.Company
	if err := db.Where("id = ?", companyId).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	// Check if user has already reviewed this company
	var existingReview models.Review
	if err := db.Where("company_id = ? AND user_id = ?", company.ID, userId).First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this company!", nil)
	}

	review := models.Review{
		CompanyID: company.ID,
		UserID:    userId,
		Rating:    reqData.Rating,
		Comment:   reqData.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error saving review to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	utils.RecalcCompanyRating(db, company.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// loadOwnedReview fetches the review and enforces the author-or-admin rule.
// Returns a nil review when the response has already been written.
func loadOwnedReview(c *fiber.Ctx) (*models.Review, error) {
	userId := c.Locals("userId").(uint)
	userRole, _ := c.Locals("userRole").(string)
	reviewId, err := c.ParamsInt("id")
	if err != nil || reviewId < 1 {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	var review models.Review
	if err := database.Database.Db.Where("id = ?", reviewId).First(&review).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userId && userRole != models.RoleAdmin {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only modify your own reviews!", nil)
	}

	return &review, nil
}

// UpdateReview modifies rating or comment (author or admin)
func UpdateReview(c *fiber.Ctx) error {
	review, err := loadOwnedReview(c)
	if review == nil {
		return err
	}

	reqData := new(struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Rating != nil {
		if *reqData.Rating < 1 || *reqData.Rating > 5 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		}
		review.Rating = *reqData.Rating
	}
	if reqData.Comment != nil {
		review.Comment = *reqData.Comment
	}

	db := database.Database.Db
	if err := db.Save(review).Error; err != nil {
		log.Printf("Error updating review %d: %v", review.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	utils.RecalcCompanyRating(db, review.CompanyID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}

// DeleteReview removes a review (author or admin). Hard delete so the
// (company,user) unique index lets the author review again later.
func DeleteReview(c *fiber.Ctx) error {
	review, err := loadOwnedReview(c)
	if review == nil {
		return err
	}

	db := database.Database.Db
	if err := db.Unscoped().Delete(review).Error; err != nil {
		log.Printf("Error deleting review %d: %v", review.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	utils.RecalcCompanyRating(db, review.CompanyID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}
