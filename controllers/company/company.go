package companyController

import (
	"log"

	"revio/database"
	"revio/middleware"
	"revio/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListableColumns are the company columns reachable from filter, select and
// sort query parameters
var ListableColumns = map[string]bool{
	"name":           true,
	"description":    true,
	"industry":       true,
	"location":       true,
	"website":        true,
	"average_rating": true,
	"created_at":     true,
}

// ListCompanies returns a filtered, sorted and paginated company page
func ListCompanies(c *fiber.Ctx) error {
	features := middleware.ParseQuery(c.Queries(), ListableColumns)

	db := database.Database.Db

	var total int64
	if err := features.Filter(db.Model(&models.Company{})).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count companies!", nil)
	}

	var companies []models.Company
	if err := features.Window(db.Model(&models.Company{})).Find(&companies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch companies!", nil)
	}

	return middleware.ListResponse(c, "Companies fetched!", total, features.Paginate(total), companies)
}

// GetCompany returns one company together with its reviews. Reviews are never
// stored on the company; they resolve through an explicit query here.
func GetCompany(c *fiber.Ctx) error {
	companyId, err := c.ParamsInt("id")
	if err != nil || companyId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	db := database.Database.Db

	var company models.Company
	if err := db.Where("id = ?", companyId).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	var reviews []models.Review
	if err := db.Where("company_id = ?", company.ID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company fetched!", fiber.Map{
		"company": company,
		"reviews": reviews,
	})
}

// CreateCompany adds a company (admin only, enforced by the route)
func CreateCompany(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Industry    string `json:"industry"`
		Location    string `json:"location"`
		Website     string `json:"website"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if name already exists
	if err := db.Where("name = ?", reqData.Name).First(&models.Company{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Company name is already taken!", nil)
	}

	company := models.Company{
		Name:        reqData.Name,
		Description: reqData.Description,
		Industry:    reqData.Industry,
		Location:    reqData.Location,
		Website:     reqData.Website,
	}

	if err := db.Create(&company).Error; err != nil {
		log.Printf("Error saving company to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Company created successfully!", company)
}

// UpdateCompany modifies company attributes (admin only)
func UpdateCompany(c *fiber.Ctx) error {
	companyId, err := c.ParamsInt("id")
	if err != nil || companyId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	reqData := new(struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Industry    *string `json:"industry"`
		Location    *string `json:"location"`
		Website     *string `json:"website"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var company models.Company
	if err := db.Where("id = ?", companyId).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	if reqData.Name != nil && *reqData.Name != company.Name {
		// New name must stay unique
		if err := db.Where("name = ? AND id <> ?", *reqData.Name, company.ID).First(&models.Company{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Company name is already taken!", nil)
		}
		company.Name = *reqData.Name
	}
	if reqData.Description != nil {
		company.Description = *reqData.Description
	}
	if reqData.Industry != nil {
		company.Industry = *reqData.Industry
	}
	if reqData.Location != nil {
		company.Location = *reqData.Location
	}
	if reqData.Website != nil {
		company.Website = *reqData.Website
	}

	if err := db.Save(&company).Error; err != nil {
		log.Printf("Error updating company %d: %v", company.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company updated successfully!", company)
}

// DeleteCompany removes a company and cascades to its reviews. Deletes are
// hard so the unique name and (company,user) review indexes free up.
func DeleteCompany(c *fiber.Ctx) error {
	companyId, err := c.ParamsInt("id")
	if err != nil || companyId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	db := database.Database.Db

	var company models.Company
	if err := db.Where("id = ?", companyId).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("company_id = ?", company.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&company).Error
	})
	if err != nil {
		log.Printf("Error deleting company %d: %v", company.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company deleted successfully!", nil)
}
