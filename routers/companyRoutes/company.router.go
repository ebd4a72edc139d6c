package companyRoutes

import (
	companyControllers "revio/controllers/company"
	reviewControllers "revio/controllers/review"
	"revio/middleware"
	"revio/models"
	companyValidators "revio/validators/company"
	reviewValidators "revio/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupCompanyRoutes(api fiber.Router) {
	companyGroup := api.Group("/companies")

	companyGroup.Get("/", companyControllers.ListCompanies)
	companyGroup.Get("/:id", companyControllers.GetCompany)
	companyGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), companyValidators.Create(), companyControllers.CreateCompany)
	companyGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), companyValidators.Update(), companyControllers.UpdateCompany)
	companyGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), companyControllers.DeleteCompany)

	// Nested review routes
	companyGroup.Get("/:companyId/reviews", reviewControllers.ListReviews)
	companyGroup.Post("/:companyId/reviews", middleware.JWTMiddleware, reviewValidators.Create(), reviewControllers.CreateReview)
}
