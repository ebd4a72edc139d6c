package reviewRoutes

import (
	reviewControllers "revio/controllers/review"
	"revio/middleware"
	reviewValidators "revio/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(api fiber.Router) {
	reviewGroup := api.Group("/reviews")

	reviewGroup.Get("/", reviewControllers.ListReviews)
	reviewGroup.Get("/:id", reviewControllers.GetReview)
	reviewGroup.Put("/:id", middleware.JWTMiddleware, reviewValidators.Update(), reviewControllers.UpdateReview)
	reviewGroup.Delete("/:id", middleware.JWTMiddleware, reviewControllers.DeleteReview)
}
