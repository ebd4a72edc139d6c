package reviewValidator

import (
	"revio/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  int    `json:"rating" validate:"required,min=1,max=5"`
			Comment string `json:"comment" validate:"max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Rating":
					errors["rating"] = "Rating must be between 1 and 5!"
				case "Comment":
					errors["comment"] = "Comment can not be more than 2000 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Update validator middleware; fields optional, same bounds
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
			Comment *string `json:"comment" validate:"omitempty,max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Rating":
					errors["rating"] = "Rating must be between 1 and 5!"
				case "Comment":
					errors["comment"] = "Comment can not be more than 2000 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
