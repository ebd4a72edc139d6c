package companyValidator

import (
	"strings"

	"revio/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type companyPayload struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
	Industry    string `json:"industry" validate:"max=100"`
	Location    string `json:"location" validate:"max=100"`
	Website     string `json:"website" validate:"omitempty,url"`
}

var companyMessages = map[string]string{
	"name":        "Name is required and can not be more than 50 characters!",
	"description": "Description can not be more than 500 characters!",
	"industry":    "Industry can not be more than 100 characters!",
	"location":    "Location can not be more than 100 characters!",
	"website":     "Website must be a valid URL!",
}

func companyErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			if msg, ok := companyMessages[field]; ok {
				errors[field] = msg
			} else {
				errors[field] = "Invalid value!"
			}
		}
	}
	return errors
}

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(companyPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, companyErrors(err))
		}

		return c.Next()
	}
}

// Update validator middleware; every field is optional but bounded
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
			Description *string `json:"description" validate:"omitempty,max=500"`
			Industry    *string `json:"industry" validate:"omitempty,max=100"`
			Location    *string `json:"location" validate:"omitempty,max=100"`
			Website     *string `json:"website" validate:"omitempty,url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, companyErrors(err))
		}

		return c.Next()
	}
}
