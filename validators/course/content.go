package courseValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateModuleRequest is the validated module payload
type CreateModuleRequest struct {
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

// UpdateModuleRequest uses pointers for partial updates
type UpdateModuleRequest struct {
	Title      *string `json:"title"`
	OrderIndex *int    `json:"order_index"`
}

// CreateLessonRequest is the validated lesson payload
type CreateLessonRequest struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	VideoURL    string          `json:"video_url"`
	Duration    int             `json:"duration"`
	IsFree      bool            `json:"is_free"`
	OrderIndex  int             `json:"order_index"`
	Attachments json.RawMessage `json:"attachments"`
}

// UpdateLessonRequest uses pointers for partial updates
type UpdateLessonRequest struct {
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	VideoURL    *string         `json:"video_url"`
	Duration    *int            `json:"duration"`
	IsFree      *bool           `json:"is_free"`
	OrderIndex  *int            `json:"order_index"`
	Attachments json.RawMessage `json:"attachments"`
}

// ModuleID parses the :id route parameter for module routes
func ModuleID() fiber.Handler {
	return paramID("id", "moduleID", "Module id must be a positive integer!")
}

// LessonID parses the :id route parameter for lesson routes
func LessonID() fiber.Handler {
	return paramID("id", "lessonID", "Lesson id must be a positive integer!")
}

func paramID(param, localKey, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				param: message,
			})
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validator middleware
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// CreateLesson validator middleware
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validator middleware
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.Duration != nil && *reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}
