package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// visibleCourses scopes the course collection to what the requester may see:
// admins see everything, instructors see published courses plus their own
// unpublished ones, everyone else sees published courses only.
func visibleCourses(db *gorm.DB, auth middleware.AuthContext) *gorm.DB {
	query := db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	switch {
	case middleware.IsAdmin(auth):
		return query
	case auth.Authenticated() && auth.Role == models.RoleInstructor:
		return query.Where("is_published = ? OR instructor_id = ?", true, auth.UserID)
	default:
		return query.Where("is_published = ?", true)
	}
}

// withContent preloads modules and lessons in display order. Ties between
// equal order indexes resolve by insertion order.
func withContent(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc, id asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc, id asc")
		})
}

// GetAllCourses lists courses visible to the requester, paginated, with
// nested modules and lessons.
func GetAllCourses(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)
	db := database.Database.Db

	page, limit := 1, 10
	if reqData, ok := c.Locals("validatedList").(*courseValidator.PageRequest); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	query := visibleCourses(db, auth)

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := withContent(query).
		Offset(offset).Limit(limit).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a single course with nested content. A course
// outside the requester's visibility scope is a plain 404, not a 403, so the
// response does not leak its existence.
func GetCourseDetails(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	err := withContent(visibleCourses(database.Database.Db, auth)).
		Where("id = ?", courseID).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}
