package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the authenticated user in a visible, published
// course. The (user, course) pair is unique: enrolling twice is a conflict.
func EnrollInCourse(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course courseModels.Course
	if err := visibleCourses(db, auth).
		Where("id = ? AND is_published = ?", courseID, true).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", auth.UserID, courseID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:     auth.UserID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		// The unique index backs up the pre-check under concurrent enrolls
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetUserEnrollments lists the authenticated user's enrollments with the
// course preloaded
func GetUserEnrollments(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ?", auth.UserID).
		Preload("Course").
		Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
