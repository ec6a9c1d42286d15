package controllers

import (
	"log"
	"strings"

	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// canManageCourse closes the ownership gap on the write path: an instructor
// may only touch their own courses, only admins may touch any course.
func canManageCourse(auth middleware.AuthContext, course *courseModels.Course) bool {
	return middleware.IsAdmin(auth) || course.InstructorID == auth.UserID
}

// loadManagedCourse fetches the course and enforces the ownership rule.
// Returns a nil course after writing the error response.
func loadManagedCourse(c *fiber.Ctx) *courseModels.Course {
	auth := middleware.GetAuth(c)
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil
	}

	if !canManageCourse(auth, &course) {
		middleware.DetailResponse(c, fiber.StatusForbidden, "You do not own this course.")
		return nil
	}

	return &course
}

// CreateCourse creates a course owned by the acting identity. The client
// cannot create a course on behalf of another instructor.
func CreateCourse(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)
	db := database.Database.Db

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug := strings.TrimSpace(reqData.Slug)
	if slug == "" {
		slug = utils.Slugify(reqData.Title)
	} else {
		slug = utils.Slugify(slug)
	}
	slug = utils.UniqueSlug(db, "courses", slug)

	course := courseModels.Course{
		Title:        reqData.Title,
		Slug:         slug,
		Description:  reqData.Description,
		Price:        reqData.Price,
		InstructorID: auth.UserID,
		IsPublished:  reqData.IsPublished,
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates the provided fields of an owned course
func UpdateCourse(c *fiber.Ctx) error {
	course := loadManagedCourse(c)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Slug != nil {
		slug := utils.Slugify(*reqData.Slug)
		if slug != course.Slug {
			course.Slug = utils.UniqueSlug(db, "courses", slug)
		}
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.IsPublished != nil {
		course.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(course).Error; err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft deletes an owned course and removes its enrollments in
// the same transaction.
func DeleteCourse(c *fiber.Ctx) error {
	course := loadManagedCourse(c)
	if course == nil {
		return nil
	}

	db := database.Database.Db
	tx := db.Begin()

	course.IsDeleted = true
	if err := tx.Save(course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := tx.Unscoped().Where("course_id = ?", course.ID).
		Delete(&courseModels.Enrollment{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// UploadCourseImage stores a new image for an owned course
func UploadCourseImage(c *fiber.Ctx) error {
	course := loadManagedCourse(c)
	if course == nil {
		return nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"image": "Image file is required!",
		})
	}

	path, err := utils.SaveCourseImage(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving course image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	course.Image = utils.GetFileURL(path)
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course image updated successfully!", course)
}
