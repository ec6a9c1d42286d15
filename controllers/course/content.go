package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// loadManagedModule fetches a module and applies the parent course's
// ownership rule. Returns nil after writing the error response.
func loadManagedModule(c *fiber.Ctx, moduleID uint) *courseModels.Module {
	auth := middleware.GetAuth(c)
	db := database.Database.Db

	var module courseModels.Module
	if err := db.First(&module, moduleID).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		return nil
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		return nil
	}

	if !canManageCourse(auth, &course) {
		middleware.DetailResponse(c, fiber.StatusForbidden, "You do not own this course.")
		return nil
	}

	return &module
}

// CreateModule adds a module to an owned course
func CreateModule(c *fiber.Ctx) error {
	course := loadManagedCourse(c)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedModule").(*courseValidator.CreateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := courseModels.Module{
		CourseID:   course.ID,
		Title:      reqData.Title,
		OrderIndex: reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule updates the provided fields of a module
func UpdateModule(c *fiber.Ctx) error {
	module := loadManagedModule(c, c.Locals("moduleID").(uint))
	if module == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.UpdateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.OrderIndex != nil {
		module.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule removes a module and its lessons
func DeleteModule(c *fiber.Ctx) error {
	module := loadManagedModule(c, c.Locals("moduleID").(uint))
	if module == nil {
		return nil
	}

	tx := database.Database.Db.Begin()

	if err := tx.Unscoped().Where("module_id = ?", module.ID).
		Delete(&courseModels.Lesson{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if err := tx.Unscoped().Delete(module).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// CreateLesson adds a lesson to a module of an owned course
func CreateLesson(c *fiber.Ctx) error {
	module := loadManagedModule(c, c.Locals("moduleID").(uint))
	if module == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := courseModels.Lesson{
		ModuleID:   module.ID,
		Title:      reqData.Title,
		Content:    reqData.Content,
		VideoURL:   reqData.VideoURL,
		Duration:   reqData.Duration,
		IsFree:     reqData.IsFree,
		OrderIndex: reqData.OrderIndex,
	}
	if len(reqData.Attachments) > 0 {
		lesson.Attachments = datatypes.JSON(reqData.Attachments)
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// loadManagedLesson fetches a lesson and applies the parent course's
// ownership rule through the module chain.
func loadManagedLesson(c *fiber.Ctx, lessonID uint) *courseModels.Lesson {
	var lesson courseModels.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		return nil
	}

	if loadManagedModule(c, lesson.ModuleID) == nil {
		return nil
	}

	return &lesson
}

// UpdateLesson updates the provided fields of a lesson
func UpdateLesson(c *fiber.Ctx) error {
	lesson := loadManagedLesson(c, c.Locals("lessonID").(uint))
	if lesson == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.Content != nil {
		lesson.Content = *reqData.Content
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.Duration != nil {
		lesson.Duration = *reqData.Duration
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}
	if len(reqData.Attachments) > 0 {
		lesson.Attachments = datatypes.JSON(reqData.Attachments)
	}

	if err := database.Database.Db.Save(lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a single lesson
func DeleteLesson(c *fiber.Ctx) error {
	lesson := loadManagedLesson(c, c.Locals("lessonID").(uint))
	if lesson == nil {
		return nil
	}

	if err := database.Database.Db.Unscoped().Delete(lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
