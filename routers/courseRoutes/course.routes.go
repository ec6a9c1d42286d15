package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the catalog. Reads resolve identity but allow
// anonymous access; writes require the instructor or admin role, with
// ownership enforced in the controllers.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses", middleware.ResolveAuth)

	courseGroup.Get("/", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	courseGroup.Post("/", middleware.RequireInstructorOrAdmin, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.RequireInstructorOrAdmin, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.RequireInstructorOrAdmin, validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Post("/:id/image", middleware.RequireInstructorOrAdmin, validators.CourseID(), controllers.UploadCourseImage)

	courseGroup.Post("/:id/enroll", middleware.RequireAuth, validators.CourseID(), controllers.EnrollInCourse)

	courseGroup.Post("/:id/modules", middleware.RequireInstructorOrAdmin, validators.CourseID(), validators.CreateModule(), controllers.CreateModule)

	moduleGroup := app.Group("/modules", middleware.ResolveAuth, middleware.RequireInstructorOrAdmin)
	moduleGroup.Put("/:id", validators.ModuleID(), validators.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:id", validators.ModuleID(), controllers.DeleteModule)
	moduleGroup.Post("/:id/lessons", validators.ModuleID(), validators.CreateLesson(), controllers.CreateLesson)

	lessonGroup := app.Group("/lessons", middleware.ResolveAuth, middleware.RequireInstructorOrAdmin)
	lessonGroup.Put("/:id", validators.LessonID(), validators.UpdateLesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:id", validators.LessonID(), controllers.DeleteLesson)
}
