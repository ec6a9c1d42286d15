package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollOnceOnly(t *testing.T) {
	app := setupApp(t)

	instructor := createUser(t, "instructor", models.RoleInstructor)
	student := createUser(t, "student", models.RoleStudent)
	courseID := createCourse(t, app, bearer(t, instructor), "Popular Course", true)

	enrollURL := fmt.Sprintf("/courses/%d/enroll", courseID)
	auth := bearer(t, student)

	resp, err := app.Test(jsonReq("POST", enrollURL, auth, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Enrolling the same (user, course) pair twice violates uniqueness
	resp, err = app.Test(jsonReq("POST", enrollURL, auth, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", student.ID, courseID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollRequiresAuthentication(t *testing.T) {
	app := setupApp(t)

	instructor := createUser(t, "instructor", models.RoleInstructor)
	courseID := createCourse(t, app, bearer(t, instructor), "Open Course", true)

	resp, err := app.Test(jsonReq("POST", fmt.Sprintf("/courses/%d/enroll", courseID), "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestEnrollUnpublishedCourseIsNotFound(t *testing.T) {
	app := setupApp(t)

	instructor := createUser(t, "instructor", models.RoleInstructor)
	student := createUser(t, "student", models.RoleStudent)
	courseID := createCourse(t, app, bearer(t, instructor), "Hidden Course", false)

	resp, err := app.Test(jsonReq("POST", fmt.Sprintf("/courses/%d/enroll", courseID),
		bearer(t, student), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMyEnrollmentsListsCourse(t *testing.T) {
	app := setupApp(t)

	instructor := createUser(t, "instructor", models.RoleInstructor)
	student := createUser(t, "student", models.RoleStudent)
	courseID := createCourse(t, app, bearer(t, instructor), "Joined Course", true)

	auth := bearer(t, student)
	resp, err := app.Test(jsonReq("POST", fmt.Sprintf("/courses/%d/enroll", courseID), auth, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonReq("GET", "/users/me/enrollments", auth, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	enrollments := data["enrollments"].([]interface{})
	require.Len(t, enrollments, 1)

	course := enrollments[0].(map[string]interface{})["course"].(map[string]interface{})
	assert.Equal(t, "Joined Course", course["title"])
}

func TestDeleteCourseRemovesEnrollments(t *testing.T) {
	app := setupApp(t)

	instructor := createUser(t, "instructor", models.RoleInstructor)
	student := createUser(t, "student", models.RoleStudent)
	courseID := createCourse(t, app, bearer(t, instructor), "Doomed Course", true)

	resp, err := app.Test(jsonReq("POST", fmt.Sprintf("/courses/%d/enroll", courseID),
		bearer(t, student), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonReq("DELETE", fmt.Sprintf("/courses/%d", courseID),
		bearer(t, instructor), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Gone from every list, and the enrollment went with it
	assert.Empty(t, listCourseTitles(t, app, bearer(t, instructor)))

	var count int64
	database.Database.Db.Unscoped().Model(&courseModels.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count)
	assert.Equal(t, int64(0), count)
}
