package enrollmentController_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"olc/database"
	"olc/models"
	"olc/testutil"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

type progressResponse struct {
	CourseID         uint                `json:"courseId"`
	CompletedModules []int               `json:"completedModules"`
	Progress         int                 `json:"progress"`
	NextModule       int                 `json:"nextModule"`
	Certificate      *models.Certificate `json:"certificate"`
}

func createCourse(t *testing.T, title string, moduleCount int) models.Course {
	t.Helper()

	modules := make([]models.CourseModule, moduleCount)
	for i := range modules {
		modules[i] = models.CourseModule{
			Title:   fmt.Sprintf("Module %d", i+1),
			Summary: "summary",
			Task:    "task",
		}
	}

	course := models.Course{
		Title:       title,
		Description: "a course used in tests",
		Modules:     modules,
		Status:      true,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

func TestEnrollAndProgressScenario(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "studentx", "x@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "DB Essentials", 3)

	// Enroll
	resp, env := testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var enrollment models.Enrollment
	testutil.DecodeData(t, env, &enrollment)
	assert.Equal(t, 0, enrollment.Progress)
	assert.Empty(t, enrollment.CompletedModules)

	path := fmt.Sprintf("/my-courses/%d/modules", course.ID)

	// Complete module 0
	resp, env = testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 0, "completed": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var progress progressResponse
	testutil.DecodeData(t, env, &progress)
	assert.Equal(t, []int{0}, progress.CompletedModules)
	assert.Equal(t, 33, progress.Progress)
	assert.Equal(t, 1, progress.NextModule)

	// Complete module 2 out of order: boundary stays at module 1
	resp, env = testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 2, "completed": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, env, &progress)
	assert.Equal(t, []int{0, 2}, progress.CompletedModules)
	assert.Equal(t, 67, progress.Progress)
	assert.Equal(t, 1, progress.NextModule)

	// Complete module 1: course done, certificate issued
	resp, env = testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 1, "completed": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, env, &progress)
	assert.Equal(t, []int{0, 1, 2}, progress.CompletedModules)
	assert.Equal(t, 100, progress.Progress)
	assert.Equal(t, 3, progress.NextModule)
	if assert.NotNil(t, progress.Certificate) {
		assert.NotEmpty(t, progress.Certificate.CertificateNumber)
	}

	// Certificate is listed
	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/my-certificates", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var certificates []struct {
		models.Certificate
		CourseTitle string `json:"courseTitle"`
	}
	testutil.DecodeData(t, env, &certificates)
	if assert.Len(t, certificates, 1) {
		assert.Equal(t, "DB Essentials", certificates[0].CourseTitle)
	}
}

func TestEnrollCourseNotFound(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)

	resp, _ := testutil.DoJSON(t, app, http.MethodPost, "/enroll/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnrollDuplicateConflict(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 2)

	resp, _ := testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Mark some progress, then try to enroll again
	testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/my-courses/%d/modules", course.ID), token,
		map[string]interface{}{"moduleIndex": 0, "completed": true})

	resp, _ = testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Original enrollment is untouched
	var enrollment models.Enrollment
	err := database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error
	assert.NoError(t, err)
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, []int{0}, []int(enrollment.CompletedModules))
}

func TestEnrollStorageFailure(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 2)

	// A broken storage layer is not a duplicate enrollment
	if err := database.Database.Db.Migrator().DropTable(&models.Enrollment{}); err != nil {
		t.Fatalf("failed to drop enrollments table: %v", err)
	}

	resp, env := testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEqual(t, "Already enrolled!", env.Message)
}

func TestModuleToggleIdempotent(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 3)
	path := fmt.Sprintf("/my-courses/%d/modules", course.ID)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)

	body := map[string]interface{}{"moduleIndex": 1, "completed": true}
	_, env := testutil.DoJSON(t, app, http.MethodPut, path, token, body)
	var first progressResponse
	testutil.DecodeData(t, env, &first)

	_, env = testutil.DoJSON(t, app, http.MethodPut, path, token, body)
	var second progressResponse
	testutil.DecodeData(t, env, &second)

	assert.Equal(t, first.CompletedModules, second.CompletedModules)
	assert.Equal(t, first.Progress, second.Progress)
}

func TestModuleToggleRoundTrip(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 3)
	path := fmt.Sprintf("/my-courses/%d/modules", course.ID)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)
	_, env := testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 0, "completed": true})
	var before progressResponse
	testutil.DecodeData(t, env, &before)

	testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 2, "completed": true})
	_, env = testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 2, "completed": false})
	var after progressResponse
	testutil.DecodeData(t, env, &after)

	assert.Equal(t, before.CompletedModules, after.CompletedModules)
	assert.Equal(t, before.Progress, after.Progress)
}

func TestModuleIndexBoundary(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 3)
	path := fmt.Sprintf("/my-courses/%d/modules", course.ID)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)
	testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 0, "completed": true})

	// Index equal to the module count
	resp, _ := testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": 3, "completed": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Negative index
	resp, _ = testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]interface{}{"moduleIndex": -1, "completed": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Enrollment unmodified by the rejected requests
	var enrollment models.Enrollment
	database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment)
	assert.Equal(t, []int{0}, []int(enrollment.CompletedModules))
	assert.Equal(t, 33, enrollment.Progress)
}

func TestModuleToggleCourseWithoutModules(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Empty Course", 0)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)

	resp, env := testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/my-courses/%d/modules", course.ID), token,
		map[string]interface{}{"moduleIndex": 0, "completed": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Course has no modules!", env.Message)
}

func TestModuleToggleWithoutEnrollment(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 3)

	resp, _ := testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/my-courses/%d/modules", course.ID), token,
		map[string]interface{}{"moduleIndex": 0, "completed": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestModuleToggleUnauthenticated(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	course := createCourse(t, "Go Basics", 3)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)

	resp, _ := testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/my-courses/%d/modules", course.ID), "",
		map[string]interface{}{"moduleIndex": 0, "completed": true})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// No mutation happened
	var enrollment models.Enrollment
	database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment)
	assert.Equal(t, 0, enrollment.Progress)
	assert.Empty(t, []int(enrollment.CompletedModules))
}

func TestMyCoursesOrderingAndCascade(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	admin := testutil.CreateUser(t, "boss", "boss@test.test", "secret1", models.RoleAdmin)
	adminToken := testutil.TokenFor(t, admin)

	first := createCourse(t, "First Course", 2)
	second := createCourse(t, "Second Course", 2)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", first.ID), token, nil)
	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", second.ID), token, nil)

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/my-courses", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var enrollments []models.Enrollment
	testutil.DecodeData(t, env, &enrollments)
	assert.Len(t, enrollments, 2)

	// Delete the first course as admin; its enrollment must cascade away
	resp, _ = testutil.DoJSON(t, app, http.MethodDelete, fmt.Sprintf("/resource/%d", first.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/my-courses", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, env, &enrollments)
	if assert.Len(t, enrollments, 1) {
		assert.Equal(t, second.ID, enrollments[0].CourseID)
		assert.Equal(t, "Second Course", enrollments[0].Course.Title)
	}
}

func TestMyCertificatesJoinsCourseTitles(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)
	other := testutil.CreateUser(t, "someone", "o@test.test", "secret1", models.RoleUser)

	first := createCourse(t, "First Course", 1)
	second := createCourse(t, "Second Course", 1)

	older := models.Certificate{UserID: user.ID, CourseID: first.ID, CertificateNumber: "cert-older", IssuedAt: time.Now().Add(-time.Hour)}
	newer := models.Certificate{UserID: user.ID, CourseID: second.ID, CertificateNumber: "cert-newer", IssuedAt: time.Now()}
	foreign := models.Certificate{UserID: other.ID, CourseID: first.ID, CertificateNumber: "cert-foreign", IssuedAt: time.Now()}
	for _, certificate := range []models.Certificate{older, newer, foreign} {
		if err := database.Database.Db.Create(&certificate).Error; err != nil {
			t.Fatalf("failed to create certificate: %v", err)
		}
	}

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/my-certificates", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var certificates []struct {
		models.Certificate
		CourseTitle string `json:"courseTitle"`
	}
	testutil.DecodeData(t, env, &certificates)
	if assert.Len(t, certificates, 2) {
		assert.Equal(t, "cert-newer", certificates[0].CertificateNumber)
		assert.Equal(t, "Second Course", certificates[0].CourseTitle)
		assert.Equal(t, "cert-older", certificates[1].CertificateNumber)
		assert.Equal(t, "First Course", certificates[1].CourseTitle)
	}
}

func TestMyCertificatesEmpty(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/my-certificates", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var certificates []struct {
		models.Certificate
		CourseTitle string `json:"courseTitle"`
	}
	testutil.DecodeData(t, env, &certificates)
	assert.NotNil(t, certificates)
	assert.Empty(t, certificates)
}

func TestConcurrentTogglesLoseNoUpdate(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)
	token := testutil.TokenFor(t, user)

	const moduleCount = 8
	course := createCourse(t, "Concurrent Course", moduleCount)
	path := fmt.Sprintf("/my-courses/%d/modules", course.ID)

	testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/enroll/%d", course.ID), token, nil)

	var wg sync.WaitGroup
	for i := 0; i < moduleCount; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			testutil.DoJSON(t, app, http.MethodPut, path, token,
				map[string]interface{}{"moduleIndex": index, "completed": true})
		}(i)
	}
	wg.Wait()

	var enrollment models.Enrollment
	database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment)

	want := make([]int, moduleCount)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, datatypes.NewJSONSlice(want), enrollment.CompletedModules)
	assert.Equal(t, 100, enrollment.Progress)
}
