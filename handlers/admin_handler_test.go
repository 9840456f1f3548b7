package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestApplication(t *testing.T, db *gorm.DB, userID uuid.UUID) models.MentorApplication {
	t.Helper()
	application := models.MentorApplication{
		UserID: userID,
		Responses: map[string]string{
			"headline":  "Staff engineer at Example Corp",
			"bio":       "A decade of backend work.",
			"expertise": "go, distributed systems, mentoring",
		},
		Status: models.ApplicationPending,
	}
	require.NoError(t, db.Create(&application).Error)
	return application
}

func TestSubmitApplication(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user := createTestUser(t, db, "Mina Mentor", "mina@example.com", "student")
	token := authToken(t, user.ID, "student")

	resp, body := doJSON(t, app, "POST", "/api/v1/mentor-applications", token, map[string]interface{}{
		"responses": map[string]string{"headline": "Engineer", "bio": "bio", "expertise": "go"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.ApplicationPending, body["status"])

	// A second application while the first is pending is rejected.
	resp, body = doJSON(t, app, "POST", "/api/v1/mentor-applications", token, map[string]interface{}{
		"responses": map[string]string{"headline": "Engineer again"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "pending application")

	resp, body = doJSON(t, app, "GET", "/api/v1/mentor-applications/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, user.ID.String(), body["user_id"])
}

func TestApproveApplication(t *testing.T) {
	db := setupTestDB(t)
	fakeEmbeddingOracle(t, []float64{0.5, 0.5, 0})
	app := newTestApp()

	admin := createTestUser(t, db, "Ada Admin", "admin@example.com", "admin")
	applicant := createTestUser(t, db, "Mina Mentor", "mina@example.com", "student")
	application := createTestApplication(t, db, applicant.ID)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/applications/"+application.ID.String(),
		authToken(t, admin.ID, "admin"), map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mentor models.Mentor
	require.NoError(t, db.First(&mentor, "user_id = ?", applicant.ID).Error)
	assert.Equal(t, "active", mentor.Status)
	assert.Equal(t, []float64{0.5, 0.5, 0}, mentor.Embedding)
	assert.Equal(t, []string{"go", "distributed systems", "mentoring"}, mentor.Expertise)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", applicant.ID).Error)
	assert.Equal(t, "mentor", user.Role)

	var updated models.MentorApplication
	require.NoError(t, db.First(&updated, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationApproved, updated.Status)

	assert.Equal(t, int64(1), countNotifications(t, db, applicant.ID, models.NotifyMentorApproved))

	// Re-processing a resolved application is refused.
	resp, _ = doJSON(t, app, "PUT", "/api/v1/admin/applications/"+application.ID.String(),
		authToken(t, admin.ID, "admin"), map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestApproveApplicationEmbeddingFailureIsRetryable(t *testing.T) {
	db := setupTestDB(t)
	brokenEmbeddingOracle(t)
	app := newTestApp()

	admin := createTestUser(t, db, "Ada Admin", "admin@example.com", "admin")
	applicant := createTestUser(t, db, "Mina Mentor", "mina@example.com", "student")
	application := createTestApplication(t, db, applicant.ID)
	adminToken := authToken(t, admin.ID, "admin")

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/applications/"+application.ID.String(),
		adminToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// The profile upsert happened but nothing was committed: the applicant is
	// still a student, the application still pending, the mentor unmatchable.
	var mentor models.Mentor
	require.NoError(t, db.First(&mentor, "user_id = ?", applicant.ID).Error)
	assert.Empty(t, mentor.Embedding)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", applicant.ID).Error)
	assert.Equal(t, "student", user.Role)

	var updated models.MentorApplication
	require.NoError(t, db.First(&updated, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationPending, updated.Status)

	// Once the oracle recovers, approving again completes the saga.
	fakeEmbeddingOracle(t, []float64{1, 0, 0})
	resp, _ = doJSON(t, app, "PUT", "/api/v1/admin/applications/"+application.ID.String(),
		adminToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&updated, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
}

func TestDismissApplication(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	admin := createTestUser(t, db, "Ada Admin", "admin@example.com", "admin")
	applicant := createTestUser(t, db, "Mina Mentor", "mina@example.com", "student")
	application := createTestApplication(t, db, applicant.ID)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/applications/"+application.ID.String(),
		authToken(t, admin.ID, "admin"), map[string]string{"status": "dismissed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.MentorApplication
	require.NoError(t, db.First(&updated, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationDismissed, updated.Status)

	// No mentor profile, role unchanged.
	var mentorCount int64
	db.Model(&models.Mentor{}).Where("user_id = ?", applicant.ID).Count(&mentorCount)
	assert.Equal(t, int64(0), mentorCount)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", applicant.ID).Error)
	assert.Equal(t, "student", user.Role)

	assert.Equal(t, int64(1), countNotifications(t, db, applicant.ID, models.NotifyMentorDismissed))
}

func TestToggleUserStatus(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	admin := createTestUser(t, db, "Ada Admin", "admin@example.com", "admin")
	user := createTestUser(t, db, "Sam Student", "sam@example.com", "student")
	adminToken := authToken(t, admin.ID, "admin")

	resp, body := doJSON(t, app, "PUT", "/api/v1/admin/users/"+user.ID.String()+"/status", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_active"])

	resp, body = doJSON(t, app, "PUT", "/api/v1/admin/users/"+user.ID.String()+"/status", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_active"])

	resp, _ = doJSON(t, app, "PUT", "/api/v1/admin/users/"+uuid.NewString()+"/status", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSplitExpertise(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, splitExpertise("go, sql"))
	assert.Equal(t, []string{"go"}, splitExpertise(" go ,, "))
	assert.Nil(t, splitExpertise(""))
}
