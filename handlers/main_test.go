package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/middleware"
	"github.com/mentorbridge/mentor_bridge/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Mentor{},
		&models.MentorApplication{},
		&models.MentorshipRequest{},
		&models.Session{},
		&models.SessionReport{},
		&models.Notification{},
	))

	database.DB = db
	return db
}

func newTestApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", RegisterUser)
	auth.Post("/login", LoginUser)
	auth.Get("/me", middleware.Protected(), GetMe)

	api.Post("/match-mentors", middleware.Protected(), MatchMentors)
	api.Get("/requests/me", middleware.Protected(), GetMyRequests)

	mentor := api.Group("/mentor", middleware.Protected(), middleware.MentorRequired())
	mentor.Get("/requests", GetPendingRequests)
	mentor.Post("/requests/:requestId/respond", RespondToRequest)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/applications/pending", ListPendingApplications)
	admin.Put("/applications/:applicationId", ManageApplication)
	admin.Get("/users", GetAllUsers)
	admin.Put("/users/:userId/status", ToggleUserStatus)
	admin.Get("/sessions", AdminGetAllSessions)

	api.Post("/mentor-applications", middleware.Protected(), SubmitApplication)
	api.Get("/mentor-applications/me", middleware.Protected(), GetMyApplication)

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("/me", GetMySessions)
	sessions.Get("/:sessionId/report", GetSessionReport)
	sessions.Get("/:sessionId/report/pdf", DownloadSessionReportPDF)

	notifs := api.Group("/notifications", middleware.Protected())
	notifs.Get("/me", GetMyNotifications)
	notifs.Post("/:notificationId/viewed", MarkNotificationViewed)

	app.Post("/api/webhooks/zoom", ZoomWebhook)
	app.Get("/api/cron/reminders", RunReminderSweep)

	return app
}

func authToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func createTestUser(t *testing.T, db *gorm.DB, fullName, email, role string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func defaultSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{Date: "2025-03-10", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2025-03-11", StartTime: "09:00", EndTime: "10:30"},
		{Date: "2025-03-12", StartTime: "16:00", EndTime: "17:00"},
	}
}

func createTestRequest(t *testing.T, db *gorm.DB, studentID, mentorID uuid.UUID, slots []models.TimeSlot) models.MentorshipRequest {
	t.Helper()
	request := models.MentorshipRequest{
		StudentID: studentID,
		MentorID:  mentorID,
		Responses: models.RequestResponses{
			Strengths:    "algorithms",
			Weaknesses:   "system design",
			Requirements: "weekly calls",
			TimeSlots:    slots,
		},
		Status: models.RequestPending,
	}
	require.NoError(t, db.Create(&request).Error)
	return request
}

func backdateRequest(t *testing.T, db *gorm.DB, requestID uuid.UUID, age time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(&models.MentorshipRequest{}).
		Where("id = ?", requestID).
		Update("created_at", time.Now().Add(-age)).Error)
}

func countNotifications(t *testing.T, db *gorm.DB, recipientID uuid.UUID, notifType string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", recipientID, notifType).
		Count(&count).Error)
	return count
}
