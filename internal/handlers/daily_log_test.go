package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitloop/habit-tracking-api/internal/constants"
	"github.com/habitloop/habit-tracking-api/internal/database"
	"github.com/habitloop/habit-tracking-api/internal/middleware"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/habitloop/habit-tracking-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DailyLogHandlerTestSuite defines the test suite for DailyLogHandler
type DailyLogHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *DailyLogHandler
	router  *gin.Engine
	userID  string
}

// SetupTest runs before each test
func (suite *DailyLogHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.HabitMaster{},
		&models.WeeklySession{},
		&models.SessionItem{},
		&models.SessionCollaborator{},
		&models.DailyLog{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	dailyLogRepo := repository.NewDailyLogRepository(suite.db)
	sessionRepo := repository.NewSessionRepository(suite.db)
	service := services.NewDailyLogService(dailyLogRepo, sessionRepo, time.UTC)
	suite.handler = NewDailyLogHandler(service, time.UTC)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create router with an auth shim injecting the suite's user
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, suite.userID)
	})
	suite.router.GET("/api/daily-logs", suite.handler.SyncDailyLogs)
	suite.router.GET("/api/daily-logs/list", suite.handler.ListDailyLogs)
	suite.router.PATCH("/api/daily-logs/:id", suite.handler.UpdateDailyLog)
	suite.router.DELETE("/api/daily-logs/:id", suite.handler.DeleteDailyLog)
	suite.router.PATCH("/api/daily-logs/:id/progress", suite.handler.UpdateProgress)
	suite.router.GET("/api/session-items/:id/group-progress", middleware.RequireItemAccess(), suite.handler.GetGroupProgress)
}

// TearDownTest runs after each test
func (suite *DailyLogHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DailyLogHandlerTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

// createTestSchedule creates a habit, session and item for today's weekday.
func (suite *DailyLogHandlerTestSuite) createTestSchedule(userID string, goalType models.GoalType) *models.SessionItem {
	habit := &models.HabitMaster{UserID: userID, Name: "Meditation"}
	suite.db.Create(habit)

	session := &models.WeeklySession{
		UserID:    userID,
		Name:      "Quiet hour",
		DayOfWeek: int(time.Now().UTC().Weekday()),
	}
	suite.db.Create(session)

	item := &models.SessionItem{
		WeeklySessionID: session.ID,
		HabitMasterID:   habit.ID,
		StartTime:       "08:00",
		DurationMinutes: 20,
		Type:            models.SessionItemTypeTask,
		GoalType:        goalType,
	}
	suite.db.Create(item)
	return item
}

func (suite *DailyLogHandlerTestSuite) enrollAccepted(itemID string, user *models.User) {
	now := time.Now()
	uid := user.ID
	suite.db.Create(&models.SessionCollaborator{
		SessionItemID:      itemID,
		CollaboratorUserID: &uid,
		Email:              user.Email,
		Status:             models.CollaboratorStatusAccepted,
		JoinedAt:           &now,
	})
}

func (suite *DailyLogHandlerTestSuite) serve(method, url string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

type syncResponse struct {
	Date      string `json:"date"`
	DailyLogs []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"daily_logs"`
}

func (suite *DailyLogHandlerTestSuite) TestSyncDailyLogs_DefaultsToToday() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.userID = user.ID
	suite.createTestSchedule(user.ID, models.GoalTypeIndividual)

	w := suite.serve(http.MethodGet, "/api/daily-logs", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp syncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(time.Now().UTC().Format(constants.DateFormat), resp.Date)
	suite.Len(resp.DailyLogs, 1)
	suite.Equal("pending", resp.DailyLogs[0].Status)
}

func (suite *DailyLogHandlerTestSuite) TestSyncDailyLogs_InvalidDate() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.userID = user.ID

	w := suite.serve(http.MethodGet, "/api/daily-logs?date=garbage", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DailyLogHandlerTestSuite) TestListDailyLogs_DoesNotGenerate() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.userID = user.ID
	suite.createTestSchedule(user.ID, models.GoalTypeIndividual)

	w := suite.serve(http.MethodGet, "/api/daily-logs/list", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp syncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.DailyLogs)
}

func (suite *DailyLogHandlerTestSuite) TestUpdateProgress() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.userID = user.ID
	suite.createTestSchedule(user.ID, models.GoalTypeIndividual)

	w := suite.serve(http.MethodGet, "/api/daily-logs", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp syncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.DailyLogs, 1)

	body, _ := json.Marshal(map[string]interface{}{"status": "completed"})
	w = suite.serve(http.MethodPatch, "/api/daily-logs/"+resp.DailyLogs[0].ID+"/progress", body)
	suite.Equal(http.StatusOK, w.Code)

	var updated models.DailyLog
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.Equal(models.DailyLogStatusCompleted, updated.Status)
	suite.NotNil(updated.StatusUpdatedAt)
}

func (suite *DailyLogHandlerTestSuite) TestUpdateProgress_RejectsUnknownStatus() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.userID = user.ID

	body, _ := json.Marshal(map[string]interface{}{"status": "done"})
	w := suite.serve(http.MethodPatch, "/api/daily-logs/some-id/progress", body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DailyLogHandlerTestSuite) TestDeleteDailyLog_SticksAcrossResync() {
	user := suite.createTestUser("Alice", "alice@example.com")
	suite.userID = user.ID
	suite.createTestSchedule(user.ID, models.GoalTypeIndividual)

	w := suite.serve(http.MethodGet, "/api/daily-logs", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp syncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.DailyLogs, 1)

	w = suite.serve(http.MethodDelete, "/api/daily-logs/"+resp.DailyLogs[0].ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.serve(http.MethodGet, "/api/daily-logs", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.DailyLogs)
}

func (suite *DailyLogHandlerTestSuite) TestGroupProgress_RequiresRosterMembership() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	outsider := suite.createTestUser("Mallory", "mallory@example.com")
	item := suite.createTestSchedule(owner.ID, models.GoalTypeCollaborative)
	suite.enrollAccepted(item.ID, owner)

	date := time.Now().UTC().Format(constants.DateFormat)

	suite.userID = owner.ID
	w := suite.serve(http.MethodGet, "/api/session-items/"+item.ID+"/group-progress?date="+date, nil)
	suite.Equal(http.StatusOK, w.Code)

	var progress services.GroupProgress
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &progress))
	suite.Equal(1, progress.Summary.TotalMembers)

	// A stranger gets a 404, not a 403.
	suite.userID = outsider.ID
	w = suite.serve(http.MethodGet, "/api/session-items/"+item.ID+"/group-progress?date="+date, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestDailyLogHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DailyLogHandlerTestSuite))
}
