package judges_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"judgeapi/database"
	"judgeapi/handlers/judges"
	"judgeapi/models"
	"judgeapi/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.JudgingGroup{},
		&models.Judge{},
		&models.Criterion{},
		&models.GroupSubmission{},
		&models.Score{},
		&models.SubmissionStatus{},
	))
	database.DB = db

	r := gin.New()
	judges.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterJudgeHttp(t *testing.T) {
	r := setupRouter(t)
	group, err := services.CreateGroup(services.GroupInput{Name: "HTTP Group", Active: true}, nil)
	require.NoError(t, err)

	w := postJSON(t, r, "/api/v1/groups/"+group.ID+"/judges/register",
		map[string]interface{}{"name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var registered services.RegisteredJudge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "Alice", registered.Name)
	assert.NotEmpty(t, registered.SessionID)

	// Same name, same judge
	w = postJSON(t, r, "/api/v1/groups/"+group.ID+"/judges/register",
		map[string]interface{}{"name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code)
	var again services.RegisteredJudge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, registered.SessionID, again.SessionID)
}

func TestRegisterJudgeHttpPasswordGate(t *testing.T) {
	r := setupRouter(t)
	password := "sesame"
	group, err := services.CreateGroup(services.GroupInput{
		Name:    "Gated HTTP Group",
		Active:  true,
		Scoring: &services.SurfaceInput{Mode: models.AccessPassword, Password: &password},
	}, nil)
	require.NoError(t, err)

	w := postJSON(t, r, "/api/v1/groups/"+group.ID+"/judges/register",
		map[string]interface{}{"name": "Alice"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/v1/groups/"+group.ID+"/judges/register",
		map[string]interface{}{"name": "Alice", "password": "sesame"})
	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())
}

func TestRegisterJudgeHttpUnknownGroup(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/v1/groups/nope/judges/register",
		map[string]interface{}{"name": "Alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateSessionHttp(t *testing.T) {
	r := setupRouter(t)
	group, err := services.CreateGroup(services.GroupInput{Name: "HTTP Group", Active: true}, nil)
	require.NoError(t, err)
	registered, err := services.RegisterJudge(group.ID, "Alice", nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/judges/session/validate?session="+registered.SessionID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var check judges.SessionCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.True(t, check.Valid)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/judges/session/validate?session=bogus", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.False(t, check.Valid)
}
