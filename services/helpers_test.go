package services_test

import (
	"fmt"
	"testing"

	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/services"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the shared connection at a fresh in-memory database
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
		&models.JudgingGroup{},
		&models.Judge{},
		&models.Criterion{},
		&models.GroupSubmission{},
		&models.Score{},
		&models.SubmissionStatus{},
	))

	database.DB = db
}

func createTestGroup(t *testing.T, name string) *models.JudgingGroup {
	t.Helper()
	group, err := services.CreateGroup(services.GroupInput{Name: name, Active: true}, nil)
	require.NoError(t, err)
	return group
}

func createTestCriteria(t *testing.T, groupID string, questions ...string) []models.Criterion {
	t.Helper()
	inputs := make([]services.CriterionInput, 0, len(questions))
	for i, q := range questions {
		inputs = append(inputs, services.CriterionInput{Question: q, Weight: 1, SortOrder: i})
	}
	saved, err := services.SaveCriteria(groupID, inputs)
	require.NoError(t, err)
	require.Len(t, saved, len(questions))
	return saved
}

func registerTestJudge(t *testing.T, groupID, name string) *services.RegisteredJudge {
	t.Helper()
	judge, err := services.RegisterJudge(groupID, name, nil, nil)
	require.NoError(t, err)
	return judge
}

func addTestSubmission(t *testing.T, groupID, storyID string) {
	t.Helper()
	_, err := services.AddSubmission(groupID, storyID, nil)
	require.NoError(t, err)
}

// mustFirstScoreID returns the id of any score in the group
func mustFirstScoreID(t *testing.T, groupID string) string {
	t.Helper()
	var score models.Score
	require.NoError(t, database.DB.First(&score, "group_id = ?", groupID).Error)
	return score.ID
}

// scoreAll submits one score per criterion for a judge on one submission
func scoreAll(t *testing.T, sessionID, storyID string, criteria []models.Criterion, value int) {
	t.Helper()
	for i, criterion := range criteria {
		_, err := services.SubmitScore(sessionID, storyID, criterion.ID, value,
			fmt.Sprintf("note %d", i))
		require.NoError(t, err)
	}
}
