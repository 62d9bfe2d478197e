package services_test

import (
	"testing"
	"time"

	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterJudgeCreatesSession(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")

	judge := registerTestJudge(t, group.ID, "Alice")

	assert.NotEmpty(t, judge.JudgeID)
	assert.Len(t, judge.SessionID, 64, "session id should be 32 random bytes hex encoded")
	assert.Equal(t, "Alice", judge.Name)
}

func TestRegisterJudgeRejectsShortName(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")

	_, err := services.RegisterJudge(group.ID, " A ", nil, nil)
	assert.ErrorIs(t, err, services.ErrInvalidJudgeName)
}

func TestRegisterJudgeSameNameIsIdempotent(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")

	first := registerTestJudge(t, group.ID, "Alice")
	second := registerTestJudge(t, group.ID, "Alice")

	assert.Equal(t, first.JudgeID, second.JudgeID, "same name in same group should reuse the judge")
	assert.Equal(t, first.SessionID, second.SessionID, "re-registration must not rotate the session")

	var count int64
	database.DB.Model(&models.Judge{}).Where("group_id = ?", group.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterJudgeSameNameDifferentGroups(t *testing.T) {
	setupTestDB(t)
	groupA := createTestGroup(t, "Group A")
	groupB := createTestGroup(t, "Group B")

	a := registerTestJudge(t, groupA.ID, "Alice")
	b := registerTestJudge(t, groupB.ID, "Alice")

	assert.NotEqual(t, a.JudgeID, b.JudgeID)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestRegisterJudgeInactiveGroup(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Closed Showcase")
	inactive := false
	_, err := services.UpdateGroup(group.ID, services.GroupUpdateInput{Active: &inactive})
	require.NoError(t, err)

	_, err = services.RegisterJudge(group.ID, "Alice", nil, nil)
	assert.ErrorIs(t, err, services.ErrGroupInactive)
}

func TestRegisterJudgeOutsideWindow(t *testing.T) {
	setupTestDB(t)
	past := time.Now().Add(-time.Hour)
	group, err := services.CreateGroup(services.GroupInput{
		Name:    "Ended Showcase",
		Active:  true,
		EndDate: &past,
	}, nil)
	require.NoError(t, err)

	_, err = services.RegisterJudge(group.ID, "Alice", nil, nil)
	assert.ErrorIs(t, err, services.ErrGroupEnded)
}

func TestValidateSession(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	judge := registerTestJudge(t, group.ID, "Alice")

	assert.True(t, services.ValidateSession(judge.SessionID))
	assert.False(t, services.ValidateSession("no-such-session"))
}

func TestSessionStaleness(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	judge := registerTestJudge(t, group.ID, "Alice")

	assert.True(t, services.IsSessionValid(judge.SessionID))

	// Push the recorded activity past the staleness window
	stale := time.Now().Add(-25 * time.Hour)
	require.NoError(t, database.DB.Model(&models.Judge{}).
		Where("id = ?", judge.JudgeID).
		Update("last_active", stale).Error)

	assert.False(t, services.IsSessionValid(judge.SessionID))
	assert.True(t, services.ValidateSession(judge.SessionID),
		"a stale session still resolves, it is only no longer fresh")
}

func TestDeleteJudgeCascades(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea", "Execution")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	scoreAll(t, judge.SessionID, "story-1", criteria, 4)
	_, err := services.MarkCompleted(judge.SessionID, "story-1")
	require.NoError(t, err)

	require.NoError(t, services.DeleteJudge(judge.JudgeID))

	var scoreCount int64
	database.DB.Model(&models.Score{}).Where("judge_id = ?", judge.JudgeID).Count(&scoreCount)
	assert.EqualValues(t, 0, scoreCount, "deleting a judge removes their scores")

	status, err := services.GetSubmissionStatus(group.ID, "story-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status,
		"a completion owned by a deleted judge reverts to pending")
	assert.Nil(t, status.AssignedJudgeID)

	assert.False(t, services.ValidateSession(judge.SessionID))
}

func TestListJudgesWithScoreCounts(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")

	alice := registerTestJudge(t, group.ID, "Alice")
	registerTestJudge(t, group.ID, "Bob")
	scoreAll(t, alice.SessionID, "story-1", criteria, 5)

	overviews, err := services.ListJudges(group.ID)
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	byName := map[string]int64{}
	for _, o := range overviews {
		byName[o.Name] = o.ScoreCount
	}
	assert.EqualValues(t, 1, byName["Alice"])
	assert.EqualValues(t, 0, byName["Bob"])
}
