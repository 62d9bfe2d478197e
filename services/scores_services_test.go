package services_test

import (
	"testing"

	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitScoreBoundaries(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	for _, value := range []int{0, 6, -1, 100} {
		_, err := services.SubmitScore(judge.SessionID, "story-1", criteria[0].ID, value, "")
		assert.ErrorIs(t, err, services.ErrInvalidScoreRange, "value %d must be rejected", value)
	}

	for _, value := range []int{1, 5} {
		score, err := services.SubmitScore(judge.SessionID, "story-1", criteria[0].ID, value, "")
		require.NoError(t, err, "value %d must be accepted", value)
		assert.Equal(t, value, score.Value)
	}
}

func TestSubmitScoreUpsertsInPlace(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	first, err := services.SubmitScore(judge.SessionID, "story-1", criteria[0].ID, 3, "solid")
	require.NoError(t, err)

	second, err := services.SubmitScore(judge.SessionID, "story-1", criteria[0].ID, 5, "brilliant")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmission must overwrite, not duplicate")
	assert.Equal(t, 5, second.Value)
	assert.Equal(t, "brilliant", second.Comment)

	var count int64
	database.DB.Model(&models.Score{}).Where("group_id = ?", group.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitScoreRejectsForeignCriterion(t *testing.T) {
	setupTestDB(t)
	groupA := createTestGroup(t, "Group A")
	groupB := createTestGroup(t, "Group B")
	foreign := createTestCriteria(t, groupB.ID, "Elsewhere")
	addTestSubmission(t, groupA.ID, "story-1")
	judge := registerTestJudge(t, groupA.ID, "Alice")

	_, err := services.SubmitScore(judge.SessionID, "story-1", foreign[0].ID, 3, "")
	assert.ErrorIs(t, err, services.ErrCriterionGroupMismatch)
}

func TestSubmitScoreRejectsUnlinkedSubmission(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea")
	judge := registerTestJudge(t, group.ID, "Alice")

	_, err := services.SubmitScore(judge.SessionID, "story-ghost", criteria[0].ID, 3, "")
	assert.ErrorIs(t, err, services.ErrSubmissionNotInGroup)
}

func TestSubmitScoreUnknownSession(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")

	_, err := services.SubmitScore("bogus", "story-1", criteria[0].ID, 3, "")
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestGetJudgeScoresOrdered(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea", "Execution", "Polish")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	// Score out of display order on purpose
	_, err := services.SubmitScore(judge.SessionID, "story-1", criteria[2].ID, 5, "")
	require.NoError(t, err)
	_, err = services.SubmitScore(judge.SessionID, "story-1", criteria[0].ID, 3, "")
	require.NoError(t, err)

	rows, err := services.GetJudgeScores(judge.SessionID, "story-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Idea", rows[0].Question)
	assert.Equal(t, "Polish", rows[1].Question)
}

func TestAdminUpdateScoreValueAndRange(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")
	score, err := services.SubmitScore(judge.SessionID, "story-1", criteria[0].ID, 3, "")
	require.NoError(t, err)

	bad := 9
	_, err = services.AdminUpdateScore(score.ID, services.ScoreUpdateInput{Value: &bad})
	assert.ErrorIs(t, err, services.ErrInvalidScoreRange)

	good := 2
	updated, err := services.AdminUpdateScore(score.ID, services.ScoreUpdateInput{Value: &good})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Value)
}

func TestAdminDeleteScoreRevertsCompletion(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea", "Execution")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	scoreAll(t, judge.SessionID, "story-1", criteria, 4)
	_, err := services.MarkCompleted(judge.SessionID, "story-1")
	require.NoError(t, err)

	var victim models.Score
	require.NoError(t, database.DB.
		Where("judge_id = ? AND criterion_id = ?", judge.JudgeID, criteria[0].ID).
		First(&victim).Error)
	require.NoError(t, services.AdminDeleteScore(victim.ID))

	status, err := services.GetSubmissionStatus(group.ID, "story-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status,
		"deleting a score under a completed submission reverts it to pending")
}

func TestAdminHideScoreRevertsCompletion(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Spring Showcase")
	criteria := createTestCriteria(t, group.ID, "Idea", "Execution")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	scoreAll(t, judge.SessionID, "story-1", criteria, 4)
	_, err := services.MarkCompleted(judge.SessionID, "story-1")
	require.NoError(t, err)

	var victim models.Score
	require.NoError(t, database.DB.
		Where("judge_id = ? AND criterion_id = ?", judge.JudgeID, criteria[1].ID).
		First(&victim).Error)

	hidden := true
	_, err = services.AdminUpdateScore(victim.ID, services.ScoreUpdateInput{Hidden: &hidden})
	require.NoError(t, err)

	status, err := services.GetSubmissionStatus(group.ID, "story-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status,
		"hiding a score breaks coverage, so completion cannot stand")
}
