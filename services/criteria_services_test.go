package services_test

import (
	"testing"

	"judgeapi/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCriteriaCreatesAndUpdates(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Criteria Group")

	saved := createTestCriteria(t, group.ID, "Idea", "Execution")

	// Rename one, keep the other untouched
	saved[0].Question = "Originality"
	updated, err := services.SaveCriteria(group.ID, []services.CriterionInput{
		{ID: &saved[0].ID, Question: "Originality", Weight: 2, SortOrder: 0},
		{ID: &saved[1].ID, Question: saved[1].Question, Weight: 1, SortOrder: 1},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, saved[0].ID, updated[0].ID)
	assert.Equal(t, "Originality", updated[0].Question)
	assert.Equal(t, 2, updated[0].Weight)
}

func TestSaveCriteriaDeletesUnscored(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Criteria Group")
	saved := createTestCriteria(t, group.ID, "Idea", "Execution")

	// Submitting only the first criterion deletes the second
	remaining, err := services.SaveCriteria(group.ID, []services.CriterionInput{
		{ID: &saved[0].ID, Question: "Idea", Weight: 1, SortOrder: 0},
	})
	require.NoError(t, err)
	require.Len(t, remaining, 1)

	criteria, err := services.ListCriteria(group.ID)
	require.NoError(t, err)
	assert.Len(t, criteria, 1)
}

func TestSaveCriteriaRefusesDeletingScoredCriterion(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Criteria Group")
	saved := createTestCriteria(t, group.ID, "Idea", "Execution")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")

	_, err := services.SubmitScore(judge.SessionID, "story-1", saved[1].ID, 4, "")
	require.NoError(t, err)

	_, err = services.SaveCriteria(group.ID, []services.CriterionInput{
		{ID: &saved[0].ID, Question: "Idea", Weight: 1, SortOrder: 0},
	})
	assert.ErrorIs(t, err, services.ErrDuplicateReferenceConflict)

	// The refused save must not have removed anything
	criteria, err := services.ListCriteria(group.ID)
	require.NoError(t, err)
	assert.Len(t, criteria, 2)
}

func TestDeleteCriterionWithScores(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Criteria Group")
	saved := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")
	scoreAll(t, judge.SessionID, "story-1", saved, 3)

	err := services.DeleteCriterion(saved[0].ID)
	assert.ErrorIs(t, err, services.ErrDuplicateReferenceConflict)

	// The refused delete must roll back completely
	criteria, err := services.ListCriteria(group.ID)
	require.NoError(t, err)
	assert.Len(t, criteria, 1)

	require.NoError(t, services.AdminDeleteScore(mustFirstScoreID(t, group.ID)))
	assert.NoError(t, services.DeleteCriterion(saved[0].ID))
}

func TestReorderCriteria(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Criteria Group")
	saved := createTestCriteria(t, group.ID, "First", "Second", "Third")

	err := services.ReorderCriteria(group.ID, []services.CriterionOrder{
		{ID: saved[0].ID, SortOrder: 2},
		{ID: saved[1].ID, SortOrder: 0},
		{ID: saved[2].ID, SortOrder: 1},
	})
	require.NoError(t, err)

	criteria, err := services.ListCriteria(group.ID)
	require.NoError(t, err)
	require.Len(t, criteria, 3)
	assert.Equal(t, "Second", criteria[0].Question)
	assert.Equal(t, "Third", criteria[1].Question)
	assert.Equal(t, "First", criteria[2].Question)
}
