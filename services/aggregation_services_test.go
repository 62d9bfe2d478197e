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

// The canonical two-criteria walkthrough: J1 scores C1=4 and C2=5 on S1,
// so S1 totals 9 with an average of 4.5 and the group sits at 100% completion.
func TestDemoGroupScenario(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Demo")
	criteria := createTestCriteria(t, group.ID, "C1", "C2")
	addTestSubmission(t, group.ID, "s1")
	judge := registerTestJudge(t, group.ID, "J1")

	_, err := services.SubmitScore(judge.SessionID, "s1", criteria[0].ID, 4, "")
	require.NoError(t, err)
	_, err = services.SubmitScore(judge.SessionID, "s1", criteria[1].ID, 5, "")
	require.NoError(t, err)

	rankings, err := services.GetRankings(group.ID)
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	assert.Equal(t, 9, rankings[0].Total)
	assert.InDelta(t, 4.5, rankings[0].Average, 0.001)
	assert.Equal(t, 2, rankings[0].Count)

	summary, err := services.GetGroupSummary(group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.CompletionPercentage, 0.001)

	// Hiding C2 drops the visible count and the completion percentage
	var c2 models.Score
	require.NoError(t, database.DB.
		Where("criterion_id = ?", criteria[1].ID).First(&c2).Error)
	hidden := true
	_, err = services.AdminUpdateScore(c2.ID, services.ScoreUpdateInput{Hidden: &hidden})
	require.NoError(t, err)

	rankings, err = services.GetRankings(group.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, rankings[0].Total)
	assert.Equal(t, 1, rankings[0].Count)

	summary, err = services.GetGroupSummary(group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, summary.CompletionPercentage, 0.001)
}

func TestCompletionPercentageZeroDenominator(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Empty Group")

	summary, err := services.GetGroupSummary(group.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.CompletionPercentage)
	assert.Zero(t, summary.AverageScore)
}

func TestCompletionPercentageClamped(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Overfull Group")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")
	scoreAll(t, judge.SessionID, "story-1", criteria, 5)

	// Orphan score beyond the judges x criteria x submissions grid
	extra := models.Score{
		GroupID:     group.ID,
		JudgeID:     judge.JudgeID,
		StoryID:     "story-1",
		CriterionID: "ghost-criterion",
		Value:       5,
	}
	require.NoError(t, database.DB.Create(&extra).Error)

	summary, err := services.GetGroupSummary(group.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, summary.CompletionPercentage, 100.0)
}

func TestRankingsTieBreakOnIntakeTime(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Tied Group")
	criteria := createTestCriteria(t, group.ID, "Idea")
	judge := registerTestJudge(t, group.ID, "Alice")

	addTestSubmission(t, group.ID, "story-late")
	addTestSubmission(t, group.ID, "story-early")

	// Same total for both; only intake time differs
	early := time.Now().Add(-time.Hour)
	require.NoError(t, database.DB.Model(&models.GroupSubmission{}).
		Where("group_id = ? AND story_id = ?", group.ID, "story-early").
		Update("added_at", early).Error)

	scoreAll(t, judge.SessionID, "story-late", criteria, 3)
	scoreAll(t, judge.SessionID, "story-early", criteria, 3)

	rankings, err := services.GetRankings(group.ID)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, "story-early", rankings[0].StoryID, "earliest intake wins the tie")
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, 2, rankings[1].Rank)
}

func TestRankingsIncludeUnscoredSubmissions(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Sparse Group")
	criteria := createTestCriteria(t, group.ID, "Idea")
	judge := registerTestJudge(t, group.ID, "Alice")
	addTestSubmission(t, group.ID, "story-scored")
	addTestSubmission(t, group.ID, "story-bare")

	scoreAll(t, judge.SessionID, "story-scored", criteria, 2)

	rankings, err := services.GetRankings(group.ID)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, "story-bare", rankings[1].StoryID)
	assert.Zero(t, rankings[1].Total)
	assert.Zero(t, rankings[1].Average)
}

func TestCriteriaBreakdownSkipsHidden(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Breakdown Group")
	criteria := createTestCriteria(t, group.ID, "Idea", "Execution")
	addTestSubmission(t, group.ID, "story-1")
	alice := registerTestJudge(t, group.ID, "Alice")
	bob := registerTestJudge(t, group.ID, "Bob")

	scoreAll(t, alice.SessionID, "story-1", criteria, 2)
	scoreAll(t, bob.SessionID, "story-1", criteria, 4)

	var victim models.Score
	require.NoError(t, database.DB.
		Where("judge_id = ? AND criterion_id = ?", bob.JudgeID, criteria[0].ID).
		First(&victim).Error)
	hidden := true
	_, err := services.AdminUpdateScore(victim.ID, services.ScoreUpdateInput{Hidden: &hidden})
	require.NoError(t, err)

	breakdown, err := services.GetCriteriaBreakdown(group.ID)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Idea", breakdown[0].Question)
	assert.InDelta(t, 2.0, breakdown[0].Average, 0.001, "the hidden score must not count")
	assert.Equal(t, 1, breakdown[0].Count)
	assert.InDelta(t, 3.0, breakdown[1].Average, 0.001)
	assert.Equal(t, 2, breakdown[1].Count)
}

func TestJudgeRollups(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Rollup Group")
	criteria := createTestCriteria(t, group.ID, "Idea", "Execution")
	addTestSubmission(t, group.ID, "story-1")
	addTestSubmission(t, group.ID, "story-2")
	alice := registerTestJudge(t, group.ID, "Alice")
	registerTestJudge(t, group.ID, "Bob")

	scoreAll(t, alice.SessionID, "story-1", criteria, 4)
	scoreAll(t, alice.SessionID, "story-2", criteria, 2)

	rollups, err := services.GetJudgeRollups(group.ID)
	require.NoError(t, err)
	require.Len(t, rollups, 2)

	assert.Equal(t, "Alice", rollups[0].Name)
	assert.Equal(t, 12, rollups[0].Total)
	assert.InDelta(t, 3.0, rollups[0].Average, 0.001)
	assert.Equal(t, 2, rollups[0].SubmissionsJudged)

	assert.Equal(t, "Bob", rollups[1].Name)
	assert.Zero(t, rollups[1].Total)
	assert.Zero(t, rollups[1].SubmissionsJudged)
}

func TestBuildExportRowsSkipsOrphans(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Export Group")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")
	scoreAll(t, judge.SessionID, "story-1", criteria, 5)

	// Score pointing at a criterion that no longer exists
	orphan := models.Score{
		GroupID:     group.ID,
		JudgeID:     judge.JudgeID,
		StoryID:     "story-1",
		CriterionID: "gone",
		Value:       1,
	}
	require.NoError(t, database.DB.Create(&orphan).Error)

	rows, err := services.BuildExportRows(group.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, group.Slug, rows[0].GroupSlug)
	assert.Equal(t, "Alice", rows[0].JudgeName)
	assert.Equal(t, "Idea", rows[0].Criterion)
	assert.Equal(t, 5, rows[0].Value)
}

func TestGatePublicResults(t *testing.T) {
	setupTestDB(t)

	password := "sesame"
	open, err := services.CreateGroup(services.GroupInput{
		Name:    "Open Group",
		Active:  true,
		Results: &services.SurfaceInput{Mode: models.AccessOpen},
	}, nil)
	require.NoError(t, err)
	gated, err := services.CreateGroup(services.GroupInput{
		Name:    "Gated Group",
		Active:  true,
		Results: &services.SurfaceInput{Mode: models.AccessPassword, Password: &password},
	}, nil)
	require.NoError(t, err)
	private, err := services.CreateGroup(services.GroupInput{
		Name:    "Private Group",
		Active:  true,
		Results: &services.SurfaceInput{Mode: models.AccessAdmin},
	}, nil)
	require.NoError(t, err)

	_, err = services.GatePublicResults(open.Slug, "")
	assert.NoError(t, err)

	_, err = services.GatePublicResults(gated.Slug, "wrong")
	assert.ErrorIs(t, err, services.ErrGroupNotFound,
		"a wrong password must be indistinguishable from a missing group")
	_, err = services.GatePublicResults(gated.Slug, "sesame")
	assert.NoError(t, err)

	_, err = services.GatePublicResults(private.Slug, "")
	assert.ErrorIs(t, err, services.ErrGroupNotFound,
		"an admin-only results surface must look like a missing group")

	_, err = services.GatePublicResults("no-such-slug", "")
	assert.ErrorIs(t, err, services.ErrGroupNotFound)
}
