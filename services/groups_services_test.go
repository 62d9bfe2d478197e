package services_test

import (
	"testing"

	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupSlug(t *testing.T) {
	setupTestDB(t)

	group, err := services.CreateGroup(services.GroupInput{Name: "  Spring Showcase 2026 "}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Spring Showcase 2026", group.Name)
	assert.Equal(t, "spring-showcase-2026", group.Slug)

	// A second group with the same name still gets a unique slug
	other, err := services.CreateGroup(services.GroupInput{Name: "Spring Showcase 2026"}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, group.Slug, other.Slug)
	assert.Contains(t, other.Slug, "spring-showcase-2026")
}

func TestCreateGroupRequiresName(t *testing.T) {
	setupTestDB(t)

	_, err := services.CreateGroup(services.GroupInput{Name: "   "}, nil)
	assert.Error(t, err)
}

func TestCreateGroupDefaultsSurfacesToOpen(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Defaults Group")

	assert.Equal(t, models.AccessOpen, group.ScoringAccess.Mode)
	assert.Equal(t, models.AccessOpen, group.IntakeAccess.Mode)
	assert.Equal(t, models.AccessOpen, group.ResultsAccess.Mode)
}

func TestSurfacePasswordIsHashed(t *testing.T) {
	setupTestDB(t)

	password := "sesame"
	group, err := services.CreateGroup(services.GroupInput{
		Name:    "Gated Group",
		Active:  true,
		Scoring: &services.SurfaceInput{Mode: models.AccessPassword, Password: &password},
	}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, password, group.ScoringAccess.PasswordHash,
		"the raw password must never be stored")
	assert.NotEmpty(t, group.ScoringAccess.PasswordHash)

	ok, err := services.ValidateSurfacePassword(group.ID, services.SurfaceScoring, "sesame")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = services.ValidateSurfacePassword(group.ID, services.SurfaceScoring, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateGroupPartial(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Before")

	name := "After"
	updated, err := services.UpdateGroup(group.ID, services.GroupUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, group.Slug, updated.Slug, "renaming must not break the published slug")
	assert.True(t, updated.Active)
}

func TestGetGroupBySlug(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Lookup Group")

	found, err := services.GetGroupBySlug(group.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, group.ID, found.ID)

	_, err = services.GetGroupBySlug("missing", true)
	assert.ErrorIs(t, err, services.ErrGroupNotFound)
}

func TestDeleteGroupCascade(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Doomed Group")
	criteria := createTestCriteria(t, group.ID, "Idea")
	addTestSubmission(t, group.ID, "story-1")
	judge := registerTestJudge(t, group.ID, "Alice")
	scoreAll(t, judge.SessionID, "story-1", criteria, 3)
	_, err := services.MarkCompleted(judge.SessionID, "story-1")
	require.NoError(t, err)

	require.NoError(t, services.DeleteGroupCascade(group.ID))

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"scores", &models.Score{}},
		{"statuses", &models.SubmissionStatus{}},
		{"judges", &models.Judge{}},
		{"submissions", &models.GroupSubmission{}},
		{"criteria", &models.Criterion{}},
	} {
		var count int64
		database.DB.Model(probe.model).Where("group_id = ?", group.ID).Count(&count)
		assert.Zero(t, count, "no %s may survive the group", probe.name)
	}

	_, err = services.GetGroup(group.ID, false)
	assert.ErrorIs(t, err, services.ErrGroupNotFound)
}

func TestAddSubmissionIdempotent(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Intake Group")

	first, err := services.AddSubmission(group.ID, "story-1", nil)
	require.NoError(t, err)
	second, err := services.AddSubmission(group.ID, "story-1", nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	links, err := services.ListSubmissions(group.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestRemoveSubmissionUnknown(t *testing.T) {
	setupTestDB(t)
	group := createTestGroup(t, "Intake Group")

	err := services.RemoveSubmission(group.ID, "story-ghost")
	assert.ErrorIs(t, err, services.ErrSubmissionNotInGroup)
}
