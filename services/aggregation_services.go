package services

import (
	"fmt"
	"sort"
	"time"

	"judgeapi/database"
	"judgeapi/models"
	"judgeapi/utils"
)

// GroupSummary is the per-group rollup
type GroupSummary struct {
	GroupID              string  `json:"group_id"`
	Name                 string  `json:"name"`
	ScoreCount           int64   `json:"score_count"`
	AverageScore         float64 `json:"average_score"`
	JudgeCount           int64   `json:"judge_count"`
	SubmissionCount      int64   `json:"submission_count"`
	CriteriaCount        int64   `json:"criteria_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// GetGroupSummary computes score counts, the overall average and the
// completion percentage actual/(judges x criteria x submissions).
// Hidden scores do not count. A zero denominator yields 0, never a division.
func GetGroupSummary(groupID string) (*GroupSummary, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}

	summary := GroupSummary{GroupID: group.ID, Name: group.Name}

	db := database.DB
	if err := db.Model(&models.Score{}).
		Where("group_id = ? AND hidden = ?", groupID, false).
		Count(&summary.ScoreCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count scores: %w", err)
	}
	db.Model(&models.Judge{}).Where("group_id = ?", groupID).Count(&summary.JudgeCount)
	db.Model(&models.GroupSubmission{}).Where("group_id = ?", groupID).Count(&summary.SubmissionCount)
	db.Model(&models.Criterion{}).Where("group_id = ?", groupID).Count(&summary.CriteriaCount)

	if summary.ScoreCount > 0 {
		db.Model(&models.Score{}).
			Select("COALESCE(AVG(value), 0)").
			Where("group_id = ? AND hidden = ?", groupID, false).
			Scan(&summary.AverageScore)
	}

	denominator := summary.JudgeCount * summary.CriteriaCount * summary.SubmissionCount
	if denominator > 0 {
		summary.CompletionPercentage = float64(summary.ScoreCount) / float64(denominator) * 100
		if summary.CompletionPercentage > 100 {
			summary.CompletionPercentage = 100
		}
	}
	return &summary, nil
}

// RankingEntry is one submission in the rankings
type RankingEntry struct {
	Rank        int     `json:"rank"`
	StoryID     string  `json:"story_id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	URL         string  `json:"url"`
	Total       int     `json:"total"`
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
	MaxPossible int64   `json:"max_possible"`
}

// GetRankings orders a group's submissions by total raw score descending.
// Ties break on earliest intake time, then story id, so the order is
// deterministic. Story metadata comes from the content collaborator in one
// batch lookup instead of a per-row round-trip.
func GetRankings(groupID string) ([]RankingEntry, error) {
	var links []models.GroupSubmission
	if err := database.DB.Where("group_id = ?", groupID).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	var scores []models.Score
	if err := database.DB.Where("group_id = ? AND hidden = ?", groupID, false).Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	var judgeCount, criteriaCount int64
	database.DB.Model(&models.Judge{}).Where("group_id = ?", groupID).Count(&judgeCount)
	database.DB.Model(&models.Criterion{}).Where("group_id = ?", groupID).Count(&criteriaCount)
	maxPossible := judgeCount * criteriaCount * 5

	totals := make(map[string]int, len(links))
	counts := make(map[string]int, len(links))
	for _, s := range scores {
		totals[s.StoryID] += s.Value
		counts[s.StoryID]++
	}

	addedAt := make(map[string]time.Time, len(links))
	storyIDs := make([]string, 0, len(links))
	for _, l := range links {
		addedAt[l.StoryID] = l.AddedAt
		storyIDs = append(storyIDs, l.StoryID)
	}

	refs, err := Content.GetStories(storyIDs)
	if err != nil {
		// Rankings still make sense without titles
		refs = map[string]StoryRef{}
	}

	entries := make([]RankingEntry, 0, len(links))
	for _, l := range links {
		entry := RankingEntry{
			StoryID:     l.StoryID,
			Total:       totals[l.StoryID],
			Count:       counts[l.StoryID],
			MaxPossible: maxPossible,
		}
		if entry.Count > 0 {
			entry.Average = float64(entry.Total) / float64(entry.Count)
		}
		if ref, ok := refs[l.StoryID]; ok {
			entry.Title = ref.Title
			entry.Slug = ref.Slug
			entry.URL = ref.URL
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		ti, tj := addedAt[entries[i].StoryID], addedAt[entries[j].StoryID]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return entries[i].StoryID < entries[j].StoryID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// CriterionBreakdown is the per-criterion rollup across all judges
type CriterionBreakdown struct {
	CriterionID string  `json:"criterion_id"`
	Question    string  `json:"question"`
	SortOrder   int     `json:"sort_order"`
	Weight      int     `json:"weight"`
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
}

// GetCriteriaBreakdown averages non-hidden scores per criterion
func GetCriteriaBreakdown(groupID string) ([]CriterionBreakdown, error) {
	criteria, err := ListCriteria(groupID)
	if err != nil {
		return nil, err
	}

	var scores []models.Score
	if err := database.DB.Where("group_id = ? AND hidden = ?", groupID, false).Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	totals := make(map[string]int, len(criteria))
	counts := make(map[string]int, len(criteria))
	for _, s := range scores {
		totals[s.CriterionID] += s.Value
		counts[s.CriterionID]++
	}

	breakdown := make([]CriterionBreakdown, 0, len(criteria))
	for _, c := range criteria {
		entry := CriterionBreakdown{
			CriterionID: c.ID,
			Question:    c.Question,
			SortOrder:   c.SortOrder,
			Weight:      c.Weight,
			Count:       counts[c.ID],
		}
		if entry.Count > 0 {
			entry.Average = float64(totals[c.ID]) / float64(entry.Count)
		}
		breakdown = append(breakdown, entry)
	}
	return breakdown, nil
}

// JudgeRollup is the admin-only per-judge rollup
type JudgeRollup struct {
	JudgeID           string  `json:"judge_id"`
	Name              string  `json:"name"`
	Total             int     `json:"total"`
	Average           float64 `json:"average"`
	SubmissionsJudged int     `json:"submissions_judged"`
	NoteCount         int     `json:"note_count"`
}

// GetJudgeRollups totals each judge's scoring work; note counts come from the
// notes collaborator and default to zero when it is unavailable.
func GetJudgeRollups(groupID string) ([]JudgeRollup, error) {
	var judges []models.Judge
	if err := database.DB.Where("group_id = ?", groupID).Order("created_at").Find(&judges).Error; err != nil {
		return nil, fmt.Errorf("failed to load judges: %w", err)
	}

	var scores []models.Score
	if err := database.DB.Where("group_id = ? AND hidden = ?", groupID, false).Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	totals := make(map[string]int, len(judges))
	counts := make(map[string]int, len(judges))
	stories := make(map[string]map[string]bool, len(judges))
	for _, s := range scores {
		totals[s.JudgeID] += s.Value
		counts[s.JudgeID]++
		if stories[s.JudgeID] == nil {
			stories[s.JudgeID] = make(map[string]bool)
		}
		stories[s.JudgeID][s.StoryID] = true
	}

	rollups := make([]JudgeRollup, 0, len(judges))
	for _, j := range judges {
		rollup := JudgeRollup{
			JudgeID:           j.ID,
			Name:              j.Name,
			Total:             totals[j.ID],
			SubmissionsJudged: len(stories[j.ID]),
		}
		if counts[j.ID] > 0 {
			rollup.Average = float64(totals[j.ID]) / float64(counts[j.ID])
		}
		if noteCounts, err := Notes.CountNotes(groupID, j.ID); err == nil {
			for _, n := range noteCounts {
				rollup.NoteCount += n
			}
		}
		rollups = append(rollups, rollup)
	}
	return rollups, nil
}

// ExportRow is one denormalized score row, spreadsheet-ready
type ExportRow struct {
	GroupSlug  string
	JudgeName  string
	StoryID    string
	StoryTitle string
	Criterion  string
	Value      int
	Comment    string
	Hidden     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BuildExportRows joins Score x Judge x Submission x Criterion for a group.
// Every referenced collection is fetched once and joined in memory; rows whose
// judge, submission link or criterion no longer exists are skipped rather than
// failing the export.
func BuildExportRows(groupID string) ([]ExportRow, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}

	var scores []models.Score
	if err := database.DB.Where("group_id = ?", groupID).Order("created_at").Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	var judges []models.Judge
	if err := database.DB.Where("group_id = ?", groupID).Find(&judges).Error; err != nil {
		return nil, fmt.Errorf("failed to load judges: %w", err)
	}
	judgeByID := make(map[string]models.Judge, len(judges))
	for _, j := range judges {
		judgeByID[j.ID] = j
	}

	criteria, err := ListCriteria(groupID)
	if err != nil {
		return nil, err
	}
	criterionByID := make(map[string]models.Criterion, len(criteria))
	for _, c := range criteria {
		criterionByID[c.ID] = c
	}

	var links []models.GroupSubmission
	if err := database.DB.Where("group_id = ?", groupID).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	linked := make(map[string]bool, len(links))
	storyIDs := make([]string, 0, len(links))
	for _, l := range links {
		linked[l.StoryID] = true
		storyIDs = append(storyIDs, l.StoryID)
	}

	refs, err := Content.GetStories(storyIDs)
	if err != nil {
		refs = map[string]StoryRef{}
	}

	rows := make([]ExportRow, 0, len(scores))
	for _, s := range scores {
		judge, ok := judgeByID[s.JudgeID]
		if !ok {
			continue
		}
		criterion, ok := criterionByID[s.CriterionID]
		if !ok {
			continue
		}
		if !linked[s.StoryID] {
			continue
		}
		row := ExportRow{
			GroupSlug: group.Slug,
			JudgeName: judge.Name,
			StoryID:   s.StoryID,
			Criterion: criterion.Question,
			Value:     s.Value,
			Comment:   s.Comment,
			Hidden:    s.Hidden,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
		if ref, ok := refs[s.StoryID]; ok {
			row.StoryTitle = ref.Title
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GatePublicResults resolves a group for public results access. A group whose
// results surface is not reachable looks exactly like a missing group, so
// public callers cannot probe for private contests.
func GatePublicResults(slug, password string) (*models.JudgingGroup, error) {
	var group models.JudgingGroup
	if err := database.DB.First(&group, "slug = ?", slug).Error; err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.Active {
		return nil, ErrGroupNotFound
	}
	switch group.ResultsAccess.Mode {
	case models.AccessOpen:
		return &group, nil
	case models.AccessPassword:
		if utils.CheckPasswordHash(password, group.ResultsAccess.PasswordHash) {
			return &group, nil
		}
		return nil, ErrGroupNotFound
	default:
		return nil, ErrGroupNotFound
	}
}
