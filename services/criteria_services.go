package services

import (
	"fmt"

	"judgeapi/database"
	"judgeapi/models"

	"gorm.io/gorm"
)

// CriterionInput is one entry of a full criteria replace. A nil ID means insert;
// a known ID means patch in place.
type CriterionInput struct {
	ID          *string `json:"id"`
	Question    string  `json:"question" binding:"required"`
	Description string  `json:"description"`
	Weight      int     `json:"weight"`
	SortOrder   int     `json:"sort_order"`
}

// CriterionOrder is one entry of a reorder call
type CriterionOrder struct {
	ID        string `json:"id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// ListCriteria returns a group's criteria in display order
func ListCriteria(groupID string) ([]models.Criterion, error) {
	var criteria []models.Criterion
	if err := database.DB.Where("group_id = ?", groupID).Order("sort_order").Find(&criteria).Error; err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	return criteria, nil
}

// SaveCriteria performs a transactional full replace of a group's criteria.
// Entries with an id are patched, entries without one are inserted, and
// previous criteria absent from the input are deleted -- unless scores still
// reference them, in which case the whole operation fails naming the blocking
// criterion. Nothing is applied partially.
func SaveCriteria(groupID string, inputs []CriterionInput) ([]models.Criterion, error) {
	var saved []models.Criterion

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.Criterion
		if err := tx.Where("group_id = ?", groupID).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load existing criteria: %w", err)
		}

		keep := make(map[string]bool, len(inputs))
		for _, in := range inputs {
			if in.ID != nil {
				keep[*in.ID] = true
			}
		}

		// Validate deletions first so the replace is all-or-nothing
		for _, old := range existing {
			if keep[old.ID] {
				continue
			}
			var refs int64
			if err := tx.Model(&models.Score{}).Where("criterion_id = ?", old.ID).Count(&refs).Error; err != nil {
				return fmt.Errorf("failed to count score references: %w", err)
			}
			if refs > 0 {
				return fmt.Errorf("%w: %q has %d score(s)", ErrDuplicateReferenceConflict, old.Question, refs)
			}
		}

		for _, old := range existing {
			if keep[old.ID] {
				continue
			}
			if err := tx.Delete(&models.Criterion{}, "id = ?", old.ID).Error; err != nil {
				return fmt.Errorf("failed to delete criterion: %w", err)
			}
		}

		byID := make(map[string]models.Criterion, len(existing))
		for _, old := range existing {
			byID[old.ID] = old
		}

		for _, in := range inputs {
			weight := in.Weight
			if weight <= 0 {
				weight = 1
			}
			if in.ID != nil {
				current, ok := byID[*in.ID]
				if !ok || current.GroupID != groupID {
					return fmt.Errorf("%w: %s", ErrCriterionNotFound, *in.ID)
				}
				current.Question = in.Question
				current.Description = in.Description
				current.Weight = weight
				current.SortOrder = in.SortOrder
				if err := tx.Save(&current).Error; err != nil {
					return fmt.Errorf("failed to update criterion: %w", err)
				}
				saved = append(saved, current)
			} else {
				criterion := models.Criterion{
					GroupID:     groupID,
					Question:    in.Question,
					Description: in.Description,
					Weight:      weight,
					SortOrder:   in.SortOrder,
				}
				if err := tx.Create(&criterion).Error; err != nil {
					return fmt.Errorf("failed to create criterion: %w", err)
				}
				saved = append(saved, criterion)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteCriterion removes a single criterion, refusing while scores reference it
func DeleteCriterion(criterionID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var criterion models.Criterion
		if err := tx.First(&criterion, "id = ?", criterionID).Error; err != nil {
			return ErrCriterionNotFound
		}

		var refs int64
		if err := tx.Model(&models.Score{}).Where("criterion_id = ?", criterionID).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count score references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("%w: %q has %d score(s)", ErrDuplicateReferenceConflict, criterion.Question, refs)
		}
		return tx.Delete(&criterion).Error
	})
}

// ReorderCriteria updates display order only
func ReorderCriteria(groupID string, orders []CriterionOrder) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Model(&models.Criterion{}).
				Where("id = ? AND group_id = ?", o.ID, groupID).
				Update("sort_order", o.SortOrder)
			if res.Error != nil {
				return fmt.Errorf("failed to reorder criterion %s: %w", o.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrCriterionNotFound, o.ID)
			}
		}
		return nil
	})
}
