// Package hierarchy implements operations on the category forest.
//
// All functions are pure, they operate on a flat snapshot of categories and
// never touch the database. Screens use Build for indented display lists,
// the statistics endpoint uses Rollup to sum leaf totals into ancestors.
package hierarchy

import (
	"strings"

	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Build returns the categories as a depth-first display list: every parent
// appears before all of its descendants, siblings are ordered
// alphabetically by name, and each entry's Level is set to its actual depth
// in the forest.
//
// Categories whose parent is not part of the snapshot are unreachable and
// not included.
func Build(categories []models.Category) []models.Category {
	children := make(map[uuid.UUID][]models.Category)
	for _, category := range categories {
		parent := uuid.Nil
		if category.ParentID != nil {
			parent = *category.ParentID
		}

		children[parent] = append(children[parent], category)
	}

	for _, siblings := range children {
		slices.SortFunc(siblings, func(a, b models.Category) int {
			return strings.Compare(a.Name, b.Name)
		})
	}

	result := make([]models.Category, 0, len(categories))

	var add func(parent uuid.UUID, level int)
	add = func(parent uuid.UUID, level int) {
		for _, category := range children[parent] {
			category.Level = level
			result = append(result, category)
			add(category.ID, level+1)
		}
	}
	add(uuid.Nil, 0)

	return result
}

// Descendants returns the IDs of all transitive children of a category.
// Used for cascading deletes and color updates.
func Descendants(categories []models.Category, id uuid.UUID) []uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, category := range categories {
		if category.ParentID != nil {
			children[*category.ParentID] = append(children[*category.ParentID], category.ID)
		}
	}

	var result []uuid.UUID

	var collect func(parent uuid.UUID)
	collect = func(parent uuid.UUID) {
		for _, child := range children[parent] {
			result = append(result, child)
			collect(child)
		}
	}
	collect(id)

	return result
}

// Rollup accumulates the own transaction totals of each category into all
// of its ancestors, level by level from the deepest level up, and returns
// the total per category.
//
// The own map may contain totals for leaf and non-leaf categories alike,
// categories without an entry count as zero.
func Rollup(categories []models.Category, own map[uuid.UUID]decimal.Decimal) map[uuid.UUID]decimal.Decimal {
	totals := make(map[uuid.UUID]decimal.Decimal, len(categories))
	for _, category := range categories {
		totals[category.ID] = own[category.ID]
	}

	for level := models.MaxCategoryLevel; level > 0; level-- {
		for _, category := range categories {
			if category.Level != level || category.ParentID == nil {
				continue
			}

			if _, ok := totals[*category.ParentID]; !ok {
				continue
			}

			totals[*category.ParentID] = totals[*category.ParentID].Add(totals[category.ID])
		}
	}

	return totals
}
