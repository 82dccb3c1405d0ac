package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CategoryType is the type of operations a category can be used for.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// MaxCategoryLevel is the deepest level a category can be nested at.
// Levels are 0, 1 and 2.
const MaxCategoryLevel = 2

// Category represents a category for transactions.
//
// Categories form a forest of at most three levels. The type is fixed for a
// whole subtree and only leaf categories may be referenced by transactions.
// Icon and background colors of non-root categories follow the level-0
// ancestor, the cascade is performed by the category controller.
type Category struct {
	DefaultModel
	Budget          Budget       `json:"-"`
	BudgetID        uuid.UUID    `gorm:"uniqueIndex:category_name_budget_id_parent_id"`
	Name            string       `gorm:"uniqueIndex:category_name_budget_id_parent_id"`
	Type            CategoryType
	IconName        string
	IconColor       string
	BackgroundColor string
	Limit           decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // spending limit, zero means no limit
	ParentID        *uuid.UUID      `gorm:"uniqueIndex:category_name_budget_id_parent_id"`
	Parent          *Category       `json:"-"`
	Level           int             // cached depth, 0 for root categories
}

// BeforeSave normalizes the category.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.IconName = strings.TrimSpace(c.IconName)

	if !slices.Contains([]CategoryType{CategoryTypeExpense, CategoryTypeIncome}, c.Type) {
		return ErrCategoryTypeInvalid
	}

	if c.Limit.IsNegative() {
		return ErrCategoryLimitNegative
	}

	// Ensure that the parent ID is nil and not a pointer to a nil UUID
	if c.ParentID != nil && *c.ParentID == uuid.Nil {
		c.ParentID = nil
	}

	if c.ParentID == nil {
		c.Level = 0
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("BudgetID") || tx.Statement.Changed("ParentID") {
		// Fields not part of the update come from the stored category
		toSave := tx.Statement.Dest.(Category)
		toSave.ID = c.ID
		if !tx.Statement.Changed("BudgetID") {
			toSave.BudgetID = c.BudgetID
		}
		if toSave.Type == "" {
			toSave.Type = c.Type
		}

		return c.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies the budget reference and the parent relationship.
//
// The parent must exist, belong to the same budget, have the same type and
// must not push the category below the maximum depth. The level is derived
// from the parent here so that it can never drift from the actual position
// in the forest.
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	if toSave.ParentID == nil || *toSave.ParentID == uuid.Nil {
		return nil
	}

	if toSave.ID != uuid.Nil && *toSave.ParentID == toSave.ID {
		return ErrCategoryOwnParent
	}

	var parent Category
	err = tx.First(&parent, *toSave.ParentID).Error
	if err != nil {
		return err
	}

	if parent.Type != toSave.Type {
		return ErrCategoryTypeMismatch
	}

	if parent.Level >= MaxCategoryLevel {
		return ErrCategoryTooDeep
	}

	c.Level = parent.Level + 1

	return nil
}

// IsLeaf reports whether the category has no child categories.
// Only leaf categories may be assigned to transactions.
func (c Category) IsLeaf(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&Category{}).Where("parent_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count == 0, nil
}
