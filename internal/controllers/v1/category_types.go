package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	ledger_uuid "github.com/homeledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type CategoryEditable struct {
	BudgetID        uuid.UUID           `json:"budgetId" example:"d1b4e1b8-0ab7-4e4a-91e9-6d78d4a5b2e7"`    // ID of the budget this category belongs to
	Name            string              `json:"name" example:"Groceries" default:""`                        // Name of the category
	Type            models.CategoryType `json:"type" example:"EXPENSE"`                                     // Type of the category, one of EXPENSE and INCOME
	IconName        string              `json:"iconName" example:"shopping-cart" default:""`                // Identifier of the icon
	IconColor       string              `json:"iconColor" example:"#FFFFFF" default:""`                     // Color of the icon. Follows the root category for nested categories
	BackgroundColor string              `json:"backgroundColor" example:"#EF6C00" default:""`               // Background color of the icon. Follows the root category for nested categories
	Limit           decimal.Decimal     `json:"limit" example:"350" default:"0"`                            // Monthly spending limit, 0 means no limit
	ParentID        uuid.UUID           `json:"parentId" example:"a6e63b8e-4cfa-4a0e-82cb-c9bbdcd08bfc"`    // ID of the parent category, unset for root categories
}

// model returns the database resource for the API representation
func (editable CategoryEditable) model() models.Category {
	var parentID *uuid.UUID
	if editable.ParentID != uuid.Nil {
		parentID = &editable.ParentID
	}

	return models.Category{
		BudgetID:        editable.BudgetID,
		Name:            editable.Name,
		Type:            editable.Type,
		IconName:        editable.IconName,
		IconColor:       editable.IconColor,
		BackgroundColor: editable.BackgroundColor,
		Limit:           editable.Limit,
		ParentID:        parentID,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/a6e63b8e-4cfa-4a0e-82cb-c9bbdcd08bfc"`                  // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=a6e63b8e-4cfa-4a0e-82cb-c9bbdcd08bfc"` // Transactions of this category
}

// Category is the API representation of a category.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Level int           `json:"level" example:"1"` // Depth of the category in the hierarchy, 0 for root categories
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	var parentID uuid.UUID
	if model.ParentID != nil {
		parentID = *model.ParentID
	}

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			BudgetID:        model.BudgetID,
			Name:            model.Name,
			Type:            model.Type,
			IconName:        model.IconName,
			IconColor:       model.IconColor,
			BackgroundColor: model.BackgroundColor,
			Limit:           model.Limit,
			ParentID:        parentID,
		},
		Level: model.Level,
		Links: CategoryLinks{
			Self:         linkTo(c, "/categories/%s", model.ID),
			Transactions: linkTo(c, "/transactions?category=%s", model.ID),
		},
	}
}

type CategoryResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Category `json:"data"`                                                          // The category data, if the request was successful
}

type CategoryListResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []Category `json:"data"`                                                          // List of categories
}

// CategoryQueryFilter contains the fields categories can be filtered with.
type CategoryQueryFilter struct {
	BudgetID  ledger_uuid.UUID    `form:"budget"`                        // By budget ID
	Type      models.CategoryType `form:"type"`                          // By type
	Hierarchy bool                `form:"hierarchy" filterField:"false"` // Return the display list for the category forest instead of a flat list
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		BudgetID: f.BudgetID.UUID,
		Type:     f.Type,
	}
}
