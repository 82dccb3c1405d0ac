package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/homeledger/backend/internal/models"
)

type BudgetEditable struct {
	Name    string            `json:"name" example:"Our household" default:""`          // Name of the budget
	OwnerID string            `json:"ownerId" example:"usr-8f2b" default:""`            // ID of the user who owns the budget
	Members map[string]string `json:"members" example:"usr-8f2b:morre@example.com"`     // Mapping of user IDs to emails for all members
}

// model returns the database resource for the API representation
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:    editable.Name,
		OwnerID: editable.OwnerID,
		Members: editable.Members,
	}
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/d1b4e1b8-0ab7-4e4a-91e9-6d78d4a5b2e7"`            // The budget itself
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts?budget=d1b4e1b8-0ab7-4e4a-91e9-6d78d4a5b2e7"` // Accounts of this budget
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?budget=d1b4e1b8"`                     // Transactions of this budget
	Members      string `json:"members" example:"https://example.com/api/v1/budgets/d1b4e1b8/members"`                              // Membership management
}

// Budget is the API representation of a budget.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:    model.Name,
			OwnerID: model.OwnerID,
			Members: model.Members,
		},
		Links: BudgetLinks{
			Self:         linkTo(c, "/budgets/%s", model.ID),
			Accounts:     linkTo(c, "/accounts?budget=%s", model.ID),
			Transactions: linkTo(c, "/transactions?budget=%s", model.ID),
			Members:      linkTo(c, "/budgets/%s/members", model.ID),
		},
	}
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                         // The budget data, if the request was successful
}

type BudgetListResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []Budget `json:"data"`                                                          // List of budgets
}

// BudgetMember is the request body for adding a member to a budget.
type BudgetMember struct {
	UserID string `json:"userId" example:"usr-1b7c"`          // ID of the joining user
	Email  string `json:"email" example:"alex@example.com"`   // Email of the joining user
}
