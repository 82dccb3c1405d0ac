package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	ledger_uuid "github.com/homeledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type RecurringTransactionEditable struct {
	BudgetID      uuid.UUID              `json:"budgetId" example:"d1b4e1b8-0ab7-4e4a-91e9-6d78d4a5b2e7"`   // ID of the budget this template belongs to
	Description   string                 `json:"description" example:"Rent" default:""`                     // Description for the created transactions
	Amount        decimal.Decimal        `json:"amount" example:"500" minimum:"0.00000001"`                 // Amount of the created transactions, always positive
	Type          models.TransactionType `json:"type" example:"EXPENSE"`                                    // Type of the created transactions, one of EXPENSE and INCOME
	AccountID     uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`  // ID of the account the transactions are booked on
	CategoryID    uuid.UUID              `json:"categoryId" example:"a6e63b8e-4cfa-4a0e-82cb-c9bbdcd08bfc"` // ID of the leaf category for the created transactions
	Periodicity   models.Periodicity     `json:"periodicity" example:"MONTHLY"`                             // How often the template executes, one of MONTHLY and WEEKLY
	DayOfMonth    int                    `json:"dayOfMonth" example:"1" minimum:"1" maximum:"31"`           // Day of the month for MONTHLY templates
	DayOfWeek     int                    `json:"dayOfWeek" example:"2" minimum:"1" maximum:"7"`             // Day of the week for WEEKLY templates, 1 is Sunday
	NextExecution time.Time              `json:"nextExecution" example:"2024-02-01T00:00:00Z"`              // Date the template executes next
	Active        bool                   `json:"active" example:"true" default:"false"`                     // Whether the scheduler executes the template
}

// model returns the database resource for the API representation
func (editable RecurringTransactionEditable) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		BudgetID:      editable.BudgetID,
		Description:   editable.Description,
		Amount:        editable.Amount,
		Type:          editable.Type,
		AccountID:     editable.AccountID,
		CategoryID:    editable.CategoryID,
		Periodicity:   editable.Periodicity,
		DayOfMonth:    editable.DayOfMonth,
		DayOfWeek:     editable.DayOfWeek,
		NextExecution: editable.NextExecution,
		Active:        editable.Active,
	}
}

type RecurringTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring/3d7a1e9c-5b0f-4a8d-9c2e-7f1b3a5d8e0c"` // The template itself
}

// RecurringTransaction is the API representation of a recurring
// transaction template.
type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	Links RecurringTransactionLinks `json:"links"`
}

func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction) RecurringTransaction {
	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			BudgetID:      model.BudgetID,
			Description:   model.Description,
			Amount:        model.Amount,
			Type:          model.Type,
			AccountID:     model.AccountID,
			CategoryID:    model.CategoryID,
			Periodicity:   model.Periodicity,
			DayOfMonth:    model.DayOfMonth,
			DayOfWeek:     model.DayOfWeek,
			NextExecution: model.NextExecution,
			Active:        model.Active,
		},
		Links: RecurringTransactionLinks{
			Self: linkTo(c, "/recurring/%s", model.ID),
		},
	}
}

type RecurringTransactionResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *RecurringTransaction `json:"data"`                                                          // The template data, if the request was successful
}

type RecurringTransactionListResponse struct {
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringTransaction `json:"data"`                                                          // List of templates
}

// RecurringExecuteRequest is the request body for forcing a scheduler pass.
type RecurringExecuteRequest struct {
	BudgetID ledger_uuid.UUID `json:"budgetId" binding:"required"` // ID of the budget to execute due templates for
}

// RecurringExecuteResponse reports the result of a scheduler pass.
type RecurringExecuteResponse struct {
	Error   *string `json:"error" example:"there is no budget matching your query"` // The error, if any occurred
	Created int     `json:"created" example:"2"`                                    // Number of transactions created by this pass
}

// RecurringQueryFilter contains the fields templates can be filtered with.
type RecurringQueryFilter struct {
	BudgetID ledger_uuid.UUID `form:"budget"` // By budget ID
	Active   bool             `form:"active"` // By active state
}

func (f RecurringQueryFilter) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		BudgetID: f.BudgetID.UUID,
		Active:   f.Active,
	}
}
