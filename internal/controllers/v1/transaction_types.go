package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	ledger_uuid "github.com/homeledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	BudgetID    uuid.UUID              `json:"budgetId" example:"d1b4e1b8-0ab7-4e4a-91e9-6d78d4a5b2e7"`  // ID of the budget this transaction belongs to
	Description string                 `json:"description" example:"Weekly groceries" default:""`        // Description of the transaction
	Amount      decimal.Decimal        `json:"amount" example:"47.13" minimum:"0.00000001"`              // Amount of the transaction, always positive
	Date        time.Time              `json:"date" example:"2024-01-15T14:03:00Z"`                      // Date of the transaction
	Type        models.TransactionType `json:"type" example:"EXPENSE"`                                   // Type of the transaction, one of EXPENSE, INCOME and TRANSFER
	AccountID   uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account the transaction is booked on. For transfers, the source account
	CategoryID  uuid.UUID              `json:"categoryId" example:"a6e63b8e-4cfa-4a0e-82cb-c9bbdcd08bfc"` // ID of the leaf category. Unset for transfers
	ToAccountID uuid.UUID              `json:"toAccountId" example:"1b7c4e8a-9d2f-4f3b-8a1c-2d7e9f0a3b5c"` // ID of the destination account. Only set for transfers
}

// model returns the database resource for the API representation
func (editable TransactionEditable) model() models.Transaction {
	var categoryID, toAccountID *uuid.UUID
	if editable.CategoryID != uuid.Nil {
		categoryID = &editable.CategoryID
	}
	if editable.ToAccountID != uuid.Nil {
		toAccountID = &editable.ToAccountID
	}

	return models.Transaction{
		BudgetID:    editable.BudgetID,
		Description: editable.Description,
		Amount:      editable.Amount,
		Date:        editable.Date,
		Type:        editable.Type,
		AccountID:   editable.AccountID,
		CategoryID:  categoryID,
		ToAccountID: toAccountID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/6f7a9b1e-0c3d-4f5a-8b7c-9d0e1f2a3b4c"` // The transaction itself
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	var categoryID, toAccountID uuid.UUID
	if model.CategoryID != nil {
		categoryID = *model.CategoryID
	}
	if model.ToAccountID != nil {
		toAccountID = *model.ToAccountID
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			BudgetID:    model.BudgetID,
			Description: model.Description,
			Amount:      model.Amount,
			Date:        model.Date,
			Type:        model.Type,
			AccountID:   model.AccountID,
			CategoryID:  categoryID,
			ToAccountID: toAccountID,
		},
		Links: TransactionLinks{
			Self: linkTo(c, "/transactions/%s", model.ID),
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                          // The transaction data, if the request was successful
}

type TransactionListResponse struct {
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

// TransactionQueryFilter contains the fields transactions can be filtered with.
type TransactionQueryFilter struct {
	BudgetID   ledger_uuid.UUID       `form:"budget"`                        // By budget ID
	AccountID  ledger_uuid.UUID       `form:"account" filterField:"false"`   // By account, matches source and destination
	CategoryID ledger_uuid.UUID       `form:"category"`                      // By category ID
	Type       models.TransactionType `form:"type"`                          // By type
	FromDate   time.Time              `form:"fromDate" filterField:"false"`  // Transactions at or after this date
	UntilDate  time.Time              `form:"untilDate" filterField:"false"` // Transactions before or at this date
	Offset     uint                   `form:"offset" filterField:"false"`    // The offset of the first transaction returned
	Limit      int                    `form:"limit" filterField:"false"`     // Maximum number of transactions to return
}

func (f TransactionQueryFilter) model() models.Transaction {
	var categoryID *uuid.UUID
	if f.CategoryID.UUID != uuid.Nil {
		categoryID = &f.CategoryID.UUID
	}

	return models.Transaction{
		BudgetID:   f.BudgetID.UUID,
		Type:       f.Type,
		CategoryID: categoryID,
	}
}
