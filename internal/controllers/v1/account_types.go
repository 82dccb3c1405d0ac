package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	ledger_uuid "github.com/homeledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	BudgetID        uuid.UUID       `json:"budgetId" example:"d1b4e1b8-0ab7-4e4a-91e9-6d78d4a5b2e7"` // ID of the budget this account belongs to
	Name            string          `json:"name" example:"Checking account" default:""`              // Name of the account
	Balance         decimal.Decimal `json:"balance" example:"2317.12" default:"0"`                   // Balance of the account. Only evaluated on creation, afterwards the ledger is authoritative
	IconName        string          `json:"iconName" example:"wallet" default:""`                    // Identifier of the icon
	IconColor       string          `json:"iconColor" example:"#FFFFFF" default:""`                  // Color of the icon
	BackgroundColor string          `json:"backgroundColor" example:"#2E7D32" default:""`            // Background color of the icon
	IncludeInTotal  bool            `json:"includeInTotal" example:"true" default:"false"`           // Whether the account counts towards the budget balance
}

// model returns the database resource for the API representation
func (editable AccountEditable) model() models.Account {
	return models.Account{
		BudgetID:        editable.BudgetID,
		Name:            editable.Name,
		Balance:         editable.Balance,
		IconName:        editable.IconName,
		IconColor:       editable.IconColor,
		BackgroundColor: editable.BackgroundColor,
		IncludeInTotal:  editable.IncludeInTotal,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                 // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions referencing the account
}

// Account is the API representation of an account.
type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			BudgetID:        model.BudgetID,
			Name:            model.Name,
			Balance:         model.Balance,
			IconName:        model.IconName,
			IconColor:       model.IconColor,
			BackgroundColor: model.BackgroundColor,
			IncludeInTotal:  model.IncludeInTotal,
		},
		Links: AccountLinks{
			Self:         linkTo(c, "/accounts/%s", model.ID),
			Transactions: linkTo(c, "/transactions?account=%s", model.ID),
		},
	}
}

type AccountResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Account `json:"data"`                                                          // The account data, if the request was successful
}

type AccountListResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []Account `json:"data"`                                                          // List of accounts
}

// AccountQueryFilter contains the fields accounts can be filtered with.
type AccountQueryFilter struct {
	BudgetID       ledger_uuid.UUID `form:"budget"`                   // By budget ID
	Name           string           `form:"name" filterField:"false"` // By name, fuzzy
	IncludeInTotal bool             `form:"includeInTotal"`           // Is the account included in the budget total?
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		BudgetID:       f.BudgetID.UUID,
		IncludeInTotal: f.IncludeInTotal,
	}
}
