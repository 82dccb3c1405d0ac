package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/homeledger/backend/internal/controllers/v1"
	"github.com/homeledger/backend/internal/models"
	"github.com/homeledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAccountsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestAccount(t, v1.AccountEditable{BudgetID: b.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/accounts", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.AccountListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountCreate() {
	account := createTestAccount(suite.T(), v1.AccountEditable{
		Name:           "Checking account",
		Balance:        decimal.NewFromFloat(2317.12),
		IconName:       "wallet",
		IncludeInTotal: true,
	})

	require.NotNil(suite.T(), account.Data)
	assert.Equal(suite.T(), "Checking account", account.Data.Name)
	assert.True(suite.T(), account.Data.Balance.Equal(decimal.NewFromFloat(2317.12)))
	assert.Equal(suite.T(), "wallet", account.Data.IconName)
	assert.True(suite.T(), account.Data.IncludeInTotal)
}

func (suite *TestSuiteStandard) TestAccountCreateInvalid() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	existing := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2" }`, http.StatusBadRequest},
		{"No budget", v1.AccountEditable{Name: "No budget"}, http.StatusNotFound},
		{"Nonexistent budget", v1.AccountEditable{BudgetID: uuid.New(), Name: "Wrong budget"}, http.StatusNotFound},
		{"Duplicate name", v1.AccountEditable{BudgetID: budget.Data.ID, Name: existing.Data.Name}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountGetSingle() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"Existing account", account.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"ID nonexistent", uuid.NewString(), http.StatusNotFound, http.MethodGet},
		{"Invalid UUID", "definitely-not-a-uuid", http.StatusBadRequest, http.MethodGet},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountGetFilter() {
	b1 := createTestBudget(suite.T(), v1.BudgetEditable{})
	b2 := createTestBudget(suite.T(), v1.BudgetEditable{})

	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b1.Data.ID, Name: "Girokonto", IncludeInTotal: true})
	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b1.Data.ID, Name: "Sparkonto", IncludeInTotal: true})
	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b1.Data.ID, Name: "Cash"})
	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b2.Data.ID, Name: "Girokonto"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 4},
		{"Budget", fmt.Sprintf("budget=%s", b1.Data.ID), 3},
		{"Budget and name", fmt.Sprintf("budget=%s&name=giro", b1.Data.ID), 1},
		{"Fuzzy name", "name=konto", 3},
		{"Included in total", fmt.Sprintf("budget=%s&includeInTotal=true", b1.Data.ID), 2},
		{"No match", "name=doesnotexist", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountGetFilterInvalid() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts?budget=not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountUpdate() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Old name"})

	recorder := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"name":     "New name",
		"iconName": "piggy-bank",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), "New name", updated.Data.Name)
	assert.Equal(suite.T(), "piggy-bank", updated.Data.IconName)
}

// TestAccountUpdateBalanceIgnored verifies that the balance can only be
// set on creation. Afterwards, only booked transactions move it.
func (suite *TestSuiteStandard) TestAccountUpdateBalanceIgnored() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Balance: decimal.NewFromFloat(100)})

	recorder := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"balance": "1000000",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(100)), "Balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestAccountDelete() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountDeleteNonexistent() {
	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/accounts/%s", uuid.NewString()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
