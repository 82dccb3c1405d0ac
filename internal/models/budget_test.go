package models_test

import (
	"github.com/homeledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetNameRequired() {
	err := models.DB.Create(&models.Budget{Name: "  ", OwnerID: "usr-1"}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNameEmpty)
}

func (suite *TestSuiteStandard) TestBudgetNameRequiredOnUpdate() {
	budget := suite.createTestBudget(models.Budget{Name: "Household", OwnerID: "usr-1"})

	err := models.DB.Model(&budget).Select("", "Name").Updates(models.Budget{Name: "  "}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNameEmpty)
}

func (suite *TestSuiteStandard) TestBudgetTrimWhitespace() {
	budget := suite.createTestBudget(models.Budget{Name: "  Household  ", OwnerID: "usr-1"})
	suite.Assert().Equal("Household", budget.Name)
}

func (suite *TestSuiteStandard) TestBudgetOwnerIsMember() {
	budget := suite.createTestBudget(models.Budget{Name: "Household", OwnerID: "usr-1"})

	suite.Assert().Contains(budget.Members, "usr-1")
}

func (suite *TestSuiteStandard) TestBudgetOwnerKeptOnSave() {
	budget := suite.createTestBudget(models.Budget{
		Name:    "Household",
		OwnerID: "usr-1",
		Members: map[string]string{"usr-1": "one@example.com"},
	})

	// Removing the owner from the members is silently undone
	budget.Members = map[string]string{"usr-2": "two@example.com"}
	err := models.DB.Save(&budget).Error
	suite.Assert().NoError(err)

	suite.Assert().Contains(budget.Members, "usr-1")
	suite.Assert().Contains(budget.Members, "usr-2")
}

func (suite *TestSuiteStandard) TestBudgetBalance() {
	budget := suite.createTestBudget(models.Budget{})

	_ = suite.createTestAccount(models.Account{
		BudgetID:       budget.ID,
		Balance:        decimal.NewFromFloat(100.5),
		IncludeInTotal: true,
	})

	_ = suite.createTestAccount(models.Account{
		BudgetID:       budget.ID,
		Balance:        decimal.NewFromFloat(-10),
		IncludeInTotal: true,
	})

	// Not included in the total
	_ = suite.createTestAccount(models.Account{
		BudgetID: budget.ID,
		Balance:  decimal.NewFromFloat(1000),
	})

	balance, err := budget.Balance(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(90.5)), "balance is %s", balance)
}

func (suite *TestSuiteStandard) TestBudgetNotFoundMessage() {
	err := models.DB.First(&models.Budget{}, "id = ?", "b2e24a29-bd40-4fcd-a69c-e8c640c198b8").Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no budget matching your query", err.Error())
}
