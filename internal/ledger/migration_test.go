package ledger_test

import (
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/ledger"
	"github.com/homeledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestMigrateRequiresUser() {
	_, _, err := ledger.MigrateLegacyIfNeeded(models.DB, "", "jane@example.com")
	suite.Assert().ErrorIs(err, ledger.ErrUserRequired)
}

func (suite *TestSuiteStandard) TestMigrateExistingMemberIsNoop() {
	budget := suite.createTestBudget(models.Budget{OwnerID: "usr-jane"})

	returned, migrated, err := ledger.MigrateLegacyIfNeeded(models.DB, "usr-jane", "jane@example.com")
	suite.Require().NoError(err)
	suite.Assert().False(migrated)
	suite.Assert().Equal(budget.ID, returned.ID)

	var count int64
	_ = models.DB.Model(&models.Budget{}).Count(&count)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestMigrateLegacyData() {
	// Legacy rows are recognizable by an unset budget reference. Hooks are
	// skipped on insert since current integrity checks reject such rows.
	account := models.Account{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Girokonto", Balance: decimal.NewFromFloat(100)}
	err := models.DB.Session(&gorm.Session{SkipHooks: true}).Create(&account).Error
	suite.Require().NoError(err)

	category := models.Category{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Groceries", Type: models.CategoryTypeExpense}
	err = models.DB.Session(&gorm.Session{SkipHooks: true}).Create(&category).Error
	suite.Require().NoError(err)

	budget, migrated, err := ledger.MigrateLegacyIfNeeded(models.DB, "usr-jane", "jane@example.com")
	suite.Require().NoError(err)
	suite.Assert().True(migrated)
	suite.Assert().Equal("Personal budget", budget.Name)
	suite.Assert().Equal("usr-jane", budget.OwnerID)
	suite.Assert().Equal("jane@example.com", budget.Members["usr-jane"])

	suite.Require().NoError(models.DB.First(&account, account.ID).Error)
	suite.Assert().Equal(budget.ID, account.BudgetID)

	suite.Require().NoError(models.DB.First(&category, category.ID).Error)
	suite.Assert().Equal(budget.ID, category.BudgetID)
}

func (suite *TestSuiteStandard) TestMigrateIsIdempotent() {
	account := models.Account{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Girokonto"}
	err := models.DB.Session(&gorm.Session{SkipHooks: true}).Create(&account).Error
	suite.Require().NoError(err)

	first, migrated, err := ledger.MigrateLegacyIfNeeded(models.DB, "usr-jane", "jane@example.com")
	suite.Require().NoError(err)
	suite.Assert().True(migrated)

	second, migrated, err := ledger.MigrateLegacyIfNeeded(models.DB, "usr-jane", "jane@example.com")
	suite.Require().NoError(err)
	suite.Assert().False(migrated)
	suite.Assert().Equal(first.ID, second.ID)
}

func (suite *TestSuiteStandard) TestMigrateNoLegacyData() {
	budget, migrated, err := ledger.MigrateLegacyIfNeeded(models.DB, "usr-jane", "jane@example.com")
	suite.Require().NoError(err)
	suite.Assert().False(migrated)
	suite.Assert().NotEqual(uuid.Nil, budget.ID)
	suite.Assert().Equal("Personal budget", budget.Name)
}
