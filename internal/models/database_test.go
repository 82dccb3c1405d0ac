package models_test

import (
	"github.com/homeledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestClosedDatabaseIsGeneralError() {
	suite.CloseDB()

	err := models.DB.First(&models.Budget{}, "id = ?", "b2e24a29-bd40-4fcd-a69c-e8c640c198b8").Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
