package v1

import (
	"errors"
	"net/http"

	"github.com/homeledger/backend/internal/ledger"
	"github.com/homeledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, ledger.ErrPartialMigration) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Month endpoint errors
var (
	errBudgetIDParameter  = errors.New("the budget parameter must be set")
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
)

// Transaction errors
var errTransactionTypeInvalid = errors.New("the specified transaction type is invalid")

// Budget errors
var (
	errMemberUserIDRequired = errors.New("the userId of the new member must be set")
	errMemberEmailRequired  = errors.New("the email of the new member must be set")
)
