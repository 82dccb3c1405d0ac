package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/hierarchy"
	"github.com/homeledger/backend/internal/httputil"
	"github.com/homeledger/backend/internal/models"
	"github.com/homeledger/backend/internal/types"
	ledger_uuid "github.com/homeledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// CategoryStat is the statistic for a single category in a month. The total
// contains the category's own transactions and those of all descendants.
type CategoryStat struct {
	Category   Category        `json:"category"`                  // The category the statistic is for
	Total      decimal.Decimal `json:"total" example:"321.45"`    // Sum of the category and all its descendants in the month
	Percentage decimal.Decimal `json:"percentage" example:"12.5"` // Share of the month's total for the category's type, in percent
}

// MonthStats are the statistics for a specific month of a budget.
type MonthStats struct {
	Month      types.Month     `json:"month"`                   // The month the statistics are for
	Income     decimal.Decimal `json:"income" example:"3000"`   // Sum of all income transactions in the month
	Spent      decimal.Decimal `json:"spent" example:"2570.5"`  // Sum of all expense transactions in the month
	Balance    decimal.Decimal `json:"balance" example:"429.5"` // Income minus expenses
	Categories []CategoryStat  `json:"categories"`              // Per-category statistics in hierarchy order
}

type MonthResponse struct {
	Error *string     `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
	Data  *MonthStats `json:"data"`                                                  // The statistics, if the request was successful
}

// RegisterMonthRoutes registers the routes for month statistics with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMonth)
	r.GET("", GetMonth)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get statistics for a month
// @Description	Returns income, spending and per-category totals for a month. Category totals include all descendants and are listed in hierarchy order.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			budget	query		string	true	"ID of the budget"
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v1/months [get]
func GetMonth(c *gin.Context) {
	var budgetID ledger_uuid.UUID
	if err := budgetID.UnmarshalParam(c.Query("budget")); err != nil || budgetID == ledger_uuid.Nil {
		e := errBudgetIDParameter.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{Error: &e})
		return
	}

	if c.Query("month") == "" {
		e := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{Error: &e})
		return
	}

	month, err := types.ParseMonth(c.Query("month"))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{Error: &e})
		return
	}

	err = models.DB.First(&models.Budget{}, budgetID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	var categories []models.Category
	err = models.DB.Where("budget_id = ?", budgetID.UUID).Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	first := time.Time(month)
	next := first.AddDate(0, 1, 0)

	var transactions []models.Transaction
	err = models.DB.
		Where("budget_id = ?", budgetID.UUID).
		Where("type != ?", models.TransactionTypeTransfer).
		Where("date >= ?", first).
		Where("date < ?", next).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	// Own totals per category and the month totals per type
	own := make(map[uuid.UUID]decimal.Decimal)
	var income, spent decimal.Decimal
	for _, transaction := range transactions {
		if transaction.CategoryID != nil {
			own[*transaction.CategoryID] = own[*transaction.CategoryID].Add(transaction.Amount)
		}

		switch transaction.Type {
		case models.TransactionTypeIncome:
			income = income.Add(transaction.Amount)
		case models.TransactionTypeExpense:
			spent = spent.Add(transaction.Amount)
		}
	}

	totals := hierarchy.Rollup(categories, own)

	stats := make([]CategoryStat, 0, len(categories))
	for _, category := range hierarchy.Build(categories) {
		total := totals[category.ID]

		// Percentage of the month total for the category's type
		monthTotal := spent
		if category.Type == models.CategoryTypeIncome {
			monthTotal = income
		}

		var percentage decimal.Decimal
		if !monthTotal.IsZero() {
			percentage = total.Div(monthTotal).Mul(decimal.NewFromInt(100)).Round(2)
		}

		stats = append(stats, CategoryStat{
			Category:   newCategory(c, category),
			Total:      total,
			Percentage: percentage,
		})
	}

	data := MonthStats{
		Month:      month,
		Income:     income,
		Spent:      spent,
		Balance:    income.Sub(spent),
		Categories: stats,
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}
