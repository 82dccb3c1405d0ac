package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeledger/backend/internal/httputil"
	"github.com/homeledger/backend/internal/ledger"
	"github.com/homeledger/backend/internal/models"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transaction templates with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactionList)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransaction)
	}

	// Forced scheduler pass
	{
		r.OPTIONS("/execute", OptionsRecurringTransactionExecute)
		r.POST("/execute", ExecuteRecurringTransactions)
	}

	// Template with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring [options]
func OptionsRecurringTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring/execute [options]
func OptionsRecurringTransactionExecute(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the template"
// @Router			/v1/recurring/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.RecurringTransaction{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create recurring transaction
// @Description	Creates a new recurring transaction template
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	RecurringTransactionResponse
// @Failure		400			{object}	RecurringTransactionResponse
// @Failure		404			{object}	RecurringTransactionResponse
// @Failure		500			{object}	RecurringTransactionResponse
// @Param			template	body		RecurringTransactionEditable	true	"Template"
// @Router			/v1/recurring [post]
func CreateRecurringTransaction(c *gin.Context) {
	var editable RecurringTransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	template := editable.model()
	err = models.DB.Create(&template).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	data := newRecurringTransaction(c, template)
	c.JSON(http.StatusCreated, RecurringTransactionResponse{Data: &data})
}

// @Summary		List recurring transactions
// @Description	Returns a list of recurring transaction templates
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200		{object}	RecurringTransactionListResponse
// @Failure		400		{object}	RecurringTransactionListResponse
// @Failure		500		{object}	RecurringTransactionListResponse
// @Param			budget	query		string	false	"Filter by budget ID"
// @Param			active	query		bool	false	"Filter by active state"
// @Router			/v1/recurring [get]
func GetRecurringTransactions(c *gin.Context) {
	var filter RecurringQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringTransactionListResponse{Error: &e})
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	var templates []models.RecurringTransaction
	err := models.DB.
		Order("datetime(next_execution) ASC").
		Where(&model, queryFields...).
		Find(&templates).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{Error: &e})
		return
	}

	data := make([]RecurringTransaction, 0, len(templates))
	for _, template := range templates {
		data = append(data, newRecurringTransaction(c, template))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{Data: data})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction template
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ID of the template"
// @Router			/v1/recurring/{id} [get]
func GetRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	var template models.RecurringTransaction
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	data := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Updates an existing recurring transaction template. Only values to be updated need to be specified. Transactions already created from the template are not changed.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringTransactionResponse
// @Failure		400			{object}	RecurringTransactionResponse
// @Failure		404			{object}	RecurringTransactionResponse
// @Param			id			path		URIID							true	"ID of the template"
// @Param			template	body		RecurringTransactionEditable	true	"Template"
// @Router			/v1/recurring/{id} [patch]
func UpdateRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	var template models.RecurringTransaction
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	// Prefill the editable fields with the stored state so that the
	// template is validated as a whole on save
	editable := newRecurringTransaction(c, template).RecurringTransactionEditable

	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	err = models.DB.Model(&template).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	data := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction template. Transactions already created from it are kept.
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the template"
// @Router			/v1/recurring/{id} [delete]
func DeleteRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var template models.RecurringTransaction
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Execute due recurring transactions
// @Description	Runs a scheduler pass for a budget: all active templates that are due are materialized as transactions and advanced by one period.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		201		{object}	RecurringExecuteResponse
// @Failure		400		{object}	RecurringExecuteResponse
// @Failure		404		{object}	RecurringExecuteResponse
// @Failure		500		{object}	RecurringExecuteResponse
// @Param			request	body		RecurringExecuteRequest	true	"Budget to execute for"
// @Router			/v1/recurring/execute [post]
func ExecuteRecurringTransactions(c *gin.Context) {
	var request RecurringExecuteRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExecuteResponse{Error: &e})
		return
	}

	err = models.DB.First(&models.Budget{}, request.BudgetID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExecuteResponse{Error: &e})
		return
	}

	created, err := ledger.RunDue(models.DB, request.BudgetID.UUID, time.Now())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExecuteResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, RecurringExecuteResponse{Created: created})
}
