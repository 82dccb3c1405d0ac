package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeledger/backend/internal/httputil"
	"github.com/homeledger/backend/internal/ledger"
	"github.com/homeledger/backend/internal/models"
)

// MigrationRequest is the request body for the legacy data migration.
type MigrationRequest struct {
	UserID string `json:"userId" example:"usr-8f2b"`        // ID of the user to migrate
	Email  string `json:"email" example:"alex@example.com"` // Email of the user to migrate
}

type MigrationResponse struct {
	Error    *string `json:"error" example:"the userId must be set"` // The error, if any occurred
	Data     *Budget `json:"data"`                                   // The budget the user is a member of
	Migrated bool    `json:"migrated" example:"true"`                // Whether legacy data was moved by this request
}

// RegisterMigrationRoutes registers the routes for migrations with
// the RouterGroup that is passed.
func RegisterMigrationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMigration)
	r.POST("", CreateMigration)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Migrations
// @Success		204
// @Router			/v1/migrations [options]
func OptionsMigration(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Migrate legacy data
// @Description	Ensures the user is a member of a budget. If the user has none, a personal budget is created and all legacy data without a budget is moved into it. Safe to call repeatedly.
// @Tags			Migrations
// @Accept			json
// @Produce		json
// @Success		200		{object}	MigrationResponse
// @Success		201		{object}	MigrationResponse
// @Failure		400		{object}	MigrationResponse
// @Failure		500		{object}	MigrationResponse
// @Param			request	body		MigrationRequest	true	"User to migrate"
// @Router			/v1/migrations [post]
func CreateMigration(c *gin.Context) {
	var request MigrationRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MigrationResponse{Error: &e})
		return
	}

	budget, migrated, err := ledger.MigrateLegacyIfNeeded(models.DB, request.UserID, request.Email)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MigrationResponse{Error: &e})
		return
	}

	data := newBudget(c, budget)

	code := http.StatusOK
	if migrated {
		code = http.StatusCreated
	}

	c.JSON(code, MigrationResponse{Data: &data, Migrated: migrated})
}
