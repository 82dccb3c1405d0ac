package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/hierarchy"
	"github.com/homeledger/backend/internal/httputil"
	"github.com/homeledger/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the category"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Category{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category
// @Description	Creates a new category. Nested categories inherit the icon and background colors of their root category.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category := editable.model()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if category.ParentID != nil {
			root, err := rootCategory(tx, *category.ParentID)
			if err != nil {
				return err
			}

			category.IconColor = root.IconColor
			category.BackgroundColor = root.BackgroundColor
		}

		return tx.Create(&category).Error
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		List categories
// @Description	Returns a list of categories. With hierarchy=true, the list is ordered depth-first with alphabetical siblings and levels set.
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	CategoryListResponse
// @Failure		400			{object}	CategoryListResponse
// @Failure		500			{object}	CategoryListResponse
// @Param			budget		query		string	false	"Filter by budget ID"
// @Param			type		query		string	false	"Filter by type"
// @Param			hierarchy	query		bool	false	"Return the display list for the category forest"
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &e})
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	var categories []models.Category
	err := models.DB.Order("name ASC").Where(&model, queryFields...).Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	if filter.Hierarchy {
		categories = hierarchy.Build(categories)
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Param			id	path		URIID	true	"ID of the category"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Description	Updates an existing category. Only values to be updated need to be specified. Changing the parent recomputes the levels of the whole subtree, color changes on a root category cascade to all descendants.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Param			id			path		URIID				true	"ID of the category"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var editable CategoryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&category).Select("", updateFields...).Updates(editable.model()).Error
		if err != nil {
			return err
		}

		return reconcileForest(tx, category.BudgetID)
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	// Re-read, the reconciliation may have changed level and colors
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a category and all of its descendants. Transactions referencing them are kept.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the category"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var categories []models.Category
		err := tx.Where("budget_id = ?", category.BudgetID).Find(&categories).Error
		if err != nil {
			return err
		}

		ids := hierarchy.Descendants(categories, category.ID)
		ids = append(ids, category.ID)

		return tx.Where("id IN ?", ids).Delete(&models.Category{}).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// rootCategory walks up the parent chain and returns the level-0 ancestor.
func rootCategory(tx *gorm.DB, id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := tx.First(&category, id).Error
	if err != nil {
		return models.Category{}, err
	}

	for category.ParentID != nil {
		err = tx.First(&category, *category.ParentID).Error
		if err != nil {
			return models.Category{}, err
		}
	}

	return category, nil
}

// reconcileForest recomputes the cached levels for all categories of a
// budget and cascades the colors of every root category to its subtree.
// It is called after every update that can move categories around.
//
// The batch updates skip the model hooks, all integrity checks have already
// run for the update that triggered the reconciliation.
func reconcileForest(tx *gorm.DB, budgetID uuid.UUID) error {
	var categories []models.Category
	err := tx.Where("budget_id = ?", budgetID).Find(&categories).Error
	if err != nil {
		return err
	}

	stored := make(map[uuid.UUID]models.Category, len(categories))
	for _, category := range categories {
		stored[category.ID] = category
	}

	built := hierarchy.Build(categories)

	// Categories that are part of a parent cycle are unreachable from any
	// root and missing from the display list
	if len(built) != len(categories) {
		return models.ErrCategoryOwnParent
	}

	for _, entry := range built {
		if entry.Level > models.MaxCategoryLevel {
			return models.ErrCategoryTooDeep
		}

		update := map[string]any{}
		if entry.Level != stored[entry.ID].Level {
			update["level"] = entry.Level
		}

		if entry.ParentID != nil {
			root := stored[entry.ID]
			for root.ParentID != nil {
				root = stored[*root.ParentID]
			}

			if entry.IconColor != root.IconColor {
				update["icon_color"] = root.IconColor
			}
			if entry.BackgroundColor != root.BackgroundColor {
				update["background_color"] = root.BackgroundColor
			}
		}

		if len(update) == 0 {
			continue
		}

		err = tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Category{}).
			Where("id = ?", entry.ID).
			Updates(update).Error
		if err != nil {
			return err
		}
	}

	return nil
}
