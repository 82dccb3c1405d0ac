package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/homeledger/backend/internal/controllers/v1"
	"github.com/homeledger/backend/internal/models"
	"github.com/homeledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCategoriesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestCategory(t, v1.CategoryEditable{BudgetID: b.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/categories", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.CategoryListResponse
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

// TestCategoryCreateInheritsColors verifies that nested categories always
// carry the colors of their root category.
func (suite *TestSuiteStandard) TestCategoryCreateInheritsColors() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	root := createTestCategory(suite.T(), v1.CategoryEditable{
		BudgetID:        budget.Data.ID,
		Name:            "Living",
		IconColor:       "#FFFFFF",
		BackgroundColor: "#2E7D32",
	})

	child := createTestCategory(suite.T(), v1.CategoryEditable{
		BudgetID:        budget.Data.ID,
		Name:            "Food",
		ParentID:        root.Data.ID,
		IconColor:       "#000000",
		BackgroundColor: "#EF6C00",
	})

	require.NotNil(suite.T(), child.Data)
	assert.Equal(suite.T(), "#FFFFFF", child.Data.IconColor)
	assert.Equal(suite.T(), "#2E7D32", child.Data.BackgroundColor)

	grandchild := createTestCategory(suite.T(), v1.CategoryEditable{
		BudgetID: budget.Data.ID,
		Name:     "Groceries",
		ParentID: child.Data.ID,
	})

	assert.Equal(suite.T(), "#FFFFFF", grandchild.Data.IconColor)
	assert.Equal(suite.T(), "#2E7D32", grandchild.Data.BackgroundColor)
}

func (suite *TestSuiteStandard) TestCategoryCreateInvalid() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	expense := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Type: models.CategoryTypeExpense})
	income := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Type: models.CategoryTypeIncome})

	// Two levels below the root are the maximum
	child := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, ParentID: expense.Data.ID})
	grandchild := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, ParentID: child.Data.ID})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2" }`, http.StatusBadRequest},
		{"Invalid type", v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "X", Type: "SAVINGS"}, http.StatusBadRequest},
		{"Nonexistent budget", v1.CategoryEditable{BudgetID: uuid.New(), Name: "X", Type: models.CategoryTypeExpense}, http.StatusNotFound},
		{"Nonexistent parent", v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "X", Type: models.CategoryTypeExpense, ParentID: uuid.New()}, http.StatusNotFound},
		{"Parent type mismatch", v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "X", Type: models.CategoryTypeExpense, ParentID: income.Data.ID}, http.StatusBadRequest},
		{"Too deep", v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "X", Type: models.CategoryTypeExpense, ParentID: grandchild.Data.ID}, http.StatusBadRequest},
		{"Duplicate name for parent", v1.CategoryEditable{BudgetID: budget.Data.ID, Name: child.Data.Name, Type: models.CategoryTypeExpense, ParentID: expense.Data.ID}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/categories", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryGetSingle() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing category", category.Data.ID.String(), http.StatusOK},
		{"ID nonexistent", uuid.NewString(), http.StatusNotFound},
		{"Invalid UUID", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestCategoryGetHierarchy verifies the display list: parents before
// descendants, siblings alphabetical, levels set to the actual depth.
func (suite *TestSuiteStandard) TestCategoryGetHierarchy() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	living := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Living"})
	food := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Food", ParentID: living.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Restaurants", ParentID: food.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Groceries", ParentID: food.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Rent", ParentID: living.Data.ID})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?budget=%s&hierarchy=true", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 5)

	names := make([]string, 0, len(response.Data))
	levels := make([]int, 0, len(response.Data))
	for _, category := range response.Data {
		names = append(names, category.Name)
		levels = append(levels, category.Level)
	}

	assert.Equal(suite.T(), []string{"Living", "Food", "Groceries", "Restaurants", "Rent"}, names)
	assert.Equal(suite.T(), []int{0, 1, 2, 2, 1}, levels)
}

func (suite *TestSuiteStandard) TestCategoryGetFilter() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Type: models.CategoryTypeExpense})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Type: models.CategoryTypeExpense})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Type: models.CategoryTypeIncome})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 4},
		{"Budget", fmt.Sprintf("budget=%s", budget.Data.ID), 3},
		{"Budget and type", fmt.Sprintf("budget=%s&type=EXPENSE", budget.Data.ID), 2},
		{"Type", "type=INCOME", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestCategoryReparent verifies that moving a subtree recomputes the levels
// of all descendants and cascades the colors of the new root.
func (suite *TestSuiteStandard) TestCategoryReparent() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	oldRoot := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Old root", IconColor: "#111111"})
	newRoot := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "New root", IconColor: "#222222"})
	middle := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Middle", ParentID: oldRoot.Data.ID})
	leaf := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Leaf", ParentID: middle.Data.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, middle.Data.Links.Self, map[string]any{
		"parentId": newRoot.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), newRoot.Data.ID, updated.Data.ParentID)
	assert.Equal(suite.T(), 1, updated.Data.Level)
	assert.Equal(suite.T(), "#222222", updated.Data.IconColor)

	// The descendant follows the subtree
	recorder = test.Request(suite.T(), http.MethodGet, leaf.Data.Links.Self, "")
	var moved v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &moved)
	assert.Equal(suite.T(), 2, moved.Data.Level)
	assert.Equal(suite.T(), "#222222", moved.Data.IconColor)
}

// TestCategoryReparentToCycle verifies that a category cannot be moved
// below one of its own descendants.
func (suite *TestSuiteStandard) TestCategoryReparentToCycle() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	root := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Root"})
	child := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Child", ParentID: root.Data.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, root.Data.Links.Self, map[string]any{
		"parentId": child.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrCategoryOwnParent.Error())

	// The move was rolled back
	recorder = test.Request(suite.T(), http.MethodGet, root.Data.Links.Self, "")
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), uuid.Nil, response.Data.ParentID)
}

// TestCategoryReparentTooDeep verifies that moving a subtree cannot push
// descendants below the maximum depth.
func (suite *TestSuiteStandard) TestCategoryReparentTooDeep() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	root := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Root"})
	child := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Child", ParentID: root.Data.ID})

	other := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Other"})
	otherChild := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Other child", ParentID: other.Data.ID})

	// Moving "Other" under "Child" would put "Other child" on level 3
	recorder := test.Request(suite.T(), http.MethodPatch, other.Data.Links.Self, map[string]any{
		"parentId": child.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, otherChild.Data.Links.Self, "")
	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), 1, response.Data.Level)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Old name"})

	recorder := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"name":  "New name",
		"limit": "350",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), "New name", updated.Data.Name)
	assert.Equal(suite.T(), "350", updated.Data.Limit.String())
}

// TestCategoryDeleteSubtree verifies that deleting a category deletes all
// of its descendants with it.
func (suite *TestSuiteStandard) TestCategoryDeleteSubtree() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	root := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Root"})
	child := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Child", ParentID: root.Data.ID})
	grandchild := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Grandchild", ParentID: child.Data.ID})
	sibling := createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, Name: "Sibling"})

	recorder := test.Request(suite.T(), http.MethodDelete, child.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	for _, deleted := range []string{child.Data.Links.Self, grandchild.Data.Links.Self} {
		recorder = test.Request(suite.T(), http.MethodGet, deleted, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
	}

	for _, kept := range []string{root.Data.Links.Self, sibling.Data.Links.Self} {
		recorder = test.Request(suite.T(), http.MethodGet, kept, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	}
}

func (suite *TestSuiteStandard) TestCategoryDeleteNonexistent() {
	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", uuid.NewString()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
