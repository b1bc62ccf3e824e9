package backend

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

func expenseTypesPath(costCenterID string) string {
	return "/api/v1/cost-centers/" + segment(costCenterID) + "/expense-types"
}

// ListExpenseTypes lists the expense types of a cost center, projected to id
// and name.
func (c *Client) ListExpenseTypes(ctx context.Context, s *model.Session, costCenterID string, q model.ListQuery) model.Result[[]model.ExpenseType] {
	return call[[]model.ExpenseType](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        expenseTypesPath(costCenterID),
		query:       listValues(q, "id,name"),
		okMessage:   "Expense types loaded.",
		failMessage: "Failed to load expense types.",
	})
}

// GetExpenseType fetches a single expense type.
func (c *Client) GetExpenseType(ctx context.Context, s *model.Session, costCenterID, id string) model.Result[model.ExpenseType] {
	return call[model.ExpenseType](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        expenseTypesPath(costCenterID) + "/" + segment(id),
		okMessage:   "Expense type loaded.",
		failMessage: "Failed to load the expense type.",
	})
}

// CreateExpenseType adds an expense type to a cost center.
func (c *Client) CreateExpenseType(ctx context.Context, s *model.Session, costCenterID, name string) model.Result[model.ExpenseType] {
	return call[model.ExpenseType](ctx, c, withSession(s), request{
		method: http.MethodPost,
		path:   expenseTypesPath(costCenterID),
		jsonBody: map[string]string{
			"costCenterId": costCenterID,
			"name":         name,
		},
		okMessage:   "Expense type created.",
		failMessage: "Failed to create the expense type.",
	})
}

// UpdateExpenseType renames an expense type.
func (c *Client) UpdateExpenseType(ctx context.Context, s *model.Session, costCenterID, id, name string) model.Result[model.ExpenseType] {
	return call[model.ExpenseType](ctx, c, withSession(s), request{
		method: http.MethodPut,
		path:   expenseTypesPath(costCenterID) + "/" + segment(id),
		jsonBody: map[string]string{
			"id":           id,
			"costCenterId": costCenterID,
			"name":         name,
		},
		okMessage:   "Expense type updated.",
		failMessage: "Failed to update the expense type.",
	})
}

// DeleteExpenseType soft-deletes an expense type.
func (c *Client) DeleteExpenseType(ctx context.Context, s *model.Session, costCenterID, id string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withSession(s), request{
		method:      http.MethodDelete,
		path:        expenseTypesPath(costCenterID) + "/" + segment(id),
		okMessage:   "Expense type deleted.",
		failMessage: "Failed to delete the expense type.",
	})
}

// RestoreExpenseType undoes a soft delete.
func (c *Client) RestoreExpenseType(ctx context.Context, s *model.Session, costCenterID, id string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withSession(s), request{
		method:      http.MethodPut,
		path:        expenseTypesPath(costCenterID) + "/" + segment(id) + "/restore",
		okMessage:   "Expense type restored.",
		failMessage: "Failed to restore the expense type.",
	})
}
