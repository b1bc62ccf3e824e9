package backend

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

func costCentersPath(s *model.Session) string {
	return "/api/v1/clients/" + segment(clientIDOf(s)) + "/CostCenters"
}

// ListCostCenters lists the client's cost centers, projected to id and name.
func (c *Client) ListCostCenters(ctx context.Context, s *model.Session, q model.ListQuery) model.Result[[]model.CostCenter] {
	return call[[]model.CostCenter](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        costCentersPath(s),
		query:       listValues(q, "id,name"),
		okMessage:   "Cost centers loaded.",
		failMessage: "Failed to load cost centers.",
	})
}

// GetCostCenter fetches a single cost center.
func (c *Client) GetCostCenter(ctx context.Context, s *model.Session, id string) model.Result[model.CostCenter] {
	return call[model.CostCenter](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        costCentersPath(s) + "/" + segment(id),
		okMessage:   "Cost center loaded.",
		failMessage: "Failed to load the cost center.",
	})
}

// CreateCostCenter creates an active cost center.
func (c *Client) CreateCostCenter(ctx context.Context, s *model.Session, name string) model.Result[model.CostCenter] {
	return call[model.CostCenter](ctx, c, withSession(s), request{
		method: http.MethodPost,
		path:   costCentersPath(s),
		jsonBody: map[string]any{
			"clientId": clientIDOf(s),
			"name":     name,
			"isActive": true,
		},
		okMessage:   "Cost center created.",
		failMessage: "Failed to create the cost center.",
	})
}

// UpdateCostCenter renames a cost center. The backend requires isActive on
// every update.
func (c *Client) UpdateCostCenter(ctx context.Context, s *model.Session, id, name string) model.Result[model.CostCenter] {
	return call[model.CostCenter](ctx, c, withSession(s), request{
		method: http.MethodPut,
		path:   costCentersPath(s) + "/" + segment(id),
		jsonBody: map[string]any{
			"id":       id,
			"name":     name,
			"isActive": true,
		},
		okMessage:   "Cost center updated.",
		failMessage: "Failed to update the cost center.",
	})
}

// DeleteCostCenter soft-deletes a cost center.
func (c *Client) DeleteCostCenter(ctx context.Context, s *model.Session, id string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withSession(s), request{
		method:      http.MethodDelete,
		path:        costCentersPath(s) + "/" + segment(id),
		okMessage:   "Cost center deleted.",
		failMessage: "Failed to delete the cost center. Try again.",
	})
}

// RestoreCostCenter undoes a soft delete.
func (c *Client) RestoreCostCenter(ctx context.Context, s *model.Session, id string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withSession(s), request{
		method:      http.MethodPut,
		path:        costCentersPath(s) + "/" + segment(id) + "/restore",
		okMessage:   "Cost center restored.",
		failMessage: "Failed to restore the cost center. Try again.",
	})
}
