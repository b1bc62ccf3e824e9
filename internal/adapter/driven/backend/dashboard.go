package backend

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// Dashboard fetches the aggregate statistics. The endpoint returns them as
// the bare body rather than inside the envelope.
func (c *Client) Dashboard(ctx context.Context, s *model.Session) model.Result[model.DashboardStats] {
	return call[model.DashboardStats](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        "/api/v1/Dashboard",
		bare:        true,
		okMessage:   "Dashboard data loaded.",
		failMessage: "Failed to load dashboard data.",
	})
}
