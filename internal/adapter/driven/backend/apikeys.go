package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

func apiKeysPath(s *model.Session) string {
	return "/api/v1/clients/" + segment(clientIDOf(s)) + "/keys"
}

// ListAPIKeys lists every key of the client, deleted ones included.
func (c *Client) ListAPIKeys(ctx context.Context, s *model.Session) model.Result[[]model.APIKey] {
	return call[[]model.APIKey](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        apiKeysPath(s),
		query:       url.Values{"query.ShowAll": []string{"true"}},
		okMessage:   "API keys loaded.",
		failMessage: "Failed to load API keys.",
	})
}

// GetAPIKey fetches a single key.
func (c *Client) GetAPIKey(ctx context.Context, s *model.Session, id string) model.Result[model.APIKey] {
	return call[model.APIKey](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        apiKeysPath(s) + "/" + segment(id),
		okMessage:   "API key loaded.",
		failMessage: "Failed to load the API key.",
	})
}

// CreateAPIKey creates a key with the given name. The backend expects
// isRevoked true on creation.
func (c *Client) CreateAPIKey(ctx context.Context, s *model.Session, key string) model.Result[model.APIKey] {
	return call[model.APIKey](ctx, c, withSession(s), request{
		method: http.MethodPost,
		path:   apiKeysPath(s),
		jsonBody: map[string]any{
			"key":       key,
			"isRevoked": true,
		},
		okMessage:   "API key created.",
		failMessage: "Failed to create the API key.",
	})
}

// UpdateAPIKey renames a key and sets its revoked flag.
func (c *Client) UpdateAPIKey(ctx context.Context, s *model.Session, id, key string, revoked bool) model.Result[model.APIKey] {
	return call[model.APIKey](ctx, c, withSession(s), request{
		method: http.MethodPut,
		path:   apiKeysPath(s) + "/" + segment(id),
		jsonBody: map[string]any{
			"id":        id,
			"key":       key,
			"isRevoked": revoked,
		},
		okMessage:   "API key updated.",
		failMessage: "Failed to update the API key.",
	})
}

// DeleteAPIKey soft-deletes a key.
func (c *Client) DeleteAPIKey(ctx context.Context, s *model.Session, id string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withSession(s), request{
		method:      http.MethodDelete,
		path:        apiKeysPath(s) + "/" + segment(id),
		okMessage:   "API key deleted.",
		failMessage: "Failed to delete the API key. Try again.",
	})
}

// RestoreAPIKey undoes a soft delete.
func (c *Client) RestoreAPIKey(ctx context.Context, s *model.Session, id string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withSession(s), request{
		method:      http.MethodPut,
		path:        apiKeysPath(s) + "/" + segment(id) + "/restore",
		okMessage:   "API key restored.",
		failMessage: "Failed to restore the API key. Try again.",
	})
}
