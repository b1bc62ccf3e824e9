package backend

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ServiceCredentialProvider = (*ServiceCredentials)(nil)

// ServiceCredentials logs the service account in on every Get. There is no
// caching, so a rotated password takes effect on the next call.
type ServiceCredentials struct {
	client   *Client
	username string
	password string
}

// NewServiceCredentials creates a provider for the given service account.
// Empty username or password makes every Get fail.
func NewServiceCredentials(client *Client, username, password string) *ServiceCredentials {
	return &ServiceCredentials{client: client, username: username, password: password}
}

// Get returns the service credential or an error wrapping
// driven.ErrServiceCredential.
func (p *ServiceCredentials) Get(ctx context.Context) (model.ServiceCredential, error) {
	if p.username == "" || p.password == "" {
		p.client.logger.Error("service credentials not configured")
		return model.ServiceCredential{}, fmt.Errorf("%w: username or password not configured", driven.ErrServiceCredential)
	}

	res := call[model.Session](ctx, p.client, anonymous(), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/Login",
		jsonBody:    map[string]string{"username": p.username, "password": p.password},
		failMessage: "service login rejected",
	})
	if !res.OK() {
		p.client.logger.Error("service login failed", "message", res.Message())
		return model.ServiceCredential{}, fmt.Errorf("%w: %s", driven.ErrServiceCredential, res.Message())
	}

	userKey := res.Data().UserKey
	if userKey == "" {
		p.client.logger.Error("service login returned no user key")
		return model.ServiceCredential{}, fmt.Errorf("%w: login returned no user key", driven.ErrServiceCredential)
	}

	return model.ServiceCredential{
		UserKey:    userKey,
		Credential: base64.StdEncoding.EncodeToString([]byte(p.username + ":" + p.password)),
	}, nil
}
