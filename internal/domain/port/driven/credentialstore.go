package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// ErrServiceCredential is returned when the service credential cannot be
// obtained: credentials not configured, backend unreachable, or login
// rejected. Callers check it with errors.Is.
var ErrServiceCredential = errors.New("service credential unavailable")

// ServiceCredentialProvider obtains the backend-wide credential used for
// pre-login operations. Implementations fetch it on every call.
type ServiceCredentialProvider interface {
	Get(ctx context.Context) (model.ServiceCredential, error)
}
