package driven

import (
	"context"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// AccountGateway covers the backend account endpoints: login and the
// OTP-gated signup and password-reset flows.
type AccountGateway interface {
	Login(ctx context.Context, username, password string) model.Result[model.Session]

	RequestOTP(ctx context.Context, cred model.ServiceCredential, email string) model.Result[model.Empty]
	ValidateOTP(ctx context.Context, cred model.ServiceCredential, email, otp string) model.Result[model.Empty]
	CreateAccount(ctx context.Context, cred model.ServiceCredential, req model.SignupRequest) model.Result[model.Empty]

	// RequestPasswordReset and ValidatePasswordReset need no credential.
	RequestPasswordReset(ctx context.Context, email string) model.Result[model.Empty]
	ValidatePasswordReset(ctx context.Context, email, otp string) model.Result[model.Empty]
	ResetPassword(ctx context.Context, cred model.ServiceCredential, req model.ResetPasswordRequest) model.Result[model.Empty]
}
