package backend

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// Login exchanges user credentials for a Session. The backend message is not
// shown on rejection so that login failures read the same for unknown users
// and wrong passwords.
func (c *Client) Login(ctx context.Context, username, password string) model.Result[model.Session] {
	res := call[model.Session](ctx, c, anonymous(), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/Login",
		jsonBody:    map[string]string{"username": username, "password": password},
		okMessage:   "Signed in.",
		failMessage: "Login failed. Please check your credentials.",
	})
	if !res.OK() {
		if res.Message() == ConnectivityMessage {
			return res
		}
		return model.Failure[model.Session]("Login failed. Please check your credentials.")
	}
	session := res.Data()
	if !session.Valid() {
		c.logger.Warn("login response missing keys")
		return model.Failure[model.Session]("Login failed. Please check your credentials.")
	}
	return res
}

type otpBody struct {
	Identifier string        `json:"identifier"`
	OTPType    model.OTPType `json:"otpType"`
	OTP        string        `json:"otp,omitempty"`
}

// RequestOTP asks the backend to email a confirmation code.
func (c *Client) RequestOTP(ctx context.Context, cred model.ServiceCredential, email string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withService(cred), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/request-otp",
		jsonBody:    otpBody{Identifier: email, OTPType: model.OTPTypeEmailConfirmation},
		okMessage:   "A verification code was sent to " + email + ".",
		failMessage: "Failed to send a verification code to " + email + ".",
	})
}

// ValidateOTP checks a confirmation code for email.
func (c *Client) ValidateOTP(ctx context.Context, cred model.ServiceCredential, email, otp string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withService(cred), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/validate-otp",
		jsonBody:    otpBody{Identifier: email, OTPType: model.OTPTypeEmailConfirmation, OTP: otp},
		okMessage:   "Email confirmed.",
		failMessage: "The verification code is invalid.",
	})
}

// CreateAccount registers a new client account.
func (c *Client) CreateAccount(ctx context.Context, cred model.ServiceCredential, req model.SignupRequest) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withService(cred), request{
		method:      http.MethodPost,
		path:        "/api/v1/Clients",
		jsonBody:    req,
		okMessage:   "Account created successfully.",
		failMessage: "Failed to create the account.",
	})
}

// RequestPasswordReset emails a reset code. No credential is required.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, anonymous(), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/forget-password",
		jsonBody:    map[string]string{"email": email},
		okMessage:   "A reset code was sent. Please check your email.",
		failMessage: "Failed to request a reset code. Please try again later.",
	})
}

// ValidatePasswordReset checks a reset code. No credential is required.
func (c *Client) ValidatePasswordReset(ctx context.Context, email, otp string) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, anonymous(), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/forget-password-validate",
		jsonBody:    map[string]string{"email": email, "otp": otp},
		okMessage:   "Code verified.",
		failMessage: "Failed to validate the code. Please try again later.",
	})
}

// ResetPassword sets a new password for the account.
func (c *Client) ResetPassword(ctx context.Context, cred model.ServiceCredential, req model.ResetPasswordRequest) model.Result[model.Empty] {
	return call[model.Empty](ctx, c, withService(cred), request{
		method:      http.MethodPost,
		path:        "/api/v1/Account/reset-password",
		jsonBody:    req,
		okMessage:   "Your password was reset. Return to login.",
		failMessage: "Failed to reset the password. Please try again later.",
	})
}
