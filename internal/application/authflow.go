package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// Messages shown by the signup and reset wizards.
const (
	ServiceUnavailableMessage = "Service is temporarily unavailable. Please try again later."
	InvalidEmailMessage       = "Enter a valid email address."
	ShortPasswordMessage      = "Password must be at least 8 characters."
	PasswordMismatchMessage   = "Passwords do not match."
	MissingOTPMessage         = "Enter the verification code from your email."
	FlowExpiredMessage        = "This step is no longer valid. Please start again."

	minPasswordLength = 8
)

// SignupForm is the first step of the signup wizard.
type SignupForm struct {
	Email    string
	FullName string
	Phone    string
	Password string
	Confirm  string
}

// FlowOutcome is the wizard state after an operation together with the
// message to show. State is what the caller persists.
type FlowOutcome struct {
	State  model.FlowState
	Result model.Result[model.Empty]
}

func outcome(state model.FlowState, res model.Result[model.Empty]) FlowOutcome {
	return FlowOutcome{State: state, Result: res}
}

func failed(state model.FlowState, msg string) FlowOutcome {
	return outcome(state, model.Failure[model.Empty](msg))
}

// AuthFlow drives the OTP-gated signup and password-reset wizards. It holds
// no per-user state; every call takes the state loaded from the flow cookie
// and returns the next one.
type AuthFlow struct {
	accounts driven.AccountGateway
	creds    driven.ServiceCredentialProvider
	logger   *slog.Logger
}

// NewAuthFlow creates an AuthFlow.
func NewAuthFlow(accounts driven.AccountGateway, creds driven.ServiceCredentialProvider, logger *slog.Logger) *AuthFlow {
	return &AuthFlow{accounts: accounts, creds: creds, logger: logger}
}

// StartSignup validates the form and emails a confirmation code.
func (f *AuthFlow) StartSignup(ctx context.Context, form SignupForm) FlowOutcome {
	state := model.NewFlowState(model.FlowSignup)
	state.Email = strings.TrimSpace(form.Email)
	state.FullName = strings.TrimSpace(form.FullName)
	state.Phone = strings.TrimSpace(form.Phone)

	if msg := validateEmail(state.Email); msg != "" {
		return failed(state, msg)
	}
	if msg := validatePassword(form.Password, form.Confirm); msg != "" {
		return failed(state, msg)
	}

	cred, ok := f.credential(ctx)
	if !ok {
		return failed(state, ServiceUnavailableMessage)
	}

	res := f.accounts.RequestOTP(ctx, cred, state.Email)
	if !res.OK() {
		return outcome(state, res)
	}

	state.Password = form.Password
	state.Step = model.StepAwaitingOTP
	f.logger.Info("signup otp requested")
	return outcome(state, res)
}

// ResendOTP requests another confirmation code. The state never changes.
func (f *AuthFlow) ResendOTP(ctx context.Context, state model.FlowState) FlowOutcome {
	if state.Kind != model.FlowSignup || state.Step != model.StepAwaitingOTP {
		return failed(model.NewFlowState(model.FlowSignup), FlowExpiredMessage)
	}

	cred, ok := f.credential(ctx)
	if !ok {
		return failed(state, ServiceUnavailableMessage)
	}
	return outcome(state, f.accounts.RequestOTP(ctx, cred, state.Email))
}

// ConfirmSignup validates otp and, when it is accepted, creates the account.
// A rejected code leaves the state untouched. A failed account creation
// moves to StepFinalizing so that RetrySignup can try again without a new
// code.
func (f *AuthFlow) ConfirmSignup(ctx context.Context, state model.FlowState, otp string) FlowOutcome {
	if state.Kind != model.FlowSignup || state.Step != model.StepAwaitingOTP {
		return failed(model.NewFlowState(model.FlowSignup), FlowExpiredMessage)
	}
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return failed(state, MissingOTPMessage)
	}

	cred, ok := f.credential(ctx)
	if !ok {
		return failed(state, ServiceUnavailableMessage)
	}

	if res := f.accounts.ValidateOTP(ctx, cred, state.Email, otp); !res.OK() {
		return outcome(state, res)
	}

	next := state
	next.EmailConfirmed = true
	return f.createAccount(ctx, cred, next)
}

// RetrySignup repeats account creation for an already confirmed email.
func (f *AuthFlow) RetrySignup(ctx context.Context, state model.FlowState) FlowOutcome {
	if state.Kind != model.FlowSignup || state.Step != model.StepFinalizing || !state.EmailConfirmed {
		return failed(model.NewFlowState(model.FlowSignup), FlowExpiredMessage)
	}

	cred, ok := f.credential(ctx)
	if !ok {
		return failed(state, ServiceUnavailableMessage)
	}
	return f.createAccount(ctx, cred, state)
}

func (f *AuthFlow) createAccount(ctx context.Context, cred model.ServiceCredential, state model.FlowState) FlowOutcome {
	res := f.accounts.CreateAccount(ctx, cred, model.SignupRequest{
		Email:          state.Email,
		Password:       state.Password,
		FullName:       state.FullName,
		PhoneNumber:    state.Phone,
		EmailConfirmed: state.EmailConfirmed,
	})
	if !res.OK() {
		state.Step = model.StepFinalizing
		f.logger.Warn("account creation failed after email confirmation", "message", res.Message())
		return outcome(state, res)
	}

	state.Step = model.StepDone
	state.Password = ""
	f.logger.Info("account created")
	return outcome(state, res)
}

// StartReset emails a password-reset code.
func (f *AuthFlow) StartReset(ctx context.Context, email string) FlowOutcome {
	state := model.NewFlowState(model.FlowPasswordReset)
	state.Email = strings.TrimSpace(email)

	if msg := validateEmail(state.Email); msg != "" {
		return failed(state, msg)
	}

	res := f.accounts.RequestPasswordReset(ctx, state.Email)
	if !res.OK() {
		return outcome(state, res)
	}
	state.Step = model.StepAwaitingOTP
	return outcome(state, res)
}

// ResendResetOTP requests another reset code. The state never changes.
func (f *AuthFlow) ResendResetOTP(ctx context.Context, state model.FlowState) FlowOutcome {
	if state.Kind != model.FlowPasswordReset || state.Step != model.StepAwaitingOTP {
		return failed(model.NewFlowState(model.FlowPasswordReset), FlowExpiredMessage)
	}
	return outcome(state, f.accounts.RequestPasswordReset(ctx, state.Email))
}

// ConfirmReset validates the reset code and moves on to collecting the new
// password.
func (f *AuthFlow) ConfirmReset(ctx context.Context, state model.FlowState, otp string) FlowOutcome {
	if state.Kind != model.FlowPasswordReset || state.Step != model.StepAwaitingOTP {
		return failed(model.NewFlowState(model.FlowPasswordReset), FlowExpiredMessage)
	}
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return failed(state, MissingOTPMessage)
	}

	res := f.accounts.ValidatePasswordReset(ctx, state.Email, otp)
	if !res.OK() {
		return outcome(state, res)
	}
	state.Step = model.StepFinalizing
	return outcome(state, res)
}

// FinishReset sets the new password.
func (f *AuthFlow) FinishReset(ctx context.Context, state model.FlowState, newPassword, confirm string) FlowOutcome {
	if state.Kind != model.FlowPasswordReset || state.Step != model.StepFinalizing {
		return failed(model.NewFlowState(model.FlowPasswordReset), FlowExpiredMessage)
	}
	if msg := validatePassword(newPassword, confirm); msg != "" {
		return failed(state, msg)
	}

	cred, ok := f.credential(ctx)
	if !ok {
		return failed(state, ServiceUnavailableMessage)
	}

	res := f.accounts.ResetPassword(ctx, cred, model.ResetPasswordRequest{
		Username:        state.Email,
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	})
	if !res.OK() {
		return outcome(state, res)
	}
	state.Step = model.StepDone
	f.logger.Info("password reset completed")
	return outcome(state, res)
}

func (f *AuthFlow) credential(ctx context.Context) (model.ServiceCredential, bool) {
	cred, err := f.creds.Get(ctx)
	if err != nil {
		f.logger.Error("service credential unavailable", "error", err)
		return model.ServiceCredential{}, false
	}
	return cred, true
}

func validateEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		return InvalidEmailMessage
	}
	return ""
}

func validatePassword(password, confirm string) string {
	if len(password) < minPasswordLength {
		return ShortPasswordMessage
	}
	if password != confirm {
		return PasswordMismatchMessage
	}
	return ""
}
