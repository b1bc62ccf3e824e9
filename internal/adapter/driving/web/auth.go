package web

import (
	"net/http"
	"net/url"
	"strings"

	httphandler "github.com/ericfisherdev/wizeportal/internal/adapter/driving/http"
	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/application"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const (
	signupPath  = "/signup"
	confirmPath = "/confirm-account"
	resetPath   = "/forgot-password"

	// doneRedirectSeconds is how long a finished wizard shows its banner
	// before moving on to the login page.
	doneRedirectSeconds = 3

	missingCredentialsMessage = "Enter your username and password."
	signInFailedMessage       = "Sign-in failed. Please try again."
)

// Root serves "/" when it is configured as a public page.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	p := h.page(w, r, "", "", nil)
	h.render(w, r, p, pages.Landing(p))
}

// LoginPage renders the sign-in form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	next := ""
	if raw := q.Get("next"); raw != "" {
		next = httphandler.SafeNext(raw, "")
	}

	p := vm.LoginPage{
		Page:     h.page(w, r, "Sign in", "", nil),
		Username: q.Get("username"),
		Next:     next,
	}
	h.render(w, r, p.Page, pages.Login(p))
}

// Login exchanges the form credentials for a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := httphandler.SafeNext(r.FormValue("next"), httphandler.HomePath)
	back := loginPathFor(next, username)

	if username == "" || password == "" {
		redirectWithError(w, r, back, missingCredentialsMessage)
		return
	}

	res := h.accounts.Login(r.Context(), username, password)
	if !res.OK() {
		h.logger.Info("login rejected", "message", res.Message())
		redirectWithError(w, r, back, res.Message())
		return
	}

	sess := res.Data()
	if err := h.sessions.Set(w, &sess); err != nil {
		h.logger.Error("failed to write session cookie", "error", err)
		redirectWithError(w, r, back, signInFailedMessage)
		return
	}

	h.logger.Info("user signed in", "client_id", sess.ClientID)
	httphandler.Redirect(w, r, next)
}

// loginPathFor rebuilds the login URL so a failed attempt keeps the
// destination and the username.
func loginPathFor(next, username string) string {
	q := url.Values{}
	if next != httphandler.HomePath {
		q.Set("next", next)
	}
	if username != "" {
		q.Set("username", username)
	}
	if len(q) == 0 {
		return httphandler.LoginPath
	}
	return httphandler.LoginPath + "?" + q.Encode()
}

// Logout deletes the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	h.sessions.Delete(w)
	redirectSuccess(w, r, httphandler.LoginPath, "You have been signed out.")
}

// GoogleCallback is where a Google sign-in would land.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	p := vm.NoticePage{
		Page:     h.page(w, r, "Google sign-in", "", nil),
		Heading:  "Google sign-in",
		Message:  "Google sign-in is not available. Please sign in with your email and password.",
		LinkText: "Go to sign in",
		LinkPath: httphandler.LoginPath,
	}
	h.render(w, r, p.Page, pages.Notice(p))
}

// renderDone shows the final banner of a wizard and schedules the move to
// the login page.
func (h *Handler) renderDone(w http.ResponseWriter, r *http.Request, title, banner, heading, message string) {
	p := vm.NoticePage{
		Page:     h.page(w, r, title, "", nil),
		Heading:  heading,
		Message:  message,
		LinkText: "Sign in now",
		LinkPath: httphandler.LoginPath,
	}
	p.Flash = vm.Flash{Success: banner}
	p.RefreshTo = httphandler.LoginPath
	p.RefreshAfter = doneRedirectSeconds
	h.render(w, r, p.Page, pages.Notice(p))
}

func (h *Handler) saveFlow(w http.ResponseWriter, state model.FlowState) {
	if err := h.flows.Save(w, state); err != nil {
		h.logger.Error("failed to save flow state", "kind", state.Kind, "error", err)
	}
}

// SignupPage renders the signup wizard. A wizard waiting for its code is
// sent on to the confirmation page.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	state := h.flows.Load(r, model.FlowSignup)
	if state.Step == model.StepAwaitingOTP {
		target := confirmPath
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		httphandler.Redirect(w, r, target)
		return
	}

	p := vm.SignupPage{
		Page:     h.page(w, r, "Create account", "", nil),
		Step:     string(state.Step),
		Email:    state.Email,
		FullName: state.FullName,
		Phone:    state.Phone,
	}
	h.render(w, r, p.Page, pages.Signup(p))
}

// Signup validates the form and emails a verification code.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.StartSignup(r.Context(), application.SignupForm{
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("confirmPassword"),
	})
	h.saveFlow(w, out.State)

	if !out.Result.OK() {
		redirectWithError(w, r, signupPath, out.Result.Message())
		return
	}
	redirectSuccess(w, r, confirmPath, messageOr(out.Result, "We sent a verification code to "+out.State.Email+"."))
}

// SignupRetry repeats account creation after a confirmed email.
func (h *Handler) SignupRetry(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.RetrySignup(r.Context(), h.flows.Load(r, model.FlowSignup))
	h.saveFlow(w, out.State)
	h.finishSignup(w, r, out)
}

// SignupRestart abandons the signup wizard.
func (h *Handler) SignupRestart(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	h.flows.Clear(w)
	httphandler.Redirect(w, r, signupPath)
}

// ConfirmPage renders the verification-code form of the signup wizard.
func (h *Handler) ConfirmPage(w http.ResponseWriter, r *http.Request) {
	state := h.flows.Load(r, model.FlowSignup)
	p := vm.ConfirmPage{
		Page:    h.page(w, r, "Confirm your email", "", nil),
		Pending: state.Step == model.StepAwaitingOTP,
		Email:   state.Email,
	}
	h.render(w, r, p.Page, pages.Confirm(p))
}

// Confirm checks the verification code and creates the account.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.ConfirmSignup(r.Context(), h.flows.Load(r, model.FlowSignup), r.FormValue("otp"))
	h.saveFlow(w, out.State)
	h.finishSignup(w, r, out)
}

// ConfirmResend emails another verification code.
func (h *Handler) ConfirmResend(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.ResendOTP(r.Context(), h.flows.Load(r, model.FlowSignup))
	h.saveFlow(w, out.State)

	if out.State.Step != model.StepAwaitingOTP {
		redirectWithError(w, r, signupPath, out.Result.Message())
		return
	}
	redirectResult(w, r, confirmPath, out.Result, "A new verification code has been sent.")
}

// finishSignup routes the outcome of the account-creating steps.
func (h *Handler) finishSignup(w http.ResponseWriter, r *http.Request, out application.FlowOutcome) {
	switch out.State.Step {
	case model.StepDone:
		h.renderDone(w, r, "Account created",
			messageOr(out.Result, "Account created successfully."),
			"Account created",
			"You can now sign in as "+out.State.Email+". Taking you to the sign-in page.",
		)
	case model.StepAwaitingOTP:
		redirectWithError(w, r, confirmPath, out.Result.Message())
	default:
		redirectWithError(w, r, signupPath, out.Result.Message())
	}
}

// ResetPage renders the password-reset wizard at its current step.
func (h *Handler) ResetPage(w http.ResponseWriter, r *http.Request) {
	state := h.flows.Load(r, model.FlowPasswordReset)
	p := vm.ResetPage{
		Page:  h.page(w, r, "Reset password", "", nil),
		Step:  string(state.Step),
		Email: state.Email,
	}
	h.render(w, r, p.Page, pages.Reset(p))
}

// ResetStart emails a reset code.
func (h *Handler) ResetStart(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.StartReset(r.Context(), r.FormValue("email"))
	h.saveFlow(w, out.State)
	redirectResult(w, r, resetPath, out.Result, "We sent a reset code to "+out.State.Email+".")
}

// ResetResend emails another reset code.
func (h *Handler) ResetResend(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.ResendResetOTP(r.Context(), h.flows.Load(r, model.FlowPasswordReset))
	h.saveFlow(w, out.State)
	redirectResult(w, r, resetPath, out.Result, "A new reset code has been sent.")
}

// ResetConfirm checks the reset code.
func (h *Handler) ResetConfirm(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.ConfirmReset(r.Context(), h.flows.Load(r, model.FlowPasswordReset), r.FormValue("otp"))
	h.saveFlow(w, out.State)
	redirectResult(w, r, resetPath, out.Result, "Code verified. Choose a new password.")
}

// ResetFinish sets the new password.
func (h *Handler) ResetFinish(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	out := h.authFlow.FinishReset(r.Context(), h.flows.Load(r, model.FlowPasswordReset),
		r.FormValue("password"), r.FormValue("confirmPassword"))
	h.saveFlow(w, out.State)

	if out.State.Step != model.StepDone {
		redirectWithError(w, r, resetPath, out.Result.Message())
		return
	}
	h.renderDone(w, r, "Password updated",
		messageOr(out.Result, "Password reset successfully."),
		"Password updated",
		"You can now sign in with your new password. Taking you to the sign-in page.",
	)
}

// ResetRestart abandons the password-reset wizard.
func (h *Handler) ResetRestart(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	h.flows.Clear(w)
	httphandler.Redirect(w, r, resetPath)
}
