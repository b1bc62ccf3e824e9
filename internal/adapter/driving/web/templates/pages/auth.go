// Package pages holds the body component of every portal page.
package pages

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// Wizard steps as rendered by the signup and reset pages.
const (
	StepIdentity = "identity"
	StepOTP      = "otp"
	StepFinalize = "finalize"
)

// Landing is the public root page.
func Landing(p vm.Page) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("section", "class", "card narrow")
		h.Elem("h1", templates.AppName)
		h.Elem("p", "Upload invoices, track spending by cost center and manage API access for your organization.")
		h.Open("p", "class", "actions")
		h.Link("/login", "Sign in", "class", "btn btn-primary")
		h.Link("/signup", "Create an account", "class", "btn")
		h.Close("p")
		h.Close("section")
	})
}

// Login is the sign-in form.
func Login(p vm.LoginPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("section", "class", "card narrow")
		h.Elem("h1", "Sign in")
		h.Open("form", "method", "post", "action", "/login")
		h.CSRF(p.CSRFToken)
		if p.Next != "" {
			h.Hidden("next", p.Next)
		}
		h.Field("Email or username", "username", "text", p.Username, "required", "required", "autocomplete", "username", "autofocus", "autofocus")
		h.Field("Password", "password", "password", "", "required", "required", "autocomplete", "current-password")
		h.Submit("Sign in", "btn btn-primary")
		h.Close("form")
		h.Open("p", "class", "muted")
		h.Link("/forgot-password", "Forgot your password?")
		h.Raw(" &middot; ")
		h.Link("/signup", "Create an account")
		h.Raw(" &middot; ")
		h.Link("/google-callback", "Sign in with Google")
		h.Close("p")
		h.Close("section")
	})
}

// Signup renders the signup wizard. The code-entry step lives on Confirm.
func Signup(p vm.SignupPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("section", "class", "card narrow")
		h.Elem("h1", "Create your account")

		if p.Step == StepFinalize {
			h.Elem("p", "Your email "+p.Email+" is confirmed, but the account could not be created yet.")
			h.PostButton("/signup/retry", "Try again", "btn btn-primary", p.CSRFToken)
			h.PostButton("/signup/restart", "Start over", "btn btn-link", p.CSRFToken)
			h.Close("section")
			return
		}

		h.Open("form", "method", "post", "action", "/signup")
		h.CSRF(p.CSRFToken)
		h.Field("Full name", "fullName", "text", p.FullName, "required", "required", "autocomplete", "name")
		h.Field("Email", "email", "email", p.Email, "required", "required", "autocomplete", "email")
		h.Field("Phone", "phone", "tel", p.Phone, "autocomplete", "tel")
		h.Field("Password", "password", "password", "", "required", "required", "minlength", "8", "autocomplete", "new-password")
		h.Field("Confirm password", "confirmPassword", "password", "", "required", "required", "minlength", "8", "autocomplete", "new-password")
		h.Submit("Send verification code", "btn btn-primary")
		h.Close("form")
		h.Open("p", "class", "muted")
		h.Text("Already have an account? ")
		h.Link("/login", "Sign in")
		h.Close("p")
		h.Close("section")
	})
}

// Confirm is the email-confirmation step of the signup wizard.
func Confirm(p vm.ConfirmPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("section", "class", "card narrow")
		h.Elem("h1", "Confirm your email")

		if !p.Pending {
			h.Elem("p", "There is no signup waiting for a verification code.")
			h.Open("p", "class", "actions")
			h.Link("/signup", "Create an account", "class", "btn btn-primary")
			h.Link("/login", "Sign in", "class", "btn")
			h.Close("p")
			h.Close("section")
			return
		}

		h.Elem("p", "We sent a verification code to "+p.Email+".")
		h.Open("form", "method", "post", "action", "/confirm-account")
		h.CSRF(p.CSRFToken)
		h.Field("Verification code", "otp", "text", "", "required", "required", "inputmode", "numeric", "autocomplete", "one-time-code", "autofocus", "autofocus")
		h.Submit("Verify and create account", "btn btn-primary")
		h.Close("form")
		h.Open("div", "class", "actions")
		h.PostButton("/confirm-account/resend", "Resend code", "btn btn-link", p.CSRFToken)
		h.PostButton("/signup/restart", "Use a different email", "btn btn-link", p.CSRFToken)
		h.Close("div")
		h.Close("section")
	})
}

// Reset renders the password-reset wizard at its current step.
func Reset(p vm.ResetPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("section", "class", "card narrow")
		h.Elem("h1", "Reset your password")

		switch p.Step {
		case StepOTP:
			h.Elem("p", "Enter the code we sent to "+p.Email+".")
			h.Open("form", "method", "post", "action", "/forgot-password/otp")
			h.CSRF(p.CSRFToken)
			h.Field("Reset code", "otp", "text", "", "required", "required", "inputmode", "numeric", "autocomplete", "one-time-code", "autofocus", "autofocus")
			h.Submit("Verify code", "btn btn-primary")
			h.Close("form")
			h.Open("div", "class", "actions")
			h.PostButton("/forgot-password/resend", "Resend code", "btn btn-link", p.CSRFToken)
			h.PostButton("/forgot-password/restart", "Use a different email", "btn btn-link", p.CSRFToken)
			h.Close("div")
		case StepFinalize:
			h.Elem("p", "Choose a new password for "+p.Email+".")
			h.Open("form", "method", "post", "action", "/forgot-password/reset")
			h.CSRF(p.CSRFToken)
			h.Field("New password", "password", "password", "", "required", "required", "minlength", "8", "autocomplete", "new-password")
			h.Field("Confirm password", "confirmPassword", "password", "", "required", "required", "minlength", "8", "autocomplete", "new-password")
			h.Submit("Reset password", "btn btn-primary")
			h.Close("form")
			h.PostButton("/forgot-password/restart", "Start over", "btn btn-link", p.CSRFToken)
		default:
			h.Elem("p", "Enter the email of your account and we will send you a reset code.")
			h.Open("form", "method", "post", "action", "/forgot-password")
			h.CSRF(p.CSRFToken)
			h.Field("Email", "email", "email", p.Email, "required", "required", "autocomplete", "email", "autofocus", "autofocus")
			h.Submit("Send reset code", "btn btn-primary")
			h.Close("form")
		}

		h.Open("p", "class", "muted")
		h.Link("/login", "Back to sign in")
		h.Close("p")
		h.Close("section")
	})
}

// Notice is a page with one message and a link onward.
func Notice(p vm.NoticePage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("section", "class", "card narrow")
		h.Elem("h1", p.Heading)
		h.Elem("p", p.Message)
		if p.LinkPath != "" {
			h.Open("p", "class", "actions")
			h.Link(p.LinkPath, p.LinkText, "class", "btn btn-primary")
			h.Close("p")
		}
		h.Close("section")
	})
}
