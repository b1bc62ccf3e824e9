package model

// SignupRequest is the account-creation payload sent once the user's email
// has been confirmed by OTP.
type SignupRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber"`
	EmailConfirmed bool   `json:"emailConfirmed"`
}

// ResetPasswordRequest is the final step of the password-reset flow.
type ResetPasswordRequest struct {
	Username        string `json:"username"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmpassword"`
}

// FlowState is the persisted state of an OTP wizard between requests.
type FlowState struct {
	Kind           FlowKind `json:"kind"`
	Step           FlowStep `json:"step"`
	Email          string   `json:"email"`
	FullName       string   `json:"fullName,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Password       string   `json:"password,omitempty"`
	EmailConfirmed bool     `json:"emailConfirmed"`
}

// NewFlowState returns a wizard at its first step.
func NewFlowState(kind FlowKind) FlowState {
	return FlowState{Kind: kind, Step: StepCollectingIdentity}
}
