package model

// FileStatus is the processing state of an uploaded invoice file.
type FileStatus int

const (
	FileStatusPending    FileStatus = 0
	FileStatusProcessing FileStatus = 1
	FileStatusCompleted  FileStatus = 2
	FileStatusFailed     FileStatus = 3
)

// Label returns the display label. Unknown values read as Pending.
func (s FileStatus) Label() string {
	switch s {
	case FileStatusProcessing:
		return "Processing"
	case FileStatusCompleted:
		return "Completed"
	case FileStatusFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

// OTPType names the purpose of a one-time passcode on the backend.
type OTPType string

const (
	OTPTypeEmailConfirmation OTPType = "Email Confirmation"
)

// FlowKind distinguishes the two OTP-gated wizards.
type FlowKind string

const (
	FlowSignup        FlowKind = "signup"
	FlowPasswordReset FlowKind = "reset"
)

// FlowStep is a state of an OTP wizard.
type FlowStep string

const (
	StepCollectingIdentity FlowStep = "identity"
	StepAwaitingOTP        FlowStep = "otp"
	StepFinalizing         FlowStep = "finalize"
	StepDone               FlowStep = "done"
)
