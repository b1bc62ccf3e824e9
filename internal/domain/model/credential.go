package model

// ServiceCredential authorizes pre-login backend operations (OTP issuance
// and validation, account creation, password reset) on behalf of a user who
// cannot yet authenticate. It is fetched per use and never persisted.
type ServiceCredential struct {
	// UserKey is the service account's user key, sent as X-USER-KEY.
	UserKey string
	// Credential is base64("username:password"), sent as HTTP Basic.
	Credential string
}
