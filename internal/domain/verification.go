package domain

// VerificationStatus is the tri-state outcome of an email verification.
type VerificationStatus string

const (
	VerificationLoading VerificationStatus = "loading"
	VerificationSuccess VerificationStatus = "success"
	VerificationError   VerificationStatus = "error"
)

// VerificationOutcome is shown on the verify screen.
type VerificationOutcome struct {
	Status       VerificationStatus `json:"status"`
	Message      string             `json:"message"`
	ErrorDetails string             `json:"errorDetails,omitempty"`
}
