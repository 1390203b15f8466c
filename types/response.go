package types

// SubmitResponse is returned when a submission was handed to the provider.
// ID is the provider's message identifier, or null when it did not supply
// one.
type SubmitResponse struct {
	OK bool    `json:"ok"`
	ID *string `json:"id"`
}

// AcceptedResponse is the bare success body. It is also what a honeypot
// submission receives, so automated senders cannot tell they were detected.
type AcceptedResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the unified error body for every failure class.
type ErrorResponse struct {
	OK     bool              `json:"ok"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Detail interface{}       `json:"detail,omitempty"`
}
