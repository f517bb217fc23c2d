package models

// StatusSuccess and StatusError are the two values of the "status" field
// carried by every response envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DataResponse is the success envelope wrapping a single resource or a
// resource list.
type DataResponse struct {
	Status string `json:"status"`

	// Results is the number of entries when Data is a list. Omitted for
	// single-resource responses.
	Results *int `json:"results,omitempty"`

	Data any `json:"data"`
}

// AuthResponse is returned by signup, login, reset-password and
// update-password. The token is duplicated in the body for bearer-header
// clients; cookie clients rely on the Set-Cookie header instead.
type AuthResponse struct {
	Status string     `json:"status"`
	Token  string     `json:"token"`
	User   PublicUser `json:"user"`
}

// MessageResponse carries a human-readable outcome with no resource data,
// e.g. the forgot-password acknowledgement.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope produced by the HTTP error mapper.
// Message content is sanitized according to the configured posture.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
