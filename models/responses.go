package models

// Response is the JSON envelope returned by every endpoint.
//
// Message is a human-readable result description. Target, when present,
// names the request field that caused a validation or uniqueness failure
// so the client can highlight the offending input.
type Response struct {
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`

	// ID carries the recovered login identifier in the find-id flow.
	ID string `json:"id,omitempty"`
}
