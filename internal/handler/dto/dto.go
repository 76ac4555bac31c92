// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// DataEnvelope is an Envelope whose data field is always emitted,
// even when null. Singleton reads use it so an empty table still
// produces an explicit "data": null.
type DataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// TrackRequest is the visit tracking request body.
type TrackRequest struct {
	Path string `json:"path"`
}

// LoginRequest is the owner login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the minted session token.
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// UserResponse describes the authenticated owner.
type UserResponse struct {
	Email string `json:"email"`
}
