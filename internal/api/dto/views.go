package dto

import "time"

// LandingView is rendered on the landing screen.
type LandingView struct {
	Screen   string       `json:"screen"`
	SignedIn bool         `json:"signedIn"`
	User     *SignedInAs  `json:"user,omitempty"`
	Links    []ScreenLink `json:"links"`
}

// SignedInAs summarizes the stored login result.
type SignedInAs struct {
	UserID         string     `json:"userId"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenExpired   bool       `json:"tokenExpired"`
}

// ScreenLink points at another screen.
type ScreenLink struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ScreenResponse wraps a flow view with the screen it belongs to.
type ScreenResponse struct {
	Screen string `json:"screen"`
	View   any    `json:"view"`
}

// LocationResponse reports where the visitor currently is.
type LocationResponse struct {
	Screen string `json:"screen"`
	Path   string `json:"path"`
}
