package domain

// Profile models a user's public identity. Email is immutable after account
// creation; ProfilePhoto is an opaque media reference resolved against the
// configured media base URL.
type Profile struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	Bio          string `json:"bio,omitempty"`
	Career       string `json:"career,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	Email        string `json:"email,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Zero-valued fields are
// omitted from the multipart form, leaving the stored value untouched.
type ProfileUpdate struct {
	Username     string
	FullName     string
	Bio          string
	Career       string
	ProfilePhoto []byte // raw image bytes; empty means no photo change
	PhotoName    string // original filename, required when ProfilePhoto is set
}

// UsernameStatus is the availability verdict for a candidate username.
type UsernameStatus string

const (
	UsernameAvailable   UsernameStatus = "available"
	UsernameUnavailable UsernameStatus = "unavailable"
	UsernameInvalid     UsernameStatus = "invalid"
)
