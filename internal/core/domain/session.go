package domain

// Session is a successful login result. Token is an opaque bearer credential;
// the client never inspects its structure except in strict-guard mode, where
// a JWT exp claim may be read without signature verification.
type Session struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}
