package model

// Session is the administrator identity the form is gated on. It is
// owned by whoever logged in; the form only reads it.
type Session struct {
	Token string `json:"token"`
	Admin bool   `json:"admin"`
}

// Valid reports whether the session grants access to admin views.
func (s Session) Valid() bool {
	return s.Admin && s.Token != ""
}
