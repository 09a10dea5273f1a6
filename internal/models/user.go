package models

// User is a registered account in the directory.
//
// Passwords are kept and compared in plaintext.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the persisted record of the authenticated user.
type Session struct {
	Username string `json:"username"`
}
