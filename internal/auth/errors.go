package auth

import "errors"

var (
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists, please choose another one")
	ErrUserNotFound       = errors.New("user does not exist, please register first")
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrStorage marks a store access or decode failure. It is logged, never returned in a [Result].
	ErrStorage = errors.New("storage unavailable or corrupt")
)

// Result is the outcome of Register and Login.
type Result struct {
	Success bool
	Message string
	Err     error // Err is one of the validation sentinels when Success is false
}

func success(msg string) Result {
	return Result{Success: true, Message: msg}
}

func failure(err error) Result {
	return Result{Message: err.Error(), Err: err}
}
