package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAdmin           = errors.New("user does not have admin rights")
)
