package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyOwned       = errors.New("ebook already purchased")
)
