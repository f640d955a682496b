package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrEmailAlreadyUsed      = errors.New("Email already in use")
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrNoOrg                 = errors.New("User is not attached to an organization")
	ErrNotAuthenticated      = errors.New("Not authenticated")
)
