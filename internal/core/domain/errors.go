package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStoreNotFound      = errors.New("store not found")
	ErrNoStoreForOwner    = errors.New("no store found for this owner")
	ErrInvalidOwnerRef    = errors.New("owner not found or not an OWNER")
	ErrInvalidRatingValue = errors.New("rating value must be between 1 and 5")
	ErrForbidden          = errors.New("access forbidden")
)
