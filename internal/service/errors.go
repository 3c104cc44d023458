package service

import "errors"

var (
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrActivityNotFound   = errors.New("activity not found")

	ErrNoPhoto           = errors.New("no photo provided")
	ErrUnsupportedImage  = errors.New("unsupported image type")
	ErrImageTooLarge     = errors.New("image too large")
	ErrRecognitionFailed = errors.New("food recognition failed")
	ErrNoFoodIdentified  = errors.New("no food identified")
	ErrInvalidPortion    = errors.New("invalid portion multiplier")
)
