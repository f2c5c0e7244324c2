package service

import "errors"

var (
	ErrUserAlreadyExist             = errors.New("user already exist")
	ErrUserNotFound                 = errors.New("user not found")
	ErrInvalidCredentials           = errors.New("invalid credentials")
	ErrVerificationCodeNotFound     = errors.New("verification code not found")
	ErrVerificationCodeMismatch     = errors.New("verification code mismatch")
	ErrVerificationAlreadyConfirmed = errors.New("verification already confirmed")
	ErrSessionNotFound              = errors.New("refresh session not found")
	ErrSessionExpired               = errors.New("refresh session expired")

	ErrPostNotFound = errors.New("post not found")
)
