// services/errors.go - Registry error kinds
package services

import "errors"

// Every registry operation either succeeds or fails with exactly one of
// these. All checks are local and immediate: the first failing precondition
// aborts the operation with no partial effect, and resubmission is the only
// recovery path.
var (
	ErrUnauthorized          = errors.New("caller lacks required role")
	ErrInvalidInput          = errors.New("invalid input")
	ErrAchievementNotFound   = errors.New("achievement not found")
	ErrCertificationNotFound = errors.New("certification not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrRewardAlreadyClaimed  = errors.New("reward already claimed")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrLimitExceeded         = errors.New("limit exceeded")
)
