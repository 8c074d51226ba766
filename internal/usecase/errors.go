package usecase

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrStudentNotFound      = errors.New("student not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrAllocationNotFound   = errors.New("no allocation found for this student")
	ErrAllocationInProgress = errors.New("allocation already in progress")
	ErrInternal             = errors.New("internal error")
)
